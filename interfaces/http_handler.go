package interfaces

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"job-board/infrastructure"
	"job-board/usecase"
)

type HTTPHandler struct {
	DB         *gorm.DB
	RMQ        *infrastructure.RabbitMQ
	Staging    *usecase.StagingStore
	Structurer *usecase.Structurer
	Analyzer   *usecase.Analyzer
	Applicants *usecase.ApplicantService
	Batches    usecase.BatchStore
	AppStore   usecase.ApplicantStore
	Jobs       usecase.JobStore
}

func NewHTTPHandler(router *gin.Engine, h *HTTPHandler) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		analyzer := api.Group("/analyzer")
		{
			analyzer.POST("/upload", h.UploadCvs)
			analyzer.POST("/analyze", h.AnalyzeCvs)
			analyzer.GET("/rank", h.RankCvs)
			analyzer.POST("/clear", h.ClearSession)
			analyzer.POST("/parse-academic", h.ParseAcademicCv)
		}

		api.POST("/companies", h.CreateCompany)
		api.GET("/companies", h.ListCompanies)

		api.POST("/jobs", h.CreateJob)
		api.GET("/jobs", h.ListJobs)
		api.GET("/jobs/:id", h.GetJob)
		api.GET("/jobs/:id/criteria", h.GetJobCriteria)
		api.GET("/jobs/:id/batches", h.ListBatches)
		api.GET("/jobs/:id/applicants", h.ListApplicants)
		api.GET("/jobs/:id/applicants/bulk", h.ListBulkApplicants)
		api.POST("/jobs/:id/score-applicants", h.QueuePortalScoring)

		api.PATCH("/applicants/:id/status", h.UpdateApplicantStatus)
		api.DELETE("/applicants/:id", h.DeleteApplicant)

		api.POST("/batches/:batchId/clear", h.ClearBatch)
		api.DELETE("/batches/:batchId", h.DeleteBatch)
	}
}
