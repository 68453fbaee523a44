package interfaces

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"job-board/domain"
	"job-board/infrastructure"
)

func (h *HTTPHandler) ListApplicants(c *gin.Context) {
	job, err := h.Jobs.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "job not found"})
		return
	}

	applicants, err := h.AppStore.ListByJob(c.Request.Context(), job.ID, c.Query("source"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"jobId":           job.ID,
		"totalApplicants": len(applicants),
		"applicants":      applicants,
	})
}

// ListBulkApplicants first materializes bulk applicants from every live batch
// of the job (idempotent), then returns the bulk subset.
func (h *HTTPHandler) ListBulkApplicants(c *gin.Context) {
	job, err := h.Jobs.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "job not found"})
		return
	}

	batches, err := h.Batches.ListByJob(c.Request.Context(), job.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	for i := range batches {
		if _, err := h.Applicants.Materialize(c.Request.Context(), &batches[i]); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
	}

	applicants, err := h.AppStore.ListByJob(c.Request.Context(), job.ID, domain.SourceBulk)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"total":      len(applicants),
		"applicants": applicants,
	})
}

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *HTTPHandler) UpdateApplicantStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid applicant id"})
		return
	}

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "status required"})
		return
	}
	if !domain.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unknown status: " + req.Status})
		return
	}

	applicant, err := h.AppStore.Get(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Applicant not found"})
		return
	}

	applicant.ApplyStatus(req.Status, time.Now())
	if err := h.AppStore.Save(c.Request.Context(), applicant); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "applicant": applicant})
}

func (h *HTTPHandler) DeleteApplicant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid applicant id"})
		return
	}
	if err := h.AppStore.SoftDelete(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Applicant deleted"})
}

// QueuePortalScoring enqueues on-demand scoring of the job's unscored portal
// applicants and returns immediately; the RabbitMQ worker does the scoring.
func (h *HTTPHandler) QueuePortalScoring(c *gin.Context) {
	job, err := h.Jobs.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "job not found"})
		return
	}

	if err := h.RMQ.PublishScoringJob(infrastructure.ScoringJob{JobID: job.ID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to queue scoring job"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobId": job.ID, "status": "queued"})
}
