package interfaces

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"job-board/domain"
)

type createCompanyRequest struct {
	CompanyName string `json:"companyName" binding:"required"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

func (h *HTTPHandler) CreateCompany(c *gin.Context) {
	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	company := domain.Company{
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Address:     req.Address,
	}
	if err := h.DB.Create(&company).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create company"})
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (h *HTTPHandler) ListCompanies(c *gin.Context) {
	var companies []domain.Company
	if err := h.DB.Find(&companies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

type createJobRequest struct {
	CompanyID     uint     `json:"company_id" binding:"required"`
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Experience    string   `json:"experience" binding:"required"`
	Qualification string   `json:"qualification" binding:"required"`
	Location      string   `json:"location" binding:"required"`
	Salary        string   `json:"salary"`
	JobType       string   `json:"jobType" binding:"required"`
	WorkType      string   `json:"workType" binding:"required"`
	Requirements  []string `json:"requirements" binding:"required"`
	ClosingDate   *time.Time `json:"closingDate"`
}

func (h *HTTPHandler) CreateJob(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var company domain.Company
	if err := h.DB.First(&company, req.CompanyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "company not found"})
		return
	}

	// Assign the next human-facing code, counting soft-deleted jobs too so
	// codes are never reused.
	var count int64
	if err := h.DB.Model(&domain.Job{}).Unscoped().Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	job := domain.Job{
		JobCode:       fmt.Sprintf("JOB%04d", count+1),
		CompanyID:     req.CompanyID,
		Title:         req.Title,
		Description:   req.Description,
		Experience:    req.Experience,
		Qualification: req.Qualification,
		Location:      req.Location,
		Salary:        req.Salary,
		JobType:       req.JobType,
		WorkType:      req.WorkType,
		Requirements:  req.Requirements,
		ClosingDate:   req.ClosingDate,
	}
	if err := h.DB.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create job"})
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *HTTPHandler) ListJobs(c *gin.Context) {
	var jobs []domain.Job
	if err := h.DB.Preload("Company").Order("created_at DESC").Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *HTTPHandler) GetJob(c *gin.Context) {
	job, err := h.Jobs.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

// GetJobCriteria returns the slice of a job the scoring engine consumes.
// Accepts either the numeric id or the JOBnnnn code.
func (h *HTTPHandler) GetJobCriteria(c *gin.Context) {
	criteria, err := h.Jobs.Criteria(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "job not found"})
		return
	}
	c.JSON(http.StatusOK, criteria)
}
