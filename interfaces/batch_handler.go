package interfaces

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *HTTPHandler) ListBatches(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"jobId":   job.ID,
		"total":   len(batches),
		"batches": batches,
	})
}

// ClearBatch drops the batch's resumes but keeps the batch row so its code
// and number survive a re-run. Batch codes are unique per job, so the job
// must be named alongside the code.
func (h *HTTPHandler) ClearBatch(c *gin.Context) {
	job, err := h.Jobs.Resolve(c.Request.Context(), c.Query("jobId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "jobId query parameter required"})
		return
	}

	code := c.Param("batchId")
	if err := h.Batches.ClearResumes(c.Request.Context(), job.ID, code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "batchCode": code, "message": "Batch cleared"})
}

func (h *HTTPHandler) DeleteBatch(c *gin.Context) {
	job, err := h.Jobs.Resolve(c.Request.Context(), c.Query("jobId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "jobId query parameter required"})
		return
	}

	code := c.Param("batchId")
	if err := h.Batches.SoftDelete(c.Request.Context(), job.ID, code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "batchCode": code, "message": "Batch deleted"})
}
