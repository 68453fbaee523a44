package interfaces

import (
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"job-board/domain"
	"job-board/infrastructure"
	"job-board/usecase"
)

type uploadedCv struct {
	ID            string `json:"id"`
	Filename      string `json:"filename"`
	UploadDate    string `json:"uploadDate"`
	ExtractedData any    `json:"extractedData"`
}

type fileError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// UploadCvs stages one or more resume files for a later analyze run and
// returns a structured preview per file. One bad file never fails the whole
// request; it lands in errors[] alongside the successes.
func (h *HTTPHandler) UploadCvs(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "multipart form required"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No files uploaded"})
		return
	}

	sessionID := c.PostForm("session_id")
	if sessionID == "" {
		sessionID = h.Staging.NewSession()
	} else {
		// Re-upload for an existing session replaces it, preventing ghost
		// files from an earlier attempt.
		h.Staging.Clear(sessionID)
	}

	var processed []uploadedCv
	var errs []fileError

	for i, header := range files {
		if header.Size > infrastructure.MaxUploadSize {
			errs = append(errs, fileError{Filename: header.Filename, Error: "File exceeds 50MB limit"})
			continue
		}

		file, err := header.Open()
		if err != nil {
			errs = append(errs, fileError{Filename: header.Filename, Error: "failed to open file"})
			continue
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			errs = append(errs, fileError{Filename: header.Filename, Error: "failed to read file"})
			continue
		}

		if i > 0 {
			time.Sleep(usecase.MinRequestDelay)
		}

		cv := h.Staging.Add(sessionID, header.Filename, time.Now().UTC().Format(time.RFC3339), data)

		structured, err := h.Structurer.Structure(c.Request.Context(), data, header.Filename)
		if err != nil {
			errs = append(errs, fileError{Filename: header.Filename, Error: err.Error()})
			continue
		}

		processed = append(processed, uploadedCv{
			ID:            cv.ID,
			Filename:      cv.Filename,
			UploadDate:    cv.UploadDate,
			ExtractedData: structured,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   len(processed) > 0,
		"sessionId": sessionID,
		"cvs":       processed,
		"errors":    errs,
		"summary": gin.H{
			"totalFiles":     len(files),
			"processedFiles": len(processed),
			"failedFiles":    len(errs),
		},
	})
}

type analyzeRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	BatchID   string `json:"batchId"`
	BatchName string `json:"batchName" binding:"required"`
	JobID     string `json:"jobId" binding:"required"`
}

// AnalyzeCvs runs the batch pipeline over the staged session and streams one
// newline-delimited JSON record per CV. The stream always terminates: either
// the worklist is exhausted or a terminal error line closes it.
func (h *HTTPHandler) AnalyzeCvs(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "sessionId, batchName and jobId required"})
		return
	}

	job, err := h.Jobs.Resolve(c.Request.Context(), req.JobID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "job not found"})
		return
	}
	criteria, err := h.Jobs.Criteria(c.Request.Context(), req.JobID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	cvs := h.Staging.List(req.SessionID)
	if len(cvs) == 0 {
		c.Status(http.StatusOK)
		return
	}

	c.Writer.Header().Set("Content-Type", "application/x-ndjson")
	c.Writer.Header().Set("Transfer-Encoding", "chunked")
	c.Writer.WriteHeader(http.StatusOK)

	flusher, _ := c.Writer.(http.Flusher)
	enc := json.NewEncoder(c.Writer)
	emit := func(result usecase.CVResult) error {
		if err := enc.Encode(result); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	}

	params := usecase.RunParams{
		SessionID: req.SessionID,
		BatchCode: req.BatchID,
		BatchName: req.BatchName,
		JobID:     job.ID,
		Criteria:  criteria,
	}
	if err := h.Analyzer.Run(c.Request.Context(), params, cvs, emit); err != nil {
		// The per-CV failure line is already out; this closes the stream with
		// an explicit terminal payload instead of silent truncation.
		_ = enc.Encode(gin.H{"error": true, "message": err.Error()})
		if flusher != nil {
			flusher.Flush()
		}
		logrus.WithError(err).Warn("batch analyze aborted")
	}
}

// RankCvs returns a batch's resumes sorted by composite score, best first.
func (h *HTTPHandler) RankCvs(c *gin.Context) {
	jobID := c.Query("jobId")
	batchCode := c.Query("batchId")
	if jobID == "" || batchCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "jobId and batchId required"})
		return
	}

	job, err := h.Jobs.Resolve(c.Request.Context(), jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "job not found"})
		return
	}

	batch, err := h.Batches.Get(c.Request.Context(), job.ID, batchCode)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Batch not found"})
		return
	}

	resumes := batch.Resumes
	score := func(r domain.BatchResume) int {
		if r.Analysis == nil {
			return 0
		}
		return r.Analysis.Score
	}
	sort.SliceStable(resumes, func(i, j int) bool {
		return score(resumes[i]) > score(resumes[j])
	})
	c.JSON(http.StatusOK, resumes)
}

// ParseAcademicCv structures a single long-form academic CV and returns the
// result directly, without staging or persistence.
func (h *HTTPHandler) ParseAcademicCv(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File required"})
		return
	}
	if header.Size > infrastructure.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File exceeds 50MB limit"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "failed to open file"})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "failed to read file"})
		return
	}

	profile, err := h.Structurer.StructureAcademic(c.Request.Context(), data, header.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ClearSession drops every staged CV for a session.
func (h *HTTPHandler) ClearSession(c *gin.Context) {
	var req struct {
		SessionID string `json:"sessionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "sessionId required"})
		return
	}
	h.Staging.Clear(req.SessionID)
	c.JSON(http.StatusOK, gin.H{"message": "Cleared"})
}
