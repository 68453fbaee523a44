package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"job-board/infrastructure"
	"job-board/interfaces"
	"job-board/usecase"
)

func main() {
	// Load .env
	_ = godotenv.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect DB
	db := infrastructure.NewMySQLConnection()

	// Connect RabbitMQ
	rmq := infrastructure.NewRabbitMQ()
	defer rmq.Close()

	// LLM gateway (Groq) + extraction fallback (Gemini, optional)
	groq := infrastructure.NewGroqClient()
	gemini, err := infrastructure.NewGeminiExtractor(context.Background())
	if err != nil {
		logrus.Fatalf("gemini init: %v", err)
	}
	extractor := infrastructure.NewDocumentExtractor(gemini)

	// Stores
	batches := infrastructure.NewGormBatchStore(db)
	applicantStore := infrastructure.NewGormApplicantStore(db)
	jobs := infrastructure.NewGormJobStore(db)

	// Use cases
	structurer := usecase.NewStructurer(groq, extractor)
	scorer := usecase.NewScorer(groq)
	applicants := usecase.NewApplicantService(applicantStore, jobs, scorer)
	analyzer := usecase.NewAnalyzer(structurer, scorer, batches, applicants)
	staging := usecase.NewStagingStore()

	// Worker consumer: scores the job's unscored portal applicants
	rmq.ConsumeScoringJobs(func(job infrastructure.ScoringJob) {
		logrus.WithField("jobId", job.JobID).Info("worker: scoring portal applicants")

		scored, err := applicants.ScorePortalApplicants(context.Background(), job.JobID)
		if err != nil {
			logrus.WithField("jobId", job.JobID).Errorf("worker: scoring aborted: %v", err)
			return
		}
		logrus.WithFields(logrus.Fields{"jobId": job.JobID, "scored": scored}).
			Info("worker: scoring done")
	})

	// Setup Gin router
	router := gin.Default()
	router.MaxMultipartMemory = infrastructure.MaxUploadSize
	interfaces.NewHTTPHandler(router, &interfaces.HTTPHandler{
		DB:         db,
		RMQ:        rmq,
		Staging:    staging,
		Structurer: structurer,
		Analyzer:   analyzer,
		Applicants: applicants,
		Batches:    batches,
		AppStore:   applicantStore,
		Jobs:       jobs,
	})

	logrus.Info("server running on http://localhost:8080")
	if err := router.Run(":8080"); err != nil {
		logrus.Fatal(err)
	}
}
