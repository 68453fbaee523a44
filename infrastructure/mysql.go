package infrastructure

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"job-board/domain"
)

func NewMySQLConnection() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		logrus.Fatal("DB_DSN is not set in environment")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Company{},
		&domain.Job{},
		&domain.Batch{},
		&domain.BatchResume{},
		&domain.Applicant{},
	)
	if err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	seedDemoData(db)

	logrus.Info("connected to MySQL and migrated schema")
	return db
}

// seedDemoData inserts a demo company and job on an empty database so the
// pipeline can be exercised immediately after first boot.
func seedDemoData(db *gorm.DB) {
	var count int64
	if err := db.Model(&domain.Job{}).Count(&count).Error; err != nil {
		logrus.Fatalf("failed to count jobs: %v", err)
	}
	if count > 0 {
		return
	}

	company := domain.Company{
		CompanyName: "Acme Software",
		Email:       "hr@acme.example",
		Address:     "Remote",
	}
	if err := db.Create(&company).Error; err != nil {
		logrus.Fatalf("failed to seed company: %v", err)
	}

	closing := time.Now().AddDate(0, 1, 0)
	job := domain.Job{
		JobCode:       "JOB0001",
		CompanyID:     company.ID,
		Title:         "Backend Engineer",
		Description:   "Build and maintain REST APIs, background workers and LLM-assisted features.",
		Experience:    "1-2 years",
		Qualification: "Bachelor's",
		Location:      "Remote",
		Salary:        "$1000-$1500",
		JobType:       "Full-time",
		WorkType:      "Remote",
		Requirements:  []string{"Go or Node.js", "MySQL", "REST APIs", "Message queues"},
		Status:        "Active",
		ClosingDate:   &closing,
	}
	if err := db.Create(&job).Error; err != nil {
		logrus.Fatalf("failed to seed job: %v", err)
	}

	logrus.Info("seeded demo company and job")
}
