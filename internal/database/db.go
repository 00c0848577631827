package database

import (
	"log"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kretovds/company-registry-bot/internal/models"
)

// NewDB opens the sqlite database and migrates the registry schema
func NewDB(path string) *gorm.DB {
	if path == "" {
		log.Fatal("❌ DB_PATH is empty")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("❌ Failed to open database: %v", err)
	}

	if err := db.AutoMigrate(&models.Company{}, &models.FileAttachment{}); err != nil {
		log.Fatalf("❌ Failed to migrate schema: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("❌ Failed to get sql.DB: %v", err)
	}

	// sqlite: single writer
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("✅ Database connected!")
	return db
}
