package database

import (
	"masshouse/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

// MigrateModels runs GORM AutoMigrate for all models
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	modelsToMigrate := []interface{}{
		&models.Issue{},
		&models.IssueUpdate{},
		&models.ParkingBooking{},
		&models.MeterReading{},
	}

	for _, model := range modelsToMigrate {
		if err := db.SQL.AutoMigrate(model); err != nil {
			return log.Err("failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes creates additional indexes that GORM doesn't create automatically
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")
	log.Info("Creating additional database indexes")

	indexes := []string{
		// Status lookup matches reference and email together
		"CREATE INDEX IF NOT EXISTS idx_issues_reference_email ON issues(reference_number, resident_email)",
		"CREATE INDEX IF NOT EXISTS idx_issue_updates_issue_created ON issue_updates(issue_id, created_at)",
		// Dashboard stats filter on status and recency
		"CREATE INDEX IF NOT EXISTS idx_issues_status_updated ON issues(status, updated_at)",
		"CREATE INDEX IF NOT EXISTS idx_parking_bookings_status_updated ON parking_bookings(status, updated_at)",
	}

	for _, indexSQL := range indexes {
		if err := db.SQL.Exec(indexSQL).Error; err != nil {
			log.Warn("Failed to create index", "sql", indexSQL, "error", err)
		}
	}

	log.Info("Additional database indexes created")
	return nil
}
