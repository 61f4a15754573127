// Package testutil opens throwaway databases for repository and handler tests.
package testutil

import (
	adminDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/admin"
	applicationDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/application"
	companyDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/company"
	driveDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/drive"
	sessionDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/session"
	statisticsDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/statistics"
	studentDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/student"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLite returns an in-memory database with every table migrated.
// The pool is pinned to one connection so that transactions see the same memory database.
func NewSQLite() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&adminDatamodel.Admin{},
		&studentDatamodel.Student{},
		&companyDatamodel.Company{},
		&driveDatamodel.PlacementDrive{},
		&applicationDatamodel.Application{},
		&statisticsDatamodel.PlacementStatistics{},
		&sessionDatamodel.RevokedSession{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SQLX wraps the same connection pool for the sqlx repositories.
func SQLX(db *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return sqlx.NewDb(sqlDB, "sqlite3"), nil
}
