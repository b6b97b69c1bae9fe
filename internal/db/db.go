package db

import (
	"fmt"
	"log"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/luminacoach/lumina/internal/config"
	"github.com/luminacoach/lumina/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := Open(cfg.DBDriver, cfg.DBUrl)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	return db
}

// Open connects with the named driver ("postgres" or "sqlite") and migrates
// the schema.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	gormCfg := &gorm.Config{PrepareStmt: true}

	switch driver {
	case "postgres", "":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if driver == "sqlite" {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Provider{},
		&models.Client{},
		&models.Engagement{},
		&models.Session{},
		&models.SessionNote{},
		&models.Template{},
		&models.Invoice{},
		&models.AuditLog{},
	)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
