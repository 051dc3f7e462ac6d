// Package postgres provides the database connection used by the GORM
// repositories. Despite the name it also opens sqlite for dev and tests,
// selected by config.
package postgres

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/smartrecipe/server/internal/infrastructure/config"
	gormmodels "github.com/smartrecipe/server/internal/infrastructure/persistence/gorm"
	"github.com/smartrecipe/server/internal/infrastructure/persistence/migrations"
)

// Connect opens the configured database with pooled connections. When
// auto_migrate is enabled the schema is synced from the models, which is
// the development path; production runs SQL migrations instead.
func Connect(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.App.Debug {
		logLevel = gormlogger.Info
	}

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.GetDSN())
	default:
		dialector = postgres.Open(cfg.GetDSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	if cfg.Database.AutoMigrate {
		log.Info("Running schema automigration")
		if err := db.AutoMigrate(gormmodels.AllModels()...); err != nil {
			return nil, fmt.Errorf("automigration failed: %w", err)
		}
	} else if cfg.Database.Driver == "postgres" {
		migrator, err := migrations.New(sqlDB, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create migrator: %w", err)
		}
		if err := migrator.Up(); err != nil {
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
	}

	log.Info("Database connected",
		zap.String("driver", cfg.Database.Driver),
		zap.String("database", cfg.Database.Database),
	)
	return db, nil
}
