package database

import (
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/medihire/medihire/internal/config"
	"github.com/medihire/medihire/internal/models"
)

// Connect opens the Postgres connection and runs migrations.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	zap.L().Info("database connection established", zap.String("db", cfg.DBName))

	if err := db.AutoMigrate(models.All()...); err != nil {
		return nil, err
	}
	return db, nil
}
