package persistence

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"reacji/internal/config"
)

type DB struct {
	Config *config.Config

	db *gorm.DB
}

func (db *DB) Init(_ context.Context) error {
	gormDB, err := gorm.Open(postgres.Open(db.Config.PostgresURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	db.db = gormDB

	return nil
}

func (db *DB) Model(a any) *gorm.DB {
	return db.db.Model(a)
}

func (db *DB) DB() (*sql.DB, error) {
	return db.db.DB()
}

func (db *DB) Shutdown(_ context.Context) error {
	sqlDB, err := db.db.DB()
	if err != nil {
		return nil
	}
	return sqlDB.Close()
}
