package database

import (
	"fmt"
	"time"

	"parcel-tracking/config"
	"parcel-tracking/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Config returns the gorm settings shared by every dialect the service runs
// on. Timestamps are always written in UTC and driver errors are translated
// so unique violations surface as gorm.ErrDuplicatedKey.
func Config() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}
}

// DSN builds the PostgreSQL connection string from the app config.
func DSN(cfg config.AppConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBPort, cfg.DBUsername, cfg.DBPassword, cfg.DBDatabase, cfg.DBSSLMode)
}

// Open connects to PostgreSQL without touching the schema.
func Open(cfg config.AppConfig) (*gorm.DB, error) {
	var err error
	DB, err = gorm.Open(postgres.Open(DSN(cfg)), Config())
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")
	return DB, nil
}

// InitDB opens the database connection and brings the schema up to date.
func InitDB(cfg config.AppConfig) (*gorm.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
