package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/MilanKovacevic/FeroCast/app/models"
	"github.com/MilanKovacevic/FeroCast/internal/pkg/apperr"
	"github.com/MilanKovacevic/FeroCast/internal/pkg/env"
)

const maxRetries = 5
const retryDelay = 5 * time.Second

// Config holds the connection parameters for the MySQL pool.
type Config struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

// ConfigFromEnv fills a Config from the process environment.
func ConfigFromEnv() Config {
	return Config{
		User:     env.GetEnv("DB_USER", ""),
		Password: env.GetEnv("DB_PASSWORD", ""),
		Host:     env.GetEnv("DB_HOST", "127.0.0.1"),
		Port:     env.GetEnv("DB_PORT", "3306"),
		Name:     env.GetEnv("DB_NAME", ""),
	}
}

// Connect opens the pooled MySQL connection and migrates the schema.
// The returned handle is constructed once at process start and injected
// into the repository factory; there is no package-level instance.
func Connect(cfg Config) (*gorm.DB, error) {
	if cfg.User == "" || cfg.Name == "" {
		return nil, apperr.Configuration("database connection parameters missing", fmt.Errorf("user=%q name=%q", cfg.User, cfg.Name))
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)

	var db *gorm.DB
	var err error
	for i := 0; i < maxRetries; i++ {
		db, err = gorm.Open(mysql.New(mysql.Config{
			DSN:                       dsn,
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		}), &gorm.Config{})
		if err == nil {
			if migrateErr := db.AutoMigrate(
				&models.News{},
				&models.Product{},
			); migrateErr != nil {
				return nil, apperr.Storage(migrateErr)
			}
			return db, nil
		}

		log.Printf("Failed to connect to database (try %d/%d): %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	return nil, apperr.Storage(err)
}

// Close disposes the underlying connection pool at shutdown.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
