package pmdb

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/project-mosaic/mosaic/pkg/config"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SqliteInMemoryDSN is the DSN tests use for an in-memory database.
const SqliteInMemoryDSN = "file::memory:?cache=shared"

func MakeDSNFromEnv() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("DB_USERNAME"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_DATABASE"))
}

const maxDBRetries = 5

// MustConnectToDB will attempt to connect to the database maxDBRetries times. If it isn't
// successful after that number of retries then it will call log.Fatalf(), which will cause
// the server to exit. Between retry attempts it will sleep for 3 seconds.
func MustConnectToDB() *gorm.DB {
	var (
		err error
		db  *gorm.DB
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Duplicate-key detection (slug collisions) relies on translated errors.
		TranslateError: true,
	}

	retryCount := 1
	for {
		db, err = gorm.Open(mysql.Open(MakeDSNFromEnv()), gormConfig)
		switch {
		case err == nil:
			setPoolBounds(db)
			return db
		case retryCount >= maxDBRetries:
			log.Fatalf("Failed to open db (%s): %s", MakeDSNFromEnv(), err)
		default:
			retryCount++
			time.Sleep(3 * time.Second)
		}
	}
}

func setPoolBounds(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}

	sqlDB.SetMaxIdleConns(config.GetIntKeyWithDefault("DB_MAX_IDLE_CONNS", 2))
	sqlDB.SetMaxOpenConns(config.GetIntKeyWithDefault("DB_MAX_OPEN_CONNS", 10))
}
