package stor

import (
	"github.com/project-mosaic/mosaic/pkg/config"
	"gorm.io/gorm"
)

func WithTxRetry(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error

	retryCount := config.GetIntKeyWithDefault("DB_TX_RETRY", 3)

	if retryCount < 3 {
		retryCount = 3
	}

	for i := 0; i < retryCount; i++ {
		err = db.Transaction(fn)
		if err == nil {
			break
		}
	}

	return err
}
