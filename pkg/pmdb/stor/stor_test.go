package stor

import (
	"fmt"
	"testing"

	"github.com/project-mosaic/mosaic/pkg/pmdb"
	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory sqlite database. The database is
// named after the test so tests in this package don't share state, and the
// pool is pinned to a single connection so the in-memory database survives
// for the duration of the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, pmdb.RunMigrations(db))

	return db
}

func createTestUser(t *testing.T, users UserStor, name, email string) *pmmodel.User {
	t.Helper()

	user, err := users.CreateUser(&pmmodel.User{
		Name:     name,
		Email:    email,
		Password: "not-a-real-hash",
		IsActive: true,
	})
	require.NoError(t, err)

	return user
}
