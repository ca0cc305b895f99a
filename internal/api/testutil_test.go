package api

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ericli5683/food-recipes/internal/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB opens an in-memory SQLite database with the recipe schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

// stubUploader records uploads and returns a fixed URL.
type stubUploader struct {
	url   string
	err   error
	calls int
}

func (s *stubUploader) SaveImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	s.calls++
	return s.url, s.err
}
