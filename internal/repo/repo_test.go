package repo

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/poskasir/catalog-api/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.Category{}, &models.Product{}, &models.User{}))

	return &GormRepo{DB: gdb}
}
