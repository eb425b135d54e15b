package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/poskasir/catalog-api/internal/listing"
	"github.com/poskasir/catalog-api/internal/models"
	"github.com/poskasir/catalog-api/internal/transport"
)

func seedCategories(t *testing.T, r *GormRepo, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, r.DB.Create(&models.Category{CategoryName: name}).Error)
	}
}

func TestListCategoriesPagination(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	for i := 1; i <= 7; i++ {
		seedCategories(t, r, fmt.Sprintf("category-%02d", i))
	}

	page := listing.ResolvePage("", "", 5)
	total, items, err := r.ListCategories(ctx, transport.ListQuery{}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, items, 5)

	page = listing.ResolvePage("2", "", 5)
	total, items, err = r.ListCategories(ctx, transport.ListQuery{}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, items, 2)
}

func TestListCategoriesSearchSubstring(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	seedCategories(t, r, "Minuman", "Makanan", "Snack")

	page := listing.ResolvePage("", "", 5)
	total, items, err := r.ListCategories(ctx, transport.ListQuery{Search: "anan"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Makanan", items[0].CategoryName)
}

func TestListCategoriesEmptySearchMeansAbsent(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	seedCategories(t, r, "Minuman", "Makanan", "Snack")

	page := listing.ResolvePage("", "", 5)
	totalNone, itemsNone, err := r.ListCategories(ctx, transport.ListQuery{}, page)
	require.NoError(t, err)
	totalEmpty, itemsEmpty, err := r.ListCategories(ctx, transport.ListQuery{Search: ""}, page)
	require.NoError(t, err)

	assert.Equal(t, totalNone, totalEmpty)
	assert.Equal(t, itemsNone, itemsEmpty)
}

func TestListCategoriesSortRequiresBothParams(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	seedCategories(t, r, "Charlie", "Alpha", "Bravo")

	page := listing.ResolvePage("", "", 5)

	_, plain, err := r.ListCategories(ctx, transport.ListQuery{}, page)
	require.NoError(t, err)
	_, onlyBy, err := r.ListCategories(ctx, transport.ListQuery{SortBy: "category_name"}, page)
	require.NoError(t, err)
	_, onlyOrder, err := r.ListCategories(ctx, transport.ListQuery{SortOrder: "desc"}, page)
	require.NoError(t, err)

	assert.Equal(t, plain, onlyBy)
	assert.Equal(t, plain, onlyOrder)

	_, sorted, err := r.ListCategories(ctx, transport.ListQuery{SortBy: "category_name", SortOrder: "desc"}, page)
	require.NoError(t, err)
	require.Len(t, sorted, 3)
	assert.Equal(t, "Charlie", sorted[0].CategoryName)
	assert.Equal(t, "Bravo", sorted[1].CategoryName)
	assert.Equal(t, "Alpha", sorted[2].CategoryName)
}

func TestPatchCategoryEmptyUpdate(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	seedCategories(t, r, "Minuman")

	err := r.PatchCategory(ctx, 1, map[string]any{})
	require.ErrorIs(t, err, ErrEmptyUpdate)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	err := r.DeleteCategory(ctx, 999)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
