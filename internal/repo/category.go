package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/poskasir/catalog-api/internal/listing"
	"github.com/poskasir/catalog-api/internal/models"
	"github.com/poskasir/catalog-api/internal/transport"
)

var categorySortColumns = map[string]string{
	"id":            "id",
	"category_name": "category_name",
	"description":   "description",
}

func (r *GormRepo) ListCategories(ctx context.Context, q transport.ListQuery, page listing.Page) (int64, []models.Category, error) {
	filters := []listing.Filter{
		{Column: "category_name", Value: q.Search},
	}

	base := func() *gorm.DB {
		return listing.ApplyFilters(r.DB.WithContext(ctx).Model(&models.Category{}), filters)
	}

	data := base()
	if sort, ok := listing.ResolveSort(categorySortColumns, q.SortBy, q.SortOrder); ok {
		data = data.Order(sort.OrderClause())
	}

	items := make([]models.Category, 0, page.Limit)
	if err := data.Limit(page.Limit).Offset(page.Offset).Find(&items).Error; err != nil {
		return 0, nil, err
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.DB.WithContext(ctx).Create(category).Error
}

func (r *GormRepo) PatchCategory(ctx context.Context, id uint, updates map[string]any) error {
	if len(updates) == 0 {
		return ErrEmptyUpdate
	}
	res := r.DB.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
