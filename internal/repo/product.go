package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/poskasir/catalog-api/internal/listing"
	"github.com/poskasir/catalog-api/internal/models"
	"github.com/poskasir/catalog-api/internal/transport"
)

var productSortColumns = map[string]string{
	"id":            "products.id",
	"product_name":  "products.product_name",
	"product_price": "products.product_price",
	"category_name": "categories.category_name",
}

const productProjection = "products.id, products.product_name, products.product_description, " +
	"products.product_price, products.category_id, products.image, categories.category_name"

// ListProducts runs the two-round-trip list contract over the product/category
// join: one data query with sort and limit/offset, then one count query over
// the same join using only the filter predicates.
func (r *GormRepo) ListProducts(ctx context.Context, q transport.ListQuery, page listing.Page) (int64, []transport.ProductRow, error) {
	filters := []listing.Filter{
		{Column: "products.product_name", Value: q.Search},
		{Column: "categories.category_name", Value: q.Category},
	}

	base := func() *gorm.DB {
		join := r.DB.WithContext(ctx).
			Table("products").
			Joins("LEFT JOIN categories ON products.category_id = categories.id")
		return listing.ApplyFilters(join, filters)
	}

	data := base().Select(productProjection)
	if sort, ok := listing.ResolveSort(productSortColumns, q.SortBy, q.SortOrder); ok {
		data = data.Order(sort.OrderClause())
	}

	rows := make([]transport.ProductRow, 0, page.Limit)
	if err := data.Limit(page.Limit).Offset(page.Offset).Scan(&rows).Error; err != nil {
		return 0, nil, err
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return 0, nil, err
	}

	return total, rows, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *GormRepo) PatchProduct(ctx context.Context, id uint, updates map[string]any) error {
	if len(updates) == 0 {
		return ErrEmptyUpdate
	}
	res := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
