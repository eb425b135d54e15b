package service

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/poskasir/catalog-api/internal/events"
	"github.com/poskasir/catalog-api/internal/listing"
	"github.com/poskasir/catalog-api/internal/logging"
	"github.com/poskasir/catalog-api/internal/models"
	"github.com/poskasir/catalog-api/internal/repo"
	"github.com/poskasir/catalog-api/internal/transport"
	"github.com/poskasir/catalog-api/internal/uploads"
)

var ErrValidation = errors.New("validation failed")

type CatalogService struct {
	Repo    *repo.GormRepo
	Events  *events.Producer
	Files   *uploads.Store
	Cleaner *uploads.Cleaner
}

// publish delivers a mutation event best-effort: failures are logged, never
// surfaced to the caller.
func (s *CatalogService) publish(ctx context.Context, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Events.Publish(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "topic", topic, "error", err)
	}
}

func (s *CatalogService) ListCategories(ctx context.Context, q transport.ListQuery, page listing.Page) (int64, []models.Category, error) {
	return s.Repo.ListCategories(ctx, q, page)
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return s.Repo.GetCategory(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	if req.CategoryName == "" {
		return nil, ErrValidation
	}
	category := models.Category{
		CategoryName: req.CategoryName,
		Description:  req.Description,
	}
	if err := s.Repo.CreateCategory(ctx, &category); err != nil {
		return nil, err
	}
	s.publish(ctx, events.TopicCategories, itoa(category.ID), map[string]any{
		"type":          "category_created",
		"categoryID":    category.ID,
		"category_name": category.CategoryName,
	})
	return &category, nil
}

func (s *CatalogService) PatchCategory(ctx context.Context, id uint, req transport.PatchCategoryRequest) error {
	updates := map[string]any{}
	if req.CategoryName != nil {
		updates["category_name"] = *req.CategoryName
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if err := s.Repo.PatchCategory(ctx, id, updates); err != nil {
		return err
	}
	s.publish(ctx, events.TopicCategories, itoa(id), map[string]any{
		"type":       "category_updated",
		"categoryID": id,
	})
	return nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.TopicCategories, itoa(id), map[string]any{
		"type":       "category_deleted",
		"categoryID": id,
	})
	return nil
}

func (s *CatalogService) ListProducts(ctx context.Context, q transport.ListQuery, page listing.Page) (int64, []transport.ProductRow, error) {
	return s.Repo.ListProducts(ctx, q, page)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

// CreateProduct resolves the stored image name with uploaded file taking
// precedence over an explicit URL, which takes precedence over the sentinel
// default.
func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest, file *multipart.FileHeader) (*models.Product, error) {
	if req.ProductName == "" {
		return nil, ErrValidation
	}

	image := uploads.DefaultImage
	switch {
	case file != nil:
		name, err := s.Files.Save(file)
		if err != nil {
			return nil, err
		}
		image = name
	case req.ImageURL != "":
		image = req.ImageURL
	}

	product := models.Product{
		ProductName:        req.ProductName,
		ProductDescription: req.ProductDescription,
		ProductPrice:       req.ProductPrice,
		CategoryID:         req.CategoryID,
		Image:              image,
	}
	if err := s.Repo.CreateProduct(ctx, &product); err != nil {
		return nil, err
	}
	s.publish(ctx, events.TopicProducts, itoa(product.ID), map[string]any{
		"type":         "product_created",
		"productID":    product.ID,
		"product_name": product.ProductName,
	})
	return &product, nil
}

// PatchProduct writes only the fields present in the request. A replacement
// upload swaps the stored filename and schedules deletion of the previous
// file once the row update has succeeded.
func (s *CatalogService) PatchProduct(ctx context.Context, id uint, req transport.PatchProductRequest, file *multipart.FileHeader) error {
	old, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	updates := map[string]any{}
	if req.ProductName != nil {
		updates["product_name"] = *req.ProductName
	}
	if req.ProductDescription != nil {
		updates["product_description"] = *req.ProductDescription
	}
	if req.ProductPrice != nil {
		updates["product_price"] = *req.ProductPrice
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if len(updates) == 0 && file == nil {
		return repo.ErrEmptyUpdate
	}

	if file != nil {
		name, err := s.Files.Save(file)
		if err != nil {
			return err
		}
		updates["image"] = name
	}

	if err := s.Repo.PatchProduct(ctx, id, updates); err != nil {
		return err
	}

	if file != nil {
		s.Cleaner.Remove(old.Image)
	}

	s.publish(ctx, events.TopicProducts, itoa(id), map[string]any{
		"type":      "product_updated",
		"productID": id,
	})
	return nil
}

// DeleteProduct removes the row first; the stored image file goes to the
// cleanup queue only after the delete has succeeded.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	old, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.Cleaner.Remove(old.Image)

	s.publish(ctx, events.TopicProducts, itoa(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	return nil
}
