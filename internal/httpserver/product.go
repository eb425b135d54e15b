package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/poskasir/catalog-api/internal/listing"
	"github.com/poskasir/catalog-api/internal/logging"
	"github.com/poskasir/catalog-api/internal/models"
	"github.com/poskasir/catalog-api/internal/repo"
	"github.com/poskasir/catalog-api/internal/service"
	"github.com/poskasir/catalog-api/internal/transport"
)

const productPageSize = 10

type ProductHTTP struct {
	Svc *service.CatalogService
}

// uploadsBase derives the absolute prefix for stored images from the
// incoming request, e.g. "http://localhost:8080/uploads/".
func uploadsBase(c echo.Context) string {
	return c.Scheme() + "://" + c.Request().Host + "/uploads/"
}

// imageURL materializes an absolute URL for a stored image. Externally
// hosted values (anything with an http prefix) pass through unchanged.
func imageURL(base, image string) string {
	if strings.HasPrefix(image, "http") {
		return image
	}
	return base + image
}

func (h *ProductHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	page := listing.ResolvePage(c.QueryParam("page"), c.QueryParam("limit"), productPageSize)
	q := transport.ListQuery{
		Search:    c.QueryParam("search"),
		Category:  c.QueryParam("category"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}

	total, rows, err := h.Svc.ListProducts(ctx, q, page)
	if err != nil {
		l.Error("list_products_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	base := uploadsBase(c)
	for i := range rows {
		rows[i].ImageURL = imageURL(base, rows[i].Image)
	}

	return c.JSON(http.StatusOK, listing.NewEnvelope(total, page, rows))
}

func (h *ProductHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	product, err := h.Svc.GetProduct(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		l.Error("get_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, productResponse(c, product))
}

func (h *ProductHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	// Optional multipart file field; absent for JSON bodies.
	file, err := c.FormFile("image")
	if err != nil {
		file = nil
	}

	product, err := h.Svc.CreateProduct(ctx, req, file)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "product_name is required")
		}
		l.Error("create_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create product")
	}

	l.Info("product_created", "productID", product.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Product created successfully",
		"data":    productResponse(c, product),
	})
}

func (h *ProductHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	file, err := c.FormFile("image")
	if err != nil {
		file = nil
	}

	if err := h.Svc.PatchProduct(ctx, uint(id), req, file); err != nil {
		switch {
		case errors.Is(err, repo.ErrEmptyUpdate):
			return echo.NewHTTPError(http.StatusBadRequest, "no product data to update")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		default:
			l.Error("update_product_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
		}
	}

	l.Info("product_updated", "productID", id)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product successfully updated",
	})
}

func (h *ProductHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.DeleteProduct(ctx, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		l.Error("delete_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}

	l.Info("product_deleted", "productID", id)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product deleted successfully",
	})
}

func productResponse(c echo.Context, p *models.Product) transport.ProductRow {
	return transport.ProductRow{
		ID:                 p.ID,
		ProductName:        p.ProductName,
		ProductDescription: p.ProductDescription,
		ProductPrice:       p.ProductPrice,
		CategoryID:         p.CategoryID,
		Image:              p.Image,
		ImageURL:           imageURL(uploadsBase(c), p.Image),
	}
}
