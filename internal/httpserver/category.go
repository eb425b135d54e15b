package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/poskasir/catalog-api/internal/listing"
	"github.com/poskasir/catalog-api/internal/logging"
	"github.com/poskasir/catalog-api/internal/repo"
	"github.com/poskasir/catalog-api/internal/service"
	"github.com/poskasir/catalog-api/internal/transport"
)

const categoryPageSize = 5

type CategoryHTTP struct {
	Svc *service.CatalogService
}

func (h *CategoryHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.list")

	page := listing.ResolvePage(c.QueryParam("page"), c.QueryParam("limit"), categoryPageSize)
	q := transport.ListQuery{
		Search:    c.QueryParam("search"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}

	total, items, err := h.Svc.ListCategories(ctx, q, page)
	if err != nil {
		l.Error("list_categories_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list categories")
	}

	return c.JSON(http.StatusOK, listing.NewEnvelope(total, page, items))
}

func (h *CategoryHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.get")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	category, err := h.Svc.GetCategory(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Category not found")
		}
		l.Error("get_category_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get category")
	}

	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	category, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "category_name is required")
		}
		l.Error("create_category_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create category")
	}

	l.Info("category_created", "categoryID", category.ID)
	return c.JSON(http.StatusCreated, category)
}

func (h *CategoryHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.update")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.PatchCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.PatchCategory(ctx, uint(id), req); err != nil {
		switch {
		case errors.Is(err, repo.ErrEmptyUpdate):
			return echo.NewHTTPError(http.StatusBadRequest, "no category data to update")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Category not found")
		default:
			l.Error("update_category_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update category")
		}
	}

	// Respond with the stored row so untouched fields keep their values in
	// the body instead of echoing nils from the patch request.
	category, err := h.Svc.GetCategory(ctx, uint(id))
	if err != nil {
		l.Error("get_category_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get category")
	}

	l.Info("category_updated", "categoryID", id)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "category updated successfully",
		"data":    category,
	})
}

func (h *CategoryHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.DeleteCategory(ctx, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Category not found")
		}
		l.Error("delete_category_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete category")
	}

	l.Info("category_deleted", "categoryID", id)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "category deleted successfully",
	})
}
