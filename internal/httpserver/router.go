package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/poskasir/catalog-api/internal/middleware"
)

type Deps struct {
	CategoryHandler *CategoryHTTP
	ProductHandler  *ProductHTTP
	UserHandler     *UserHTTP
	Auth            *middleware.AuthMiddleware
	UploadDir       string
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "API is running") })
	e.Static("/uploads", d.UploadDir)

	categories := e.Group("/categories")
	categories.GET("", d.CategoryHandler.List)
	categories.GET("/:id", d.CategoryHandler.Get)
	categories.POST("", d.CategoryHandler.Create, d.Auth.RequireAuth, d.Auth.RequireSuperadmin)
	categories.PUT("/:id", d.CategoryHandler.Update, d.Auth.RequireAuth, d.Auth.RequireSuperadmin)
	categories.DELETE("/:id", d.CategoryHandler.Delete, d.Auth.RequireAuth, d.Auth.RequireSuperadmin)

	products := e.Group("/products")
	products.GET("", d.ProductHandler.List)
	products.GET("/:id", d.ProductHandler.Get)
	products.POST("", d.ProductHandler.Create, d.Auth.RequireAuth, d.Auth.RequireSuperadmin)
	products.PUT("/:id", d.ProductHandler.Update, d.Auth.RequireAuth, d.Auth.RequireSuperadmin)
	products.DELETE("/:id", d.ProductHandler.Delete, d.Auth.RequireAuth, d.Auth.RequireSuperadmin)

	users := e.Group("/users")
	users.POST("/register", d.UserHandler.Register)
	users.POST("/login", d.UserHandler.Login)
	users.GET("", d.UserHandler.List, d.Auth.RequireAuth, d.Auth.RequireSuperadmin)
	users.PUT("/profile", d.UserHandler.UpdateProfile, d.Auth.RequireAuth)
	users.PUT("/password", d.UserHandler.UpdatePassword, d.Auth.RequireAuth)
	users.DELETE("/:id", d.UserHandler.Delete, d.Auth.RequireAuth, d.Auth.RequireSuperadmin)
	users.PATCH("/:id/role", d.UserHandler.UpdateRole, d.Auth.RequireAuth, d.Auth.RequireSuperadmin)
}
