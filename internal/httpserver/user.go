package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/poskasir/catalog-api/internal/logging"
	"github.com/poskasir/catalog-api/internal/middleware"
	"github.com/poskasir/catalog-api/internal/service"
	"github.com/poskasir/catalog-api/internal/transport"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
		}
		l.Error("register_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to register")
	}

	l.Info("user_registered", "userID", user.ID, "role", user.Role)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User successfully registered as " + user.Role + "!",
		"userId":  user.ID,
	})
}

func (h *UserHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 401, "email", req.Email)
			return echo.NewHTTPError(http.StatusUnauthorized, "Email or password is incorrect")
		}
		l.Error("login_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot log in")
	}

	l.Info("login_successful", "email", req.Email)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   res.Token,
		"user":    res.User,
	})
}

func (h *UserHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list")

	rows, err := h.Svc.ListUsers(ctx)
	if err != nil {
		l.Error("list_users_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list users")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Getting all users data successfully",
		"data":    rows,
	})
}

func (h *UserHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_profile")

	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateProfile(ctx, p.ID, req); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		l.Error("update_profile_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update profile")
	}

	l.Info("profile_updated", "userID", p.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Profile successfully updated",
	})
}

func (h *UserHTTP) UpdatePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_password")

	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	var req transport.UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdatePassword(ctx, p.ID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusUnauthorized, "Old password incorrect")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		default:
			l.Error("update_password_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to update password")
		}
	}

	l.Info("password_updated", "userID", p.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Password successfully updated",
	})
}

func (h *UserHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete")

	id := c.Param("id")
	if err := h.Svc.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		l.Error("delete_user_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete user")
	}

	l.Info("user_deleted", "userID", id)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "User successfully deleted",
	})
}

func (h *UserHTTP) UpdateRole(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_role")

	id := c.Param("id")

	var req transport.UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateRole(ctx, id, req.Role); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		default:
			l.Error("update_role_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to update role")
		}
	}

	l.Info("role_updated", "userID", id, "role", req.Role)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Role successfully updated",
	})
}
