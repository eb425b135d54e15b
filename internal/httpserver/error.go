package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error as the {"error": <message>} body the admin
// UI expects. Store errors never leak their underlying message: handlers log
// the cause and raise an HTTPError with an opaque message.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		} else {
			msg = http.StatusText(code)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, map[string]string{"error": msg})
}
