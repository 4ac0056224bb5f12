package handler

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gym-service/internal/apperror"
	"gym-service/pkg/logger"
)

// HTTPErrorHandler renders every unhandled error in the response envelope.
// Stack traces are attached only outside production.
func HTTPErrorHandler(production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		log := logger.FromEcho(c)

		code := http.StatusInternalServerError
		message := "Something went wrong!"

		var appErr *apperror.Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			code = appErr.Status
			message = appErr.Message
		case errors.As(err, &httpErr):
			code = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
		default:
			message = err.Error()
		}

		if code >= http.StatusInternalServerError {
			log.Error("Unhandled error", zap.Error(err), zap.String("path", c.Request().URL.Path))
		}

		body := echo.Map{"status": "error", "message": message}
		if !production && code >= http.StatusInternalServerError {
			body["stack"] = string(debug.Stack())
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}
