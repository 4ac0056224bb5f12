package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"gym-service/internal/apperror"
)

// Pagination is the envelope pagination block for list responses
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func newPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

// parsePagination reads page/limit query parameters, clamping to page >= 1
// and limit >= 1 with defaults 1/10
func parsePagination(c echo.Context) (page, limit int) {
	page, limit = 1, 10
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v >= 1 {
		page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v >= 1 {
		limit = v
	}
	return page, limit
}

func jsonSuccess(c echo.Context, code int, message string, data echo.Map) error {
	body := echo.Map{"status": "success"}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	return c.JSON(code, body)
}

func jsonList(c echo.Context, data echo.Map, p Pagination) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":     "success",
		"data":       data,
		"pagination": p,
	})
}

func jsonError(c echo.Context, code int, message string) error {
	return c.JSON(code, echo.Map{"status": "error", "message": message})
}

func jsonAppError(c echo.Context, err *apperror.Error) error {
	return jsonError(c, err.Status, err.Message)
}
