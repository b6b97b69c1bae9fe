package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Page is one slice of a paginated listing.
type Page[T any] struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Items []T   `json:"items"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Paged[T any](c *gin.Context, page, limit int, total int64, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, Page[T]{
		Page:  page,
		Limit: limit,
		Total: total,
		Items: items,
	})
}
