package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/luminacoach/lumina/internal/domain/listfilter"
	"github.com/luminacoach/lumina/internal/middleware"
)

func providerIDFrom(c *gin.Context) string {
	return c.MustGet(middleware.ContextProviderID).(string)
}

func invalidRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error_code": "invalid_request",
		"message":    err.Error(),
	})
}

// parseDateParam accepts RFC3339 timestamps or plain YYYY-MM-DD dates
// (midnight in loc).
func parseDateParam(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// queryList collects a repeated or comma separated query parameter.
func queryList(c *gin.Context, key string) []string {
	return listfilter.Clean(c.QueryArray(key))
}

// queryRepeated collects a repeated query parameter whose values may
// themselves contain commas.
func queryRepeated(c *gin.Context, key string) []string {
	return listfilter.CleanRepeated(c.QueryArray(key))
}
