package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luminacoach/lumina/internal/httperr"
	"github.com/luminacoach/lumina/internal/seed"
)

// DevHandler is only routed when DEV_MODE is on.
type DevHandler struct {
	db *gorm.DB
}

func NewDevHandler(db *gorm.DB) *DevHandler {
	return &DevHandler{db: db}
}

// Reset wipes the caller's practice data and loads the demo practice again.
func (h *DevHandler) Reset(c *gin.Context) {
	providerID := providerIDFrom(c)
	ctx := c.Request.Context()

	cleared, err := seed.Restore(ctx, h.db, providerID, time.Now())
	if err != nil {
		httperr.Internal(c, "failed_to_reset", "Could not restore demo data.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Demo data restored.",
		"cleared": cleared,
	})
}
