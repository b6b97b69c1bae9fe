package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luminacoach/lumina/internal/audit"
	"github.com/luminacoach/lumina/internal/httperr"
	"github.com/luminacoach/lumina/internal/infra/storage"
	"github.com/luminacoach/lumina/internal/media"
	"github.com/luminacoach/lumina/internal/models"
	"github.com/luminacoach/lumina/internal/timezone"
)

type MeHandler struct {
	db      *gorm.DB
	avatars storage.ObjectStore
	audit   *audit.Dispatcher
}

// NewMeHandler accepts a nil store; avatar uploads then answer 503.
func NewMeHandler(db *gorm.DB, avatars storage.ObjectStore, audit *audit.Dispatcher) *MeHandler {
	return &MeHandler{db: db, avatars: avatars, audit: audit}
}

type UpdateMeRequest struct {
	Name         string `json:"name" binding:"required"`
	PracticeName string `json:"practiceName"`
	Timezone     string `json:"timezone"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	provider, ok := h.load(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, provider)
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if req.Timezone != "" && !timezone.IsValid(req.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	provider, ok := h.load(c)
	if !ok {
		return
	}

	provider.Name = strings.TrimSpace(req.Name)
	provider.PracticeName = strings.TrimSpace(req.PracticeName)
	provider.Timezone = req.Timezone

	if err := h.db.Save(provider).Error; err != nil {
		httperr.Internal(c, "failed_to_update_provider", "Could not update profile.")
		return
	}

	h.audit.Dispatch(audit.Event{ProviderID: provider.ID, Action: "profile_updated", Entity: "provider", EntityID: &provider.ID})

	c.JSON(http.StatusOK, provider)
}

// UploadAvatar takes a multipart "avatar" file, converts it to a square
// webp and stores it under avatars/<providerID>.webp.
func (h *MeHandler) UploadAvatar(c *gin.Context) {
	if h.avatars == nil {
		httperr.FromError(c, httperr.ErrBusiness("storage_disabled"), "failed_to_upload_avatar")
		return
	}

	provider, ok := h.load(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, media.MaxUploadSize+1<<20)
	file, err := c.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Missing avatar file.")
		return
	}
	if file.Size > media.MaxUploadSize {
		httperr.BadRequest(c, "file_too_large", "Avatar must be 5 MB or smaller.")
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Could not read avatar file.")
		return
	}
	defer f.Close()

	body, err := media.Avatar(f)
	if errors.Is(err, media.ErrUnsupportedImage) {
		httperr.BadRequest(c, "unsupported_image", "Use a PNG, JPEG or GIF image.")
		return
	}
	if err != nil {
		httperr.Internal(c, "failed_to_process_avatar", "Could not process avatar.")
		return
	}

	url, err := h.avatars.Put(c.Request.Context(), fmt.Sprintf("avatars/%s.webp", provider.ID), body, "image/webp")
	if err != nil {
		httperr.Write(c, http.StatusBadGateway, "failed_to_store_avatar", "Could not store avatar.")
		return
	}

	if err := h.db.Model(provider).Update("avatar_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_provider", "Could not update profile.")
		return
	}
	provider.AvatarURL = url

	h.audit.Dispatch(audit.Event{ProviderID: provider.ID, Action: "avatar_uploaded", Entity: "provider", EntityID: &provider.ID})

	c.JSON(http.StatusOK, provider)
}

func (h *MeHandler) load(c *gin.Context) (*models.Provider, bool) {
	var provider models.Provider
	err := h.db.First(&provider, "id = ?", providerIDFrom(c)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Unauthorized(c, "provider_not_found", "Account no longer exists.")
		return nil, false
	}
	if err != nil {
		httperr.Internal(c, "failed_to_load_provider", "Could not load profile.")
		return nil, false
	}
	return &provider, true
}
