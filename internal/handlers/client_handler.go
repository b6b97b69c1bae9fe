package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luminacoach/lumina/internal/audit"
	domain "github.com/luminacoach/lumina/internal/domain/client"
	"github.com/luminacoach/lumina/internal/dto"
	"github.com/luminacoach/lumina/internal/httperr"
	"github.com/luminacoach/lumina/internal/models"
	"github.com/luminacoach/lumina/internal/timezone"
)

type ClientHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewClientHandler(db *gorm.DB, audit *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{db: db, audit: audit}
}

type ClientRequest struct {
	Name      string     `json:"name" binding:"required"`
	Email     string     `json:"email" binding:"omitempty,email"`
	Phone     string     `json:"phone"`
	Program   string     `json:"program"`
	Status    string     `json:"status"`
	Notes     string     `json:"notes"`
	StartDate *time.Time `json:"startDate"`
}

func (r ClientRequest) apply(m *models.Client) error {
	status, err := domain.ParseStatus(r.Status)
	if err != nil {
		return err
	}

	m.Name = strings.TrimSpace(r.Name)
	m.Email = strings.ToLower(strings.TrimSpace(r.Email))
	m.Phone = strings.TrimSpace(r.Phone)
	m.Program = strings.TrimSpace(r.Program)
	m.Status = string(status)
	m.Notes = r.Notes
	m.StartDate = r.StartDate
	return nil
}

// ======================================================
// LIST CLIENTS
// ======================================================

// List returns clients in creation order, narrowed by search, status and
// program query parameters.
func (h *ClientHandler) List(c *gin.Context) {
	providerID := providerIDFrom(c)

	var clients []models.Client
	if err := h.db.
		Where("provider_id = ?", providerID).
		Preload("Engagements").
		Order("created_at ASC, id ASC").
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "Could not load clients.")
		return
	}

	filter := domain.Filter{
		Search:   c.Query("search"),
		Statuses: queryList(c, "status"),
		Programs: queryRepeated(c, "program"),
	}

	c.JSON(http.StatusOK, domain.Apply(dto.NewClientDTOs(clients), filter, dto.ClientFields))
}

// ======================================================
// GET CLIENT (with sessions and engagements)
// ======================================================

func (h *ClientHandler) Get(c *gin.Context) {
	providerID := providerIDFrom(c)

	client, ok := h.load(c, providerID, c.Param("id"))
	if !ok {
		return
	}

	var provider models.Provider
	if err := h.db.First(&provider, "id = ?", providerID).Error; err != nil {
		httperr.Internal(c, "provider_not_found", "Could not load account.")
		return
	}

	var sessions []models.Session
	if err := h.db.
		Where("provider_id = ? AND client_id = ?", providerID, client.ID).
		Preload("Engagement").
		Preload("Notes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Order("date ASC, id ASC").
		Find(&sessions).Error; err != nil {

		httperr.Internal(c, "failed_to_list_sessions", "Could not load sessions.")
		return
	}
	for i := range sessions {
		sessions[i].Client = *client
	}

	out := dto.NewClientDTO(*client)
	out.Sessions = dto.NewSessionDTOs(sessions, timezone.Location(provider.Timezone))

	c.JSON(http.StatusOK, out)
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	providerID := providerIDFrom(c)

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	client := models.Client{ProviderID: providerID}
	if err := req.apply(&client); err != nil {
		httperr.FromError(c, err, "failed_to_create_client")
		return
	}
	if client.StartDate == nil {
		now := time.Now().UTC()
		client.StartDate = &now
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Could not create client.")
		return
	}

	h.audit.Dispatch(audit.Event{ProviderID: providerID, Action: "client_created", Entity: "client", EntityID: &client.ID})

	c.JSON(http.StatusCreated, dto.NewClientDTO(client))
}

func (h *ClientHandler) Update(c *gin.Context) {
	providerID := providerIDFrom(c)

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	client, ok := h.load(c, providerID, c.Param("id"))
	if !ok {
		return
	}

	if err := req.apply(client); err != nil {
		httperr.FromError(c, err, "failed_to_update_client")
		return
	}

	if err := h.db.Omit("Engagements").Save(client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Could not update client.")
		return
	}

	h.audit.Dispatch(audit.Event{ProviderID: providerID, Action: "client_updated", Entity: "client", EntityID: &client.ID})

	c.JSON(http.StatusOK, dto.NewClientDTO(*client))
}

func (h *ClientHandler) load(c *gin.Context, providerID, id string) (*models.Client, bool) {
	var client models.Client
	err := h.db.
		Where("id = ? AND provider_id = ?", id, providerID).
		Preload("Engagements").
		First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return nil, false
	}
	if err != nil {
		httperr.Internal(c, "failed_to_load_client", "Could not load client.")
		return nil, false
	}
	return &client, true
}
