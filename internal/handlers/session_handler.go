package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/luminacoach/lumina/internal/domain/session"
	"github.com/luminacoach/lumina/internal/httperr"
	ucSession "github.com/luminacoach/lumina/internal/usecase/session"
)

// ======================================================
// HANDLER
// ======================================================

type SessionHandler struct {
	list       *ucSession.ListSessions
	get        *ucSession.GetSession
	create     *ucSession.CreateSession
	update     *ucSession.UpdateSession
	cancel     *ucSession.CancelSession
	reschedule *ucSession.RescheduleSession
}

func NewSessionHandler(
	list *ucSession.ListSessions,
	get *ucSession.GetSession,
	create *ucSession.CreateSession,
	update *ucSession.UpdateSession,
	cancel *ucSession.CancelSession,
	reschedule *ucSession.RescheduleSession,
) *SessionHandler {
	return &SessionHandler{
		list:       list,
		get:        get,
		create:     create,
		update:     update,
		cancel:     cancel,
		reschedule: reschedule,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SessionRequest struct {
	ClientID     string    `json:"clientId" binding:"required"`
	EngagementID *string   `json:"engagementId"`
	Date         time.Time `json:"date" binding:"required"`
	Duration     int       `json:"duration"`
	Location     string    `json:"location"`
	Status       string    `json:"status"`
	SessionType  string    `json:"sessionType"`
	Focus        string    `json:"focus"`

	PaymentStatus    string `json:"paymentStatus"`
	BillingSource    string `json:"billingSource"`
	PackageRemaining *int   `json:"packageRemaining"`
}

func (r SessionRequest) input(providerID string) ucSession.SessionInput {
	return ucSession.SessionInput{
		ProviderID:       providerID,
		ClientID:         r.ClientID,
		EngagementID:     r.EngagementID,
		Date:             r.Date,
		Duration:         r.Duration,
		Location:         r.Location,
		Status:           r.Status,
		SessionType:      r.SessionType,
		Focus:            r.Focus,
		PaymentStatus:    r.PaymentStatus,
		BillingSource:    r.BillingSource,
		PackageRemaining: r.PackageRemaining,
	}
}

type RescheduleRequest struct {
	Date time.Time `json:"date" binding:"required"`
}

// ======================================================
// LIST
// ======================================================

// List accepts search, repeated status/location/payment values and an
// optional from/to window.
func (h *SessionHandler) List(c *gin.Context) {
	providerID := providerIDFrom(c)

	filter := domain.Filter{
		Search:    c.Query("search"),
		Statuses:  queryList(c, "status"),
		Locations: queryList(c, "location"),
		Payments:  queryList(c, "payment"),
	}

	var period ucSession.Period
	if v := c.Query("from"); v != "" {
		from, ok := parseDateParam(v, time.UTC)
		if !ok {
			httperr.BadRequest(c, "invalid_date", "Invalid from date.")
			return
		}
		period.From = from
	}
	if v := c.Query("to"); v != "" {
		to, ok := parseDateParam(v, time.UTC)
		if !ok {
			httperr.BadRequest(c, "invalid_date", "Invalid to date.")
			return
		}
		period.To = to
	}

	sessions, err := h.list.Execute(c.Request.Context(), providerID, filter, period)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_sessions")
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// ======================================================
// GET
// ======================================================

func (h *SessionHandler) Get(c *gin.Context) {
	s, err := h.get.Execute(c.Request.Context(), providerIDFrom(c), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_load_session")
		return
	}

	c.JSON(http.StatusOK, s)
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *SessionHandler) Create(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	s, err := h.create.Execute(c.Request.Context(), req.input(providerIDFrom(c)))
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_session")
		return
	}

	c.JSON(http.StatusCreated, s)
}

func (h *SessionHandler) Update(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	s, err := h.update.Execute(c.Request.Context(), c.Param("id"), req.input(providerIDFrom(c)))
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_session")
		return
	}

	c.JSON(http.StatusOK, s)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *SessionHandler) Cancel(c *gin.Context) {
	s, err := h.cancel.Execute(c.Request.Context(), providerIDFrom(c), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_cancel_session")
		return
	}

	c.JSON(http.StatusOK, s)
}

func (h *SessionHandler) Reschedule(c *gin.Context) {
	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	s, err := h.reschedule.Execute(c.Request.Context(), providerIDFrom(c), c.Param("id"), req.Date)
	if err != nil {
		httperr.FromError(c, err, "failed_to_reschedule_session")
		return
	}

	c.JSON(http.StatusOK, s)
}
