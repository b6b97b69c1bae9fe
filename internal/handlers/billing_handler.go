package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luminacoach/lumina/internal/audit"
	"github.com/luminacoach/lumina/internal/config"
	"github.com/luminacoach/lumina/internal/domain/billing"
	"github.com/luminacoach/lumina/internal/domain/listfilter"
	"github.com/luminacoach/lumina/internal/httperr"
	"github.com/luminacoach/lumina/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type BillingHandler struct {
	db      *gorm.DB
	config  *config.Config
	gateway billing.Gateway
	audit   *audit.Dispatcher
}

// NewBillingHandler accepts a nil gateway; checkout then answers 503.
func NewBillingHandler(db *gorm.DB, cfg *config.Config, gateway billing.Gateway, audit *audit.Dispatcher) *BillingHandler {
	return &BillingHandler{db: db, config: cfg, gateway: gateway, audit: audit}
}

type InvoiceResponse struct {
	models.Invoice
	ClientName string `json:"clientName"`
}

// ======================================================
// LIST / SUMMARY
// ======================================================

// ListInvoices returns invoices newest first; repeated status values narrow
// the list.
func (h *BillingHandler) ListInvoices(c *gin.Context) {
	providerID := providerIDFrom(c)

	statuses := queryList(c, "status")
	for _, s := range statuses {
		if _, err := billing.ParseInvoiceStatus(s); err != nil {
			httperr.FromError(c, err, "failed_to_list_invoices")
			return
		}
	}

	invoices, err := h.invoices(c, providerID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_invoices", "Could not load invoices.")
		return
	}

	out := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		if !listfilter.InSet(inv.Status, statuses) {
			continue
		}
		out = append(out, InvoiceResponse{Invoice: inv, ClientName: inv.Client.Name})
	}

	c.JSON(http.StatusOK, out)
}

func (h *BillingHandler) Summary(c *gin.Context) {
	invoices, err := h.invoices(c, providerIDFrom(c))
	if err != nil {
		httperr.Internal(c, "failed_to_summarize_billing", "Could not load invoices.")
		return
	}

	c.JSON(http.StatusOK, billing.Summarize(invoices))
}

func (h *BillingHandler) invoices(c *gin.Context, providerID string) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := h.db.WithContext(c.Request.Context()).
		Where("provider_id = ?", providerID).
		Preload("Client").
		Order("issued_at DESC, id ASC").
		Find(&invoices).Error
	return invoices, err
}

// ======================================================
// CHECKOUT
// ======================================================

// Checkout creates a hosted payment link for one unpaid invoice and stores
// it on the invoice.
func (h *BillingHandler) Checkout(c *gin.Context) {
	providerID := providerIDFrom(c)

	if h.gateway == nil {
		httperr.FromError(c, httperr.ErrBusiness("payments_disabled"), "failed_to_create_checkout")
		return
	}

	var inv models.Invoice
	err := h.db.
		Where("id = ? AND provider_id = ?", c.Param("id"), providerID).
		Preload("Client").
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "invoice_not_found", "Invoice not found.")
		return
	}
	if err != nil {
		httperr.Internal(c, "failed_to_load_invoice", "Could not load invoice.")
		return
	}

	if billing.InvoiceStatus(inv.Status) == billing.InvoicePaid {
		httperr.FromError(c, httperr.ErrBusiness("invoice_already_paid"), "failed_to_create_checkout")
		return
	}

	link, err := h.gateway.CreateCheckout(c.Request.Context(), billing.CheckoutRequest{
		InvoiceID:   inv.ID,
		Description: inv.Description,
		Amount:      inv.Amount,
		Currency:    inv.Currency,
		PayerEmail:  inv.Client.Email,
		BackURL:     h.config.PublicBaseURL + "/billing",
	})
	if err != nil {
		httperr.Write(c, http.StatusBadGateway, "checkout_failed", "Could not create payment link.")
		return
	}

	if err := h.db.Model(&inv).Update("checkout_url", link.URL).Error; err != nil {
		httperr.Internal(c, "failed_to_update_invoice", "Could not save payment link.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		Action:     "checkout_created",
		Entity:     "invoice",
		EntityID:   &inv.ID,
		Metadata:   map[string]any{"preferenceId": link.ID},
	})

	c.JSON(http.StatusOK, gin.H{"id": link.ID, "url": link.URL})
}
