package billing

import (
	"context"
	"strings"

	"github.com/luminacoach/lumina/internal/httperr"
	"github.com/luminacoach/lumina/internal/models"
)

type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "paid"
	InvoicePending InvoiceStatus = "pending"
	InvoiceOverdue InvoiceStatus = "overdue"
)

func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	switch InvoiceStatus(strings.ToLower(strings.TrimSpace(s))) {
	case InvoicePending, "":
		return InvoicePending, nil
	case InvoicePaid:
		return InvoicePaid, nil
	case InvoiceOverdue:
		return InvoiceOverdue, nil
	}
	return "", httperr.ErrBusiness("invalid_invoice_status")
}

// Summary is what the billing cards show.
type Summary struct {
	Paid        float64 `json:"paid"`
	Pending     float64 `json:"pending"`
	Overdue     float64 `json:"overdue"`
	Outstanding float64 `json:"outstanding"`
	Total       float64 `json:"total"`
	Count       int     `json:"count"`
}

func Summarize(invoices []models.Invoice) Summary {
	var s Summary
	for _, inv := range invoices {
		switch InvoiceStatus(inv.Status) {
		case InvoicePaid:
			s.Paid += inv.Amount
		case InvoicePending:
			s.Pending += inv.Amount
		case InvoiceOverdue:
			s.Overdue += inv.Amount
		}
		s.Total += inv.Amount
		s.Count++
	}
	s.Outstanding = s.Pending + s.Overdue
	return s
}

// CheckoutRequest describes one invoice to be paid online.
type CheckoutRequest struct {
	InvoiceID   string
	Description string
	Amount      float64
	Currency    string
	PayerEmail  string
	BackURL     string
}

type CheckoutLink struct {
	ID  string
	URL string
}

// Gateway creates hosted checkout links.
type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutLink, error)
}
