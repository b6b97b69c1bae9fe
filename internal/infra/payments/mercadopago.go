package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/luminacoach/lumina/internal/domain/billing"
)

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// MercadoPago creates hosted checkout preferences for invoices.
type MercadoPago struct {
	client preferenceCreator
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{client: preference.NewClient(cfg)}, nil
}

func (m *MercadoPago) CreateCheckout(ctx context.Context, req billing.CheckoutRequest) (*billing.CheckoutLink, error) {
	request := preference.Request{
		ExternalReference: req.InvoiceID,
		Items: []preference.ItemRequest{
			{
				ID:         req.InvoiceID,
				Title:      req.Description,
				Quantity:   1,
				UnitPrice:  req.Amount,
				CurrencyID: req.Currency,
			},
		},
		BackURLs: &preference.BackURLsRequest{
			Success: req.BackURL,
			Pending: req.BackURL,
			Failure: req.BackURL,
		},
	}
	if req.PayerEmail != "" {
		request.Payer = &preference.PayerRequest{Email: req.PayerEmail}
	}

	resp, err := m.client.Create(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}
	return &billing.CheckoutLink{ID: resp.ID, URL: resp.InitPoint}, nil
}

var _ billing.Gateway = (*MercadoPago)(nil)
