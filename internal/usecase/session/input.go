package session

import (
	"context"
	"strings"
	"time"

	domain "github.com/luminacoach/lumina/internal/domain/session"
	"github.com/luminacoach/lumina/internal/httperr"
	"github.com/luminacoach/lumina/internal/models"
)

const defaultDurationMin = 60

// ======================================================
// INPUT
// ======================================================

// SessionInput is the edit form. Create and update both take the full form.
type SessionInput struct {
	ProviderID string

	ClientID     string
	EngagementID *string

	Date        time.Time
	Duration    int
	Location    string
	Status      string
	SessionType string
	Focus       string

	PaymentStatus    string
	BillingSource    string
	PackageRemaining *int
}

// apply validates in and copies it onto s.
func apply(ctx context.Context, repo domain.Repository, in SessionInput, s *models.Session) error {
	if in.Date.IsZero() {
		return httperr.ErrBusiness("invalid_date")
	}
	if in.Duration < 0 {
		return httperr.ErrBusiness("invalid_duration")
	}
	if in.PackageRemaining != nil && *in.PackageRemaining < 0 {
		return httperr.ErrBusiness("invalid_package_remaining")
	}

	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return err
	}
	location, err := domain.ParseLocation(in.Location)
	if err != nil {
		return err
	}
	payment, err := domain.ParsePaymentStatus(in.PaymentStatus)
	if err != nil {
		return err
	}

	client, err := repo.GetClient(ctx, in.ProviderID, in.ClientID)
	if err != nil {
		return err
	}

	var engagement *models.Engagement
	if in.EngagementID != nil && *in.EngagementID != "" {
		engagement, err = repo.GetEngagement(ctx, in.ProviderID, *in.EngagementID)
		if err != nil {
			return err
		}
		if engagement.ClientID != client.ID {
			return httperr.ErrBusiness("engagement_client_mismatch")
		}
	}

	duration := in.Duration
	if duration == 0 {
		duration = defaultDurationMin
	}

	s.ProviderID = in.ProviderID
	s.ClientID = client.ID
	s.Client = *client
	s.EngagementID = nil
	s.Engagement = engagement
	if engagement != nil {
		s.EngagementID = &engagement.ID
	}
	s.Date = in.Date.UTC()
	s.Duration = duration
	s.Location = string(location)
	s.Status = string(status)
	s.SessionType = strings.TrimSpace(in.SessionType)
	s.Focus = strings.TrimSpace(in.Focus)
	s.PaymentStatus = string(payment)
	s.BillingSource = strings.TrimSpace(in.BillingSource)
	s.PackageRemaining = in.PackageRemaining

	if status != domain.StatusCancelled {
		s.CancelledAt = nil
	}
	return nil
}
