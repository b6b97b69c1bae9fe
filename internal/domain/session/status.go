package session

import (
	"strings"

	"github.com/luminacoach/lumina/internal/httperr"
)

// ===============================
// Session Status
// ===============================

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus accepts the legacy "scheduled" spelling as upcoming.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "upcoming", "scheduled":
		return StatusUpcoming, nil
	case "completed":
		return StatusCompleted, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

// NormalizeStatuses maps filter values onto the canonical vocabulary,
// silently dropping unknown ones.
func NormalizeStatuses(in []string) []string {
	var out []string
	for _, s := range in {
		if st, err := ParseStatus(s); err == nil && strings.TrimSpace(s) != "" {
			out = append(out, string(st))
		}
	}
	return out
}

// CanCancel: only upcoming sessions can be cancelled.
func CanCancel(current Status) error {
	if current != StatusUpcoming {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanReschedule: completed sessions stay where they happened.
func CanReschedule(current Status) error {
	if current == StatusCompleted {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// ===============================
// Location
// ===============================

type Location string

const (
	LocationZoom   Location = "zoom"
	LocationPhone  Location = "phone"
	LocationOffice Location = "office"
)

func ParseLocation(s string) (Location, error) {
	switch Location(strings.ToLower(strings.TrimSpace(s))) {
	case LocationZoom, "":
		return LocationZoom, nil
	case LocationPhone:
		return LocationPhone, nil
	case LocationOffice:
		return LocationOffice, nil
	}
	return "", httperr.ErrBusiness("invalid_location")
}

// ===============================
// Payment (display only)
// ===============================

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentPackage PaymentStatus = "package"
	PaymentUnpaid  PaymentStatus = "unpaid"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(strings.ToLower(strings.TrimSpace(s))) {
	case PaymentPending, "":
		return PaymentPending, nil
	case PaymentPaid:
		return PaymentPaid, nil
	case PaymentPackage:
		return PaymentPackage, nil
	case PaymentUnpaid:
		return PaymentUnpaid, nil
	}
	return "", httperr.ErrBusiness("invalid_payment_status")
}
