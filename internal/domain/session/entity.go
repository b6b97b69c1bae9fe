package session

import (
	"time"

	"github.com/luminacoach/lumina/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(s *models.Session, now time.Time) error {
	st, err := ParseStatus(s.Status)
	if err != nil {
		return err
	}
	if err := CanCancel(st); err != nil {
		return err
	}

	s.Status = string(StatusCancelled)
	s.CancelledAt = &now
	return nil
}

func Reschedule(s *models.Session, date time.Time) error {
	st, err := ParseStatus(s.Status)
	if err != nil {
		return err
	}
	if err := CanReschedule(st); err != nil {
		return err
	}

	s.Date = date
	s.Status = string(StatusUpcoming)
	s.CancelledAt = nil
	return nil
}

// PackageRemaining is the explicit value when one was stored, otherwise
// what is left on the session's engagement.
func PackageRemaining(s *models.Session) *int {
	if s.PackageRemaining != nil {
		return s.PackageRemaining
	}
	if s.Engagement != nil {
		r := s.Engagement.Remaining()
		return &r
	}
	return nil
}
