package session

import (
	"sort"
	"time"

	"github.com/luminacoach/lumina/internal/domain/listfilter"
)

// Fields is the part of a session the list filter looks at.
type Fields struct {
	ID            string
	Client        string
	SessionType   string
	Focus         string
	Status        string
	Location      string
	PaymentStatus string
	Date          time.Time
}

// Filter matches search text against client, session type and focus, and
// requires every non-empty set to contain the session's value.
type Filter struct {
	Search    string
	Statuses  []string
	Locations []string
	Payments  []string
}

func (f Filter) Match(s Fields) bool {
	status := s.Status
	if st, err := ParseStatus(status); err == nil {
		status = string(st)
	}
	return listfilter.MatchesSearch(f.Search, s.Client, s.SessionType, s.Focus) &&
		listfilter.InSet(status, NormalizeStatuses(f.Statuses)) &&
		listfilter.InSet(s.Location, f.Locations) &&
		listfilter.InSet(s.PaymentStatus, f.Payments)
}

// Apply returns the matching items in chronological order.
func Apply[T any](items []T, f Filter, fields func(T) Fields) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if f.Match(fields(it)) {
			out = append(out, it)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := fields(out[i]), fields(out[j])
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.ID < b.ID
	})
	return out
}
