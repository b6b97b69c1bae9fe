package client

import (
	"strings"

	"github.com/luminacoach/lumina/internal/domain/listfilter"
	"github.com/luminacoach/lumina/internal/httperr"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusActive, "":
		return StatusActive, nil
	case StatusPaused:
		return StatusPaused, nil
	case StatusCompleted:
		return StatusCompleted, nil
	}
	return "", httperr.ErrBusiness("invalid_client_status")
}

type Fields struct {
	Name    string
	Program string
	Status  string
}

// Filter matches search text against name and program and requires the
// status and program sets, when given, to contain the client's values.
type Filter struct {
	Search   string
	Statuses []string
	Programs []string
}

func (f Filter) Match(c Fields) bool {
	return listfilter.MatchesSearch(f.Search, c.Name, c.Program) &&
		listfilter.InSet(c.Status, f.Statuses) &&
		listfilter.InSet(c.Program, f.Programs)
}

// Apply keeps the input order.
func Apply[T any](items []T, f Filter, fields func(T) Fields) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if f.Match(fields(it)) {
			out = append(out, it)
		}
	}
	return out
}
