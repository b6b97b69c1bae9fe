package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallback(t *testing.T) {
	assert.Equal(t, time.UTC, Location(""))
	assert.Equal(t, time.UTC, Location("Not/AZone"))
	assert.False(t, IsValid(""))
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(time.Date(2026, 12, 19, 15, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestWeekBounds(t *testing.T) {
	// 2026-10-18 is a Sunday.
	start, end := WeekBounds(time.Date(2026, 10, 18, 22, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), end)

	start, _ = WeekBounds(time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), start)
}
