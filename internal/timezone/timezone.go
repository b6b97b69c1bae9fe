package timezone

import "time"

const DefaultTimezone = "UTC"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves a provider's timezone, falling back to DefaultTimezone.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// MonthBounds returns [start of t's month, start of next month) in t's location.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// WeekBounds returns [Monday 00:00 of t's week, the following Monday) in t's location.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	offset := (int(t.Weekday()) + 6) % 7
	start := time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 7)
}
