package engine

import "time"

// dateKeyLayout is the canonical date-only representation used for dedup keys
// and watermarks.
const dateKeyLayout = "2006-01-02"

// DaysUntil returns the number of whole calendar days from now to expiry,
// comparing date-only values in the supplied location. Negative values mean
// the expiry has already passed. Time-of-day is dropped from both inputs so a
// document expiring later today still counts as zero days away.
func DaysUntil(expiry, now time.Time, loc *time.Location) int {
	e := truncateToDate(expiry, loc)
	n := truncateToDate(now, loc)
	return int(e.Sub(n).Hours() / 24)
}

// DateKey formats an instant as its calendar date in the supplied location.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateKeyLayout)
}

func truncateToDate(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
