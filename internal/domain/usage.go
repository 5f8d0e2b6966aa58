package domain

import "time"

// UsageRecord struct - Daily message usage for a single user.
// Keyed by user (not chat) so group chats share one session but every
// member keeps an individual quota.
type UsageRecord struct {
	Count     int       // Messages consumed in the current quota window
	ResetTime time.Time // Instant the window rolls over
}

// NextResetTime returns the next quota reset instant: today at
// resetHour:00:00 UTC if that is still in the future, otherwise the same
// clock time tomorrow.
func NextResetTime(now time.Time, resetHour int) time.Time {
	utc := now.UTC()
	reset := time.Date(utc.Year(), utc.Month(), utc.Day(), resetHour, 0, 0, 0, time.UTC)
	if !reset.After(utc) {
		reset = reset.AddDate(0, 0, 1)
	}
	return reset
}
