// Package entity defines the daily analysis quota.
package entity

import "time"

// DailyLimit is the number of analyses a user may request per UTC calendar day.
const DailyLimit = 10

// UserLimitRecord counts one user's analyses for one UTC day. There is at most one
// record per (UserID, Date) and Count never exceeds DailyLimit.
type UserLimitRecord struct {
	UserID    string
	Date      time.Time
	Count     int
	UpdatedAt time.Time
}

// DayStart truncates t to midnight UTC.
func DayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextReset is the next UTC midnight after t.
func NextReset(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1)
}

// DayKey renders the day of t as YYYY-MM-DD (UTC).
func DayKey(t time.Time) string {
	return DayStart(t).Format(time.DateOnly)
}

// Reservation is the outcome of one check-and-increment.
type Reservation struct {
	UserID    string
	Day       time.Time
	Allowed   bool
	Remaining int
}
