package entities

import "time"

// ReviewDigest is one row of the daily review reminder: a user with words
// currently marked wrong.
type ReviewDigest struct {
	UserID     int64
	ChatID     int64
	WrongCount int
	KnownCount int
}

// ReminderPayload is used to build a reminder message.
type ReminderPayload struct {
	WrongCount int
	KnownCount int
	SentAt     time.Time
}

// NewReminderPayload builds the payload sent for a digest row.
func NewReminderPayload(d *ReviewDigest, now time.Time) ReminderPayload {
	return ReminderPayload{
		WrongCount: d.WrongCount,
		KnownCount: d.KnownCount,
		SentAt:     now,
	}
}
