package entity

import "time"

// EmailToken is the pending proof of email ownership for a user. Code is a
// zero-padded 6-digit OTP or an opaque link token depending on delivery.
type EmailToken struct {
	ID        string
	UserID    string
	Code      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether now is past the expiry instant
func (t *EmailToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// Age is how long ago the token was issued
func (t *EmailToken) Age(now time.Time) time.Duration {
	return now.Sub(t.CreatedAt)
}
