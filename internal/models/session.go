package models

import "time"

// GuestSession is the server-side replacement for the guest profile the
// old client kept in browser local storage. It is addressed by an opaque
// session id and expires after the configured TTL.
type GuestSession struct {
	SessionID  string    `json:"session_id"`
	GuestName  string    `json:"guest_name"`
	GuestEmail string    `json:"guest_email"`
	UpdatedAt  time.Time `json:"updated_at"`
}
