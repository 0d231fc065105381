package models

import "time"

// Session is a server-side admin session. The client holds "<id>.<secret>";
// only the bcrypt hash of the secret is stored. Token is the upstream bearer
// token replayed on storefront API calls.
type Session struct {
	ID         string    `db:"id" json:"id"`
	SecretHash string    `db:"secret_hash" json:"-"`
	UserID     int       `db:"user_id" json:"userId"`
	Role       string    `db:"role" json:"role"`
	Token      string    `db:"token" json:"-"`
	UserJSON   []byte    `db:"user_json" json:"-"`
	ExpiresAt  time.Time `db:"expires_at" json:"expiresAt"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Expired reports whether the session's upstream token has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
