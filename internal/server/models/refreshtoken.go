package models

import "time"

// RefreshToken is one persisted refresh credential. The signed token string
// is both the lookup key and the revocation handle. ExpiresAt mirrors the
// expiry embedded in the token itself so the store can reject or purge stale
// rows without parsing the credential.
type RefreshToken struct {
	Token     string
	MemberID  string
	ExpiresAt time.Time
	CreatedAt time.Time
}
