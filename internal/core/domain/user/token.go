package user

import "time"

type SessionToken string

type PasswordResetToken string

// TokenPurpose declares what a signed token may be used for. Verification
// checks it so a session token can never be replayed as a reset capability
// and vice versa.
type TokenPurpose string

const (
	TokenPurposeSession TokenPurpose = "session"
	TokenPurposeReset   TokenPurpose = "reset"
)

type TokenClaims struct {
	UserID    ID
	Purpose   TokenPurpose
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenAuthority mints and verifies signed, time-bound bearer tokens.
// Implementations must be stateless and safe for concurrent use.
type TokenAuthority interface {
	Issue(userID ID, purpose TokenPurpose) (token string, claims TokenClaims, err error)
	Verify(token string, purpose TokenPurpose) (TokenClaims, error)
}
