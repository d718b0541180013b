package user

import (
	"fmt"
	c "gatekeeper/internal/core/domain/common"
	e "gatekeeper/internal/core/domain/errors"
	"time"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type User struct {
	ID                  ID
	Name                string
	Email               c.Email
	PasswordHash        PasswordHash
	CreatedAt           time.Time
	ResetToken          c.Optional[PasswordResetToken]
	ResetTokenExpiresAt c.Optional[time.Time]
}

// Validate checks the reset token pair invariant: token and expiry are
// either both set or both absent.
func (u *User) Validate() error {
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %d", u.ID))
	}
	if u.ResetToken.IsPresent != u.ResetTokenExpiresAt.IsPresent {
		return e.NewInvalidStateError(
			fmt.Sprintf("reset token and its expiry must be set together for user %d", u.ID),
		)
	}
	return nil
}

func (u *User) HasActiveResetToken(now time.Time) bool {
	return u.ResetToken.IsPresent && u.ResetTokenExpiresAt.Value.After(now)
}
