package user

import (
	"context"
	c "gatekeeper/internal/core/domain/common"
	"time"
)

type CreateUserInput struct {
	Name         string
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type SetPasswordResetTokenInput struct {
	UserID    ID
	Token     PasswordResetToken
	ExpiresAt time.Time
}

// RedeemPasswordResetTokenInput describes the conditional password update
// performed on reset token redemption. The update must succeed only if the
// account still holds exactly Token and the stored expiry is after Now, and
// it must atomically clear the token pair while setting the new hash.
type RedeemPasswordResetTokenInput struct {
	UserID          ID
	Token           PasswordResetToken
	NewPasswordHash PasswordHash
	Now             time.Time
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	SetPassword(ctx context.Context, id ID, password PasswordHash) error
	SetPasswordResetToken(ctx context.Context, input SetPasswordResetTokenInput) error
	RedeemPasswordResetToken(ctx context.Context, input RedeemPasswordResetTokenInput) (User, error)
}
