package user

import "context"

type PasswordResetTokenSender interface {
	SendPasswordResetToken(ctx context.Context, user User, token PasswordResetToken) error
}

type WelcomeMessageSender interface {
	SendWelcomeMessage(ctx context.Context, user User) error
}
