package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists        = errors.New("email already exists")
	ErrUserDoesNotExist          = errors.New("user does not exist")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrPasswordNotChanged        = errors.New("new password must differ from the current one")
	ErrInvalidToken              = errors.New("invalid token")
	ErrTokenExpired              = errors.New("token expired")
	ErrWrongTokenPurpose         = errors.New("wrong token purpose")
	ErrInvalidPasswordResetToken = errors.New("invalid or expired password reset token")
	ErrNotificationFailed        = errors.New("could not deliver notification")
)
