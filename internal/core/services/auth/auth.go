package auth

import (
	"context"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/core/services"
)

type contextAuthToken string

const CONTEXT_AUTH_TOKEN_KEY = contextAuthToken("authToken")

type Input interface {
	WithAuthenticatedUser(u user.User) Input
}

type service[T Input, S any] struct {
	tokenAuthority user.TokenAuthority
	userRepository user.UserRepository
	inner          services.Service[T, S]
}

// WithAuthentication verifies the session token from the request context and
// injects the authenticated user into the inner service input. Session
// tokens are stateless, validity is a function of signature and expiry only.
func WithAuthentication[T Input, S any](
	tokenAuthority user.TokenAuthority,
	userRepository user.UserRepository,
	inner services.Service[T, S],
) services.Service[T, S] {
	if tokenAuthority == nil {
		panic(e.NewNilArgumentError("tokenAuthority"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &service[T, S]{
		tokenAuthority: tokenAuthority,
		userRepository: userRepository,
		inner:          inner,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	authToken, ok := ctx.Value(CONTEXT_AUTH_TOKEN_KEY).(user.SessionToken)
	if !ok {
		return result, user.ErrUserDoesNotExist
	}
	claims, err := s.tokenAuthority.Verify(string(authToken), user.TokenPurposeSession)
	if err != nil {
		return result, user.ErrUserDoesNotExist
	}
	u, err := s.userRepository.GetByID(ctx, claims.UserID)
	if err != nil {
		return result, err
	}
	return s.inner.Run(ctx, input.WithAuthenticatedUser(u).(T))
}
