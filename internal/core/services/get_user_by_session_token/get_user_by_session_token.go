package getuserbysessiontoken

import (
	"context"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/logging"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/core/services"
)

type Input struct {
	Token user.SessionToken
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	tokenAuthority user.TokenAuthority
	userRepository user.UserRepository
}

func New(
	log logging.Logger,
	tokenAuthority user.TokenAuthority,
	userRepository user.UserRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if tokenAuthority == nil {
		panic(e.NewNilArgumentError("tokenAuthority"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	return &service{
		log:            log,
		tokenAuthority: tokenAuthority,
		userRepository: userRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	claims, err := s.tokenAuthority.Verify(string(input.Token), user.TokenPurposeSession)
	if err != nil {
		return result, user.ErrUserDoesNotExist
	}
	u, err := s.userRepository.GetByID(ctx, claims.UserID)
	if err != nil {
		return result, err
	}
	return Result{User: u}, nil
}
