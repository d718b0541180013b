package resetpassword

import (
	"context"
	"errors"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/logging"
	"gatekeeper/internal/core/domain/security"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/core/services"
	"time"
)

type Input struct {
	Token       user.PasswordResetToken
	NewPassword user.RawPassword
}

type Result struct{}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	tokenAuthority user.TokenAuthority
	passwordHasher user.PasswordHasher
	eventPublisher security.EventPublisher
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenAuthority user.TokenAuthority,
	passwordHasher user.PasswordHasher,
	eventPublisher security.EventPublisher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenAuthority == nil {
		panic(e.NewNilArgumentError("tokenAuthority"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if eventPublisher == nil {
		panic(e.NewNilArgumentError("eventPublisher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		tokenAuthority: tokenAuthority,
		passwordHasher: passwordHasher,
		eventPublisher: eventPublisher,
		now:            now,
	}
}

// Run redeems a password reset token. Signature, expiry and purpose are
// verified first, then the update is conditioned on the account still
// holding exactly this token, so of two concurrent redemptions only one
// can succeed and a redeemed token cannot be replayed.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	claims, err := s.tokenAuthority.Verify(string(input.Token), user.TokenPurposeReset)
	if errors.Is(err, user.ErrInvalidToken) || errors.Is(err, user.ErrTokenExpired) {
		return result, user.ErrInvalidPasswordResetToken
	}
	if err != nil {
		return result, err
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	u, err := s.userRepository.RedeemPasswordResetToken(ctx, user.RedeemPasswordResetTokenInput{
		UserID:          claims.UserID,
		Token:           input.Token,
		NewPasswordHash: newPasswordHash,
		Now:             s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrInvalidPasswordResetToken) {
		s.log.Info(
			ctx,
			"Password reset token does not match the stored one.",
			logging.Entry("userID", claims.UserID),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not redeem password reset token.",
			logging.Entry("userID", claims.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := s.eventPublisher.Publish(ctx, security.Event{
		Type:       security.EventPasswordReset,
		UserID:     u.ID,
		Email:      u.Email,
		OccurredAt: s.now(),
	}); err != nil {
		s.log.Warning(
			ctx,
			"Could not publish password reset event.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
	}

	s.log.Info(
		ctx,
		"New password has been successfully set.",
		logging.Entry("userID", u.ID),
	)
	return result, nil
}
