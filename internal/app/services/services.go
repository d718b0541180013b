package services

import (
	"gatekeeper/internal/app/deps"
	drl "gatekeeper/internal/core/domain/rate_limiter"
	"gatekeeper/internal/core/services"
	"gatekeeper/internal/core/services/auth"
	changepassword "gatekeeper/internal/core/services/change_password"
	getuserbysessiontoken "gatekeeper/internal/core/services/get_user_by_session_token"
	login "gatekeeper/internal/core/services/log_in"
	ratelimiting "gatekeeper/internal/core/services/rate_limiting"
	resetpassword "gatekeeper/internal/core/services/reset_password"
	sendpasswordresettoken "gatekeeper/internal/core/services/send_password_reset_token"
	signup "gatekeeper/internal/core/services/sign_up"
)

type Services struct {
	SignUp                 services.Service[signup.Input, signup.Result]
	LogIn                  services.Service[login.Input, login.Result]
	GetUserBySessionToken  services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
	ChangePassword         services.Service[changepassword.Input, changepassword.Result]
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUp = signup.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.WelcomeMessageSender,
		deps.SecurityEventPublisher,
		deps.Now,
	)
	s.LogIn = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		login.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
			deps.TokenAuthority,
		),
	)
	s.GetUserBySessionToken = getuserbysessiontoken.New(
		deps.Logger,
		deps.TokenAuthority,
		deps.UserRepository,
	)
	s.ChangePassword = auth.WithAuthentication(
		deps.TokenAuthority,
		deps.UserRepository,
		changepassword.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
			deps.SecurityEventPublisher,
			deps.Now,
		),
	)
	s.SendPasswordResetToken = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 3},
		sendpasswordresettoken.New(
			deps.Logger,
			deps.UserRepository,
			deps.TokenAuthority,
			deps.PasswordResetTokenSender,
		),
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.TokenAuthority,
		deps.PasswordHasher,
		deps.SecurityEventPublisher,
		deps.Now,
	)

	return s
}
