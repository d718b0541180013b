package changepassword

import (
	"context"
	"gatekeeper/internal/core/domain/logging"
	"gatekeeper/internal/core/domain/security"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const USER_ID = 123

var NOW time.Time = time.Now().UTC()

type suite struct {
	log            *logging.FakeLogger
	userRepo       *user.FakeUserRepository
	hasher         *user.FakePasswordHasher
	eventPublisher *security.FakeEventPublisher
}

func setupSuite() *suite {
	userRepo := user.NewFakeUserRepository()
	userRepo.Users = []user.User{{ID: USER_ID}}
	return &suite{
		log:            logging.NewFakeLogger(),
		userRepo:       userRepo,
		hasher:         user.NewFakePasswordHasher(),
		eventPublisher: security.NewFakeEventPublisher(),
	}
}

func (s *suite) createService() services.Service[Input, Result] {
	return New(s.log, s.userRepo, s.hasher, s.eventPublisher, func() time.Time { return NOW })
}

func TestPasswordSuccessfullyChanged(t *testing.T) {
	cases := []struct {
		id                      string
		currentPassswordInDB    string
		currentPassswordInInput string
		newPasswordInInput      string
	}{
		{
			id:                      "1",
			currentPassswordInDB:    "test-1",
			currentPassswordInInput: "test-1",
			newPasswordInInput:      "test-2",
		},
		{
			id:                      "2",
			currentPassswordInDB:    "aaa",
			currentPassswordInInput: "aaa",
			newPasswordInInput:      "bbb",
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			suite := setupSuite()
			service := suite.createService()

			// Exercise ---
			input := Input{
				CurrentPassword: user.RawPassword(testcase.currentPassswordInInput),
				NewPassword:     user.RawPassword(testcase.newPasswordInInput),
			}
			input.User.ID = USER_ID
			input.User.PasswordHash = hashPassword(testcase.currentPassswordInDB, suite.hasher)
			_, err := service.Run(context.Background(), input)

			// Verify ---
			require.NoError(t, err)
			assertPasswordValid(t, suite, testcase.newPasswordInInput)
			require.Equal(t, 1, suite.eventPublisher.PublishedCount())
			require.Equal(t, security.EventPasswordChanged, suite.eventPublisher.LastPublished().Type)
		})
	}
}

func TestCurrentPasswordInvalid(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()

	// Exercise ---
	input := Input{
		CurrentPassword: user.RawPassword("invalid-password"),
		NewPassword:     user.RawPassword("bbb"),
	}
	input.User.ID = USER_ID
	input.User.PasswordHash = hashPassword("valid-password", suite.hasher)
	_, err := service.Run(context.Background(), input)

	// Verify ---
	require.ErrorIs(t, err, user.ErrInvalidCredentials)
	require.Equal(t, 0, suite.eventPublisher.PublishedCount())
}

func TestNewPasswordSameAsCurrent(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()

	// Exercise ---
	input := Input{
		CurrentPassword: user.RawPassword("same-password"),
		NewPassword:     user.RawPassword("same-password"),
	}
	input.User.ID = USER_ID
	input.User.PasswordHash = hashPassword("same-password", suite.hasher)
	_, err := service.Run(context.Background(), input)

	// Verify ---
	require.ErrorIs(t, err, user.ErrPasswordNotChanged)
	assertPasswordValid(t, suite, "same-password")
	require.Equal(t, 0, suite.eventPublisher.PublishedCount())
}

func hashPassword(raw string, hasher user.PasswordHasher) user.PasswordHash {
	hash, err := hasher.HashPassword(user.RawPassword(raw))
	if err != nil {
		panic(err)
	}
	return hash
}

func assertPasswordValid(t *testing.T, suite *suite, password string) {
	t.Helper()

	u, err := suite.userRepo.GetByID(context.Background(), USER_ID)
	require.NoError(t, err)

	isValid := suite.hasher.ValidatePassword(user.RawPassword(password), u.PasswordHash)
	require.True(t, isValid)
}
