package sendpasswordresettoken

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ratelimiter "gatekeeper/internal/core/domain/rate_limiter"
	"gatekeeper/internal/core/domain/user"
	service "gatekeeper/internal/core/services/send_password_reset_token"

	"github.com/stretchr/testify/assert"
)

const TOKEN = "test-password-reset-token"

type stubService struct {
	err error
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	result.Token = user.PasswordResetToken(TOKEN)
	return result, nil
}

func TestSendPasswordResetTokenHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		isTestMode     bool
		expectedStatus int
		expectedHeader string
	}{
		{
			id:             "success",
			body:           `{"email": "test@test.test"}`,
			expectedStatus: http.StatusOK,
		},
		{
			id:             "success-test-mode",
			body:           `{"email": "test@test.test"}`,
			isTestMode:     true,
			expectedStatus: http.StatusOK,
			expectedHeader: TOKEN,
		},
		{
			id:             "invalid-email",
			body:           `{"email": "not-an-email"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "rate-limit-exceeded",
			body:           `{"email": "test@test.test"}`,
			serviceErr:     ratelimiter.ErrRateLimitExceeded,
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			id:             "notification-failed",
			body:           `{"email": "test@test.test"}`,
			serviceErr:     user.ErrNotificationFailed,
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			handler := New(&stubService{err: testcase.serviceErr}, testcase.isTestMode)

			request := httptest.NewRequest(
				http.MethodPost,
				"/auth/password_reset/token",
				strings.NewReader(testcase.body),
			)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testcase.expectedStatus, recorder.Code)
			assert.Equal(t, testcase.expectedHeader, recorder.Header().Get("x-test-password-reset-token"))
		})
	}
}
