package resetpassword

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gatekeeper/internal/core/domain/user"
	service "gatekeeper/internal/core/services/reset_password"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err error
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	return result, s.err
}

func TestResetPasswordHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{
			id:             "success",
			body:           `{"token": "reset-token", "password": "new-password"}`,
			expectedStatus: http.StatusOK,
		},
		{
			id:             "invalid-json",
			body:           `{"token": `,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "short-password",
			body:           `{"token": "reset-token", "password": "1234567"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid-token",
			body:           `{"token": "reset-token", "password": "new-password"}`,
			serviceErr:     user.ErrInvalidPasswordResetToken,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			id:             "wrong-purpose",
			body:           `{"token": "session-token", "password": "new-password"}`,
			serviceErr:     user.ErrWrongTokenPurpose,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			id:             "internal-error",
			body:           `{"token": "reset-token", "password": "new-password"}`,
			serviceErr:     user.ErrUserDoesNotExist,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			handler := New(&stubService{err: testcase.serviceErr})

			request := httptest.NewRequest(http.MethodPut, "/auth/password_reset", strings.NewReader(testcase.body))
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testcase.expectedStatus, recorder.Code)
		})
	}
}

// Failed redemptions must not reveal whether the account behind the token
// exists, only that the token is not redeemable.
func TestResetPasswordErrorsAreUniform(t *testing.T) {
	for _, serviceErr := range []error{user.ErrInvalidPasswordResetToken, user.ErrWrongTokenPurpose} {
		handler := New(&stubService{err: serviceErr})

		request := httptest.NewRequest(
			http.MethodPut,
			"/auth/password_reset",
			strings.NewReader(`{"token": "reset-token", "password": "new-password"}`),
		)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		var body map[string]string
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "invalid token", body["error"])
	}
}
