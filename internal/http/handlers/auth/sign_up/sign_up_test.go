package signup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	c "gatekeeper/internal/core/domain/common"
	"gatekeeper/internal/core/domain/user"
	service "gatekeeper/internal/core/services/sign_up"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	result.User = user.User{
		ID:           user.ID(1),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: user.PasswordHash("test-hash"),
		CreatedAt:    time.Date(2020, 1, 1, 1, 1, 1, 0, time.UTC),
	}
	return result, nil
}

func TestSignUpHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			id:             "success",
			body:           `{"name": "test", "email": "Test@test.test", "password": "password", "password_confirmation": "password"}`,
			expectedStatus: http.StatusCreated,
			expectedInput: &service.Input{
				Name:     "test",
				Email:    c.Email("test@test.test"),
				Password: user.RawPassword("password"),
			},
		},
		{
			id:             "invalid-json",
			body:           `{"name": `,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "missing-name",
			body:           `{"email": "test@test.test", "password": "password", "password_confirmation": "password"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid-email",
			body:           `{"name": "test", "email": "not-an-email", "password": "password", "password_confirmation": "password"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "short-password",
			body:           `{"name": "test", "email": "test@test.test", "password": "1234567", "password_confirmation": "1234567"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "confirmation-mismatch",
			body:           `{"name": "test", "email": "test@test.test", "password": "password", "password_confirmation": "passw0rd"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "email-already-exists",
			body:           `{"name": "test", "email": "test@test.test", "password": "password", "password_confirmation": "password"}`,
			serviceErr:     user.ErrEmailAlreadyExists,
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.serviceErr}
			handler := New(stub)

			request := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(testcase.body))
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testcase.expectedStatus, recorder.Code)
			if testcase.expectedInput != nil {
				assert.Equal(t, testcase.expectedInput, stub.input)
			}
		})
	}
}
