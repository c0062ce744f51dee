package login

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	services "github.com/magabrotheeeer/appointment-scheduler/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func performLogin(t *testing.T, svc *AuthServiceMock, body any) *httptest.ResponseRecorder {
	t.Helper()
	handler := New(newNoopLogger(), svc)

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	if s, ok := body.(string); ok {
		raw = []byte(s)
	}

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(raw))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		mockErr        error
		mockToken      string
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "valid login",
			requestBody:    Request{Email: "ivan@example.com", Password: "Password123"},
			mockToken:      "signed-token",
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:           "validation error - missing password",
			requestBody:    Request{Email: "ivan@example.com"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Password is a required field",
		},
		{
			name:           "wrong password reports attempts left",
			requestBody:    Request{Email: "ivan@example.com", Password: "Password123"},
			mockErr:        &services.AuthError{Kind: services.FailInvalidCredentials, AttemptsLeft: 2},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid credentials",
		},
		{
			name:           "locked account",
			requestBody:    Request{Email: "ivan@example.com", Password: "Password123"},
			mockErr:        &services.AuthError{Kind: services.FailLocked, TimeLeft: 7 * time.Minute},
			wantStatusCode: http.StatusLocked,
			wantError:      "account is locked",
		},
		{
			name:           "already logged in elsewhere",
			requestBody:    Request{Email: "ivan@example.com", Password: "Password123"},
			mockErr:        &services.AuthError{Kind: services.FailAlreadyLoggedIn},
			wantStatusCode: http.StatusConflict,
			wantError:      "account is already logged in on another device",
		},
		{
			name:           "unknown account",
			requestBody:    Request{Email: "ivan@example.com", Password: "Password123"},
			mockErr:        &services.AuthError{Kind: services.FailNoSuchAccount},
			wantStatusCode: http.StatusNotFound,
			wantError:      "account does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(AuthServiceMock)
			if tt.mockErr != nil || tt.mockToken != "" {
				svc.On("Login", mock.Anything, "ivan@example.com", "Password123").
					Return(tt.mockToken, tt.mockErr).Once()
			}

			rr := performLogin(t, svc, tt.requestBody)
			assert.Equal(t, tt.wantStatusCode, rr.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			if tt.wantError != "" {
				assert.Contains(t, resp["error"], tt.wantError)
			} else {
				data := resp["data"].(map[string]any)
				assert.Equal(t, "signed-token", data["token"])
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestLoginHandler_AttemptsLeftInBody(t *testing.T) {
	svc := new(AuthServiceMock)
	svc.On("Login", mock.Anything, "ivan@example.com", "Password123").
		Return("", &services.AuthError{Kind: services.FailInvalidCredentials, AttemptsLeft: 2}).Once()

	rr := performLogin(t, svc, Request{Email: "ivan@example.com", Password: "Password123"})

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	data := resp["data"].(map[string]any)
	assert.Equal(t, float64(2), data["attempts_left"])
}
