package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/mayukh-auth/internal/models"
	"github.com/magabrotheeeer/mayukh-auth/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Login(ctx context.Context, email, password, role string) (*models.User, error) {
	args := m.Called(ctx, email, password, role)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	user := &models.User{ID: "1", Email: "a@x.com", PasswordHash: "hash", Role: "user"}

	tests := []struct {
		name           string
		requestBody    string
		callService    bool
		mockUser       *models.User
		mockErr        error
		wantStatusCode int
		wantSuccess    bool
		wantMessage    string
		wantUser       map[string]any
	}{
		{
			name:           "valid login",
			requestBody:    `{"email":"a@x.com","password":"p","role":"user"}`,
			callService:    true,
			mockUser:       user,
			wantStatusCode: http.StatusOK,
			wantSuccess:    true,
			wantMessage:    "Login successful.",
			wantUser:       map[string]any{"id": "1", "email": "a@x.com", "role": "user"},
		},
		{
			name:           "invalid json body",
			requestBody:    `{"email":`,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Invalid request body.",
		},
		{
			name:           "missing role",
			requestBody:    `{"email":"a@x.com","password":"p"}`,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Email, password and role are required.",
		},
		{
			name:           "invalid credentials",
			requestBody:    `{"email":"a@x.com","password":"p","role":"user"}`,
			callService:    true,
			mockErr:        auth.ErrInvalidCredentials,
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    "Invalid email or password.",
		},
		{
			name:           "invalid role",
			requestBody:    `{"email":"a@x.com","password":"p","role":"user"}`,
			callService:    true,
			mockErr:        auth.ErrInvalidRole,
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    "Invalid role selected.",
		},
		{
			name:           "storage failure",
			requestBody:    `{"email":"a@x.com","password":"p","role":"user"}`,
			callService:    true,
			mockErr:        errors.New("sqlite: database is locked"),
			wantStatusCode: http.StatusInternalServerError,
			wantMessage:    "Internal server error.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.callService {
				svc.On("Login", mock.Anything, "a@x.com", "p", "user").
					Return(tt.mockUser, tt.mockErr).Once()
			}
			handler := New(newNoopLogger(), svc)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(tt.requestBody))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantSuccess, got["success"])
			assert.Equal(t, tt.wantMessage, got["message"])

			if tt.wantUser != nil {
				data, ok := got["user"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, tt.wantUser, data)
				assert.NotContains(t, data, "password")
			} else {
				assert.NotContains(t, got, "user")
			}
			assert.NotContains(t, rec.Body.String(), "database is locked")

			if tt.callService {
				svc.AssertExpectations(t)
			} else {
				svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
