package profile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/services/user"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Profile(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestProfileHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "профиль найден",
			userUID: "u1",
			setupMock: func(m *MockService) {
				m.On("Profile", mock.Anything, "u1").Return(&models.User{UUID: "u1", Name: "John"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "нет пользователя в контексте",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:    "пользователь удален",
			userUID: "u1",
			setupMock: func(m *MockService) {
				m.On("Profile", mock.Anything, "u1").Return(nil, user.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"user not found"}`,
		},
		{
			name:    "ошибка сервиса",
			userUID: "u1",
			setupMock: func(m *MockService) {
				m.On("Profile", mock.Anything, "u1").Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get profile"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID))
			w := httptest.NewRecorder()
			New(logger, mockService).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"name":"John"`)
			}
			mockService.AssertExpectations(t)
		})
	}
}
