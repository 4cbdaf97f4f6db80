package updateprofile

import (
	"bytes"
	"context"
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

func (m *MockService) UpdateProfile(ctx context.Context, userUID string, upd models.ProfileUpdate) (*models.User, error) {
	args := m.Called(ctx, userUID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestUpdateProfileHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное обновление",
			body: `{"name":"Jane","weight":61.5,"role":"admin"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateProfile", mock.Anything, "u1", mock.MatchedBy(func(u models.ProfileUpdate) bool {
					return *u.Name == "Jane" && *u.Weight == 61.5
				})).Return(&models.User{UUID: "u1", Name: "Jane", Role: models.RoleUser}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "неизвестный пол",
			body:           `{"gender":"robot"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Gender must be one of [male female other]"}`,
		},
		{
			name: "пользователь не найден",
			body: `{"name":"Jane"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateProfile", mock.Anything, "u1", mock.Anything).Return(nil, user.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"user not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodPut, "/api/v1/me", bytes.NewBufferString(tt.body))
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "u1"))
			w := httptest.NewRecorder()
			New(logger, mockService).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"role":"user"`)
			}
			mockService.AssertExpectations(t)
		})
	}
}
