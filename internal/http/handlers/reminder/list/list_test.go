package list

import (
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
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListUserReminders(ctx context.Context, userUID string) ([]*models.Reminder, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Reminder), args.Error(1)
}

const (
	selfID  = "5f1c1a52-0d7f-4c47-9d3e-7bb0b3c0a0a1"
	otherID = "1b4e28ba-2fa1-11d2-883f-0016d3cca427"
)

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		ctxUser        string
		role           string
		query          string
		wantUID        string
		expectedStatus int
	}{
		{name: "свои напоминания", ctxUser: selfID, role: models.RoleUser, wantUID: selfID, expectedStatus: http.StatusOK},
		{name: "пользователь не видит чужие", ctxUser: selfID, role: models.RoleUser, query: "?userId=" + otherID, wantUID: selfID, expectedStatus: http.StatusOK},
		{name: "администратор смотрит чужие", ctxUser: selfID, role: models.RoleAdmin, query: "?userId=" + otherID, wantUID: otherID, expectedStatus: http.StatusOK},
		{name: "некорректный userId", ctxUser: selfID, role: models.RoleAdmin, query: "?userId=x", expectedStatus: http.StatusBadRequest},
		{name: "без авторизации", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockService)
			if tt.expectedStatus == http.StatusOK {
				m.On("ListUserReminders", mock.Anything, tt.wantUID).Return(nil, nil)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/reminders"+tt.query, nil)
			ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.ctxUser)
			ctx = context.WithValue(ctx, middlewarectx.Role, tt.role)
			w := httptest.NewRecorder()

			New(logger, m).ServeHTTP(w, req.WithContext(ctx))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.JSONEq(t, `{"status":"OK","data":{"reminders":[]}}`, w.Body.String())
			}
			m.AssertExpectations(t)
		})
	}
}
