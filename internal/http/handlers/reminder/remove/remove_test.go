package remove

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-manager/internal/services/reminder"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) DeleteReminder(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

const reminderID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		mockErr        error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "удалено",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"message":"Reminder deleted successfully"}}`,
		},
		{
			name:           "не найдено",
			mockErr:        reminder.ErrReminderNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"Reminder not found"}`,
		},
		{
			name:           "ошибка сервиса",
			mockErr:        errors.New("db error"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to delete reminder"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockService)
			m.On("DeleteReminder", mock.Anything, reminderID).Return(tt.mockErr)

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/reminders/"+reminderID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", reminderID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()

			New(logger, m).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			m.AssertExpectations(t)
		})
	}
}
