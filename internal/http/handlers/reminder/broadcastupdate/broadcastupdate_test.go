package broadcastupdate

import (
	"bytes"
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

	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/services/reminder"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateBroadcast(ctx context.Context, id string, upd models.BroadcastUpdate) (*models.BroadcastReminder, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BroadcastReminder), args.Error(1)
}

const broadcastID = "3d6f0a4e-8c2b-4f51-9a77-2e1b5c9d0f12"

func TestBroadcastUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		id             string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "сообщение изменено",
			id:   broadcastID,
			body: `{"message":"Open till 22:00"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateBroadcast", mock.Anything, broadcastID, mock.MatchedBy(func(u models.BroadcastUpdate) bool {
					return u.Message != nil && *u.Message == "Open till 22:00" && u.Type == nil
				})).Return(&models.BroadcastReminder{ID: broadcastID, Message: "Open till 22:00"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "некорректный id",
			id:             "nope",
			body:           `{}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid id"}`,
		},
		{
			name:           "некорректный срок",
			id:             broadcastID,
			body:           `{"expiryDays":400}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "не найдена",
			id:   broadcastID,
			body: `{"priority":"low"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateBroadcast", mock.Anything, broadcastID, mock.Anything).Return(nil, reminder.ErrBroadcastNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"Broadcast reminder not found"}`,
		},
		{
			name: "ошибка сервиса",
			id:   broadcastID,
			body: `{"priority":"low"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateBroadcast", mock.Anything, broadcastID, mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to update reminder"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockService)
			tt.setupMock(m)

			req := httptest.NewRequest(http.MethodPut, "/api/v1/broadcast-reminders/"+tt.id, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()

			New(logger, m).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
			m.AssertExpectations(t)
		})
	}
}
