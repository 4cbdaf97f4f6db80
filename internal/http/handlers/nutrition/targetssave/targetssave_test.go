package targetssave

import (
	"bytes"
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
)

type MockService struct {
	mock.Mock
}

func (m *MockService) SaveTargets(ctx context.Context, userUID string, t models.Targets) error {
	args := m.Called(ctx, userUID, t)
	return args.Error(0)
}

const userID = "5f1c1a52-0d7f-4c47-9d3e-7bb0b3c0a0a1"

func TestTargetsSaveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "нормы сохранены",
			body: `{"protein":180,"calories":2800,"fat":90,"carbs":320,"fiber":30,"sugar":40}`,
			setupMock: func(m *MockService) {
				m.On("SaveTargets", mock.Anything, userID, models.Targets{Protein: 180, Calories: 2800, Fat: 90, Carbs: 320, Fiber: 30, Sugar: 40}).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"protein":180,"calories":2800,"fat":90,"carbs":320,"fiber":30,"sugar":40}}`,
		},
		{
			name:           "отрицательное значение",
			body:           `{"protein":-1}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Protein is out of range"}`,
		},
		{
			name: "ошибка сервиса",
			body: `{"protein":100}`,
			setupMock: func(m *MockService) {
				m.On("SaveTargets", mock.Anything, userID, mock.Anything).Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to save targets"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockService)
			tt.setupMock(m)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/targets", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, userID))
			w := httptest.NewRecorder()

			New(logger, m).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			m.AssertExpectations(t)
		})
	}
}
