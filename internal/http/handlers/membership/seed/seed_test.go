package seed

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
)

type MockService struct {
	mock.Mock
}

func (m *MockService) SeedPlans(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestSeedHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		inserted       int
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{name: "первое заполнение", inserted: 8, expectedStatus: http.StatusOK, expectedBody: `{"status":"OK","data":{"inserted":8}}`},
		{name: "повторное заполнение", inserted: 0, expectedStatus: http.StatusOK, expectedBody: `{"status":"OK","data":{"inserted":0}}`},
		{name: "ошибка сервиса", err: errors.New("db error"), expectedStatus: http.StatusInternalServerError,
			expectedBody: `{"status":"Error","error":"failed to seed memberships"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockService)
			m.On("SeedPlans", mock.Anything).Return(tt.inserted, tt.err)

			w := httptest.NewRecorder()
			New(logger, m).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/memberships/seed", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
