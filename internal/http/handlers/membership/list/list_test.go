package list

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

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListPlans(ctx context.Context) ([]*models.Membership, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Membership), args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		plans          []*models.Membership
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{name: "пустой каталог", expectedStatus: http.StatusOK, expectedBody: `{"status":"OK","data":{"memberships":[]}}`},
		{name: "ошибка сервиса", err: errors.New("db error"), expectedStatus: http.StatusInternalServerError,
			expectedBody: `{"status":"Error","error":"failed to list memberships"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockService)
			if tt.err != nil {
				m.On("ListPlans", mock.Anything).Return(nil, tt.err)
			} else {
				m.On("ListPlans", mock.Anything).Return(tt.plans, nil)
			}
			w := httptest.NewRecorder()
			New(logger, m).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/memberships", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
