package reviewcreate

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

func (m *MockService) CreateReview(ctx context.Context, userUID string, req models.ReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, userUID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

const userID = "5f1c1a52-0d7f-4c47-9d3e-7bb0b3c0a0a1"

func TestReviewCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "отзыв создан",
			body: `{"rating":4,"comment":"Clean showers"}`,
			setupMock: func(m *MockService) {
				m.On("CreateReview", mock.Anything, userID, models.ReviewRequest{Rating: 4, Comment: "Clean showers"}).
					Return(&models.Review{ID: "r1", Rating: 4}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "оценка вне диапазона",
			body:           `{"rating":7,"comment":"wow"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Rating must be at most 5"}`,
		},
		{
			name:           "нет оценки",
			body:           `{"comment":"wow"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Rating is a required field"}`,
		},
		{
			name: "ошибка сервиса",
			body: `{"rating":3,"comment":"ok"}`,
			setupMock: func(m *MockService) {
				m.On("CreateReview", mock.Anything, userID, mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to create review"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockService)
			tt.setupMock(m)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, userID))
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
