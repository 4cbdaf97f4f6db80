package nutrition

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/storage/repository"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) SaveDiet(ctx context.Context, userUID string, date time.Time, foods []models.Food) (*models.Diet, error) {
	args := m.Called(ctx, userUID, date, foods)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Diet), args.Error(1)
}

func (m *RepoMock) GetDiet(ctx context.Context, userUID string, date time.Time) (*models.Diet, error) {
	args := m.Called(ctx, userUID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Diet), args.Error(1)
}

func (m *RepoMock) SaveTargets(ctx context.Context, userUID string, t models.Targets) error {
	return m.Called(ctx, userUID, t).Error(0)
}

func (m *RepoMock) GetTargets(ctx context.Context, userUID string) (*models.Targets, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Targets), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(repo Repository) *Service {
	s := New(repo, newNoopLogger())
	s.now = func() time.Time { return time.Date(2024, 5, 15, 23, 30, 0, 0, time.UTC) }
	return s
}

var today = time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)

func TestService_SaveDiet_UsesTodayUTC(t *testing.T) {
	foods := []models.Food{{Name: "Oats", Quantity: 1, Calories: 380}}
	repo := new(RepoMock)
	repo.On("SaveDiet", mock.Anything, "u1", today, foods).
		Return(&models.Diet{ID: "d1", UserUID: "u1", Date: "2024-05-15", Foods: foods}, nil)

	d, err := newTestService(repo).SaveDiet(context.Background(), "u1", foods)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-15", d.Date)
	repo.AssertExpectations(t)
}

func TestService_GetDiet(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		wantDay   time.Time
		repoDiet  *models.Diet
		repoErr   error
		wantFoods int
		wantErr   error
	}{
		{
			name:      "сегодня по умолчанию",
			wantDay:   today,
			repoDiet:  &models.Diet{Date: "2024-05-15", Foods: []models.Food{{Name: "Rice"}}},
			wantFoods: 1,
		},
		{
			name:      "план отсутствует",
			date:      "2024-05-01",
			wantDay:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			repoErr:   repository.ErrNotFound,
			wantFoods: 0,
		},
		{
			name:    "неверная дата",
			date:    "01.05.2024",
			wantErr: ErrInvalidDate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			if tt.wantErr == nil {
				if tt.repoErr != nil {
					repo.On("GetDiet", mock.Anything, "u1", tt.wantDay).Return(nil, tt.repoErr)
				} else {
					repo.On("GetDiet", mock.Anything, "u1", tt.wantDay).Return(tt.repoDiet, nil)
				}
			}

			d, err := newTestService(repo).GetDiet(context.Background(), "u1", tt.date)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, d.Foods)
			assert.Len(t, d.Foods, tt.wantFoods)
			assert.Equal(t, tt.wantDay.Format(models.DateLayout), d.Date)
		})
	}
}

func TestService_GetTargets(t *testing.T) {
	tests := []struct {
		name    string
		stored  *models.Targets
		repoErr error
		want    models.Targets
		wantErr bool
	}{
		{name: "нормы по умолчанию", repoErr: repository.ErrNotFound, want: models.DefaultTargets()},
		{name: "сохраненные нормы", stored: &models.Targets{Protein: 120, Calories: 2000}, want: models.Targets{Protein: 120, Calories: 2000}},
		{name: "ошибка хранилища", repoErr: errors.New("db error"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			if tt.stored != nil {
				repo.On("GetTargets", mock.Anything, "u1").Return(tt.stored, nil)
			} else {
				repo.On("GetTargets", mock.Anything, "u1").Return(nil, tt.repoErr)
			}

			got, err := newTestService(repo).GetTargets(context.Background(), "u1")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_SaveTargets(t *testing.T) {
	tg := models.Targets{Protein: 100}
	repo := new(RepoMock)
	repo.On("SaveTargets", mock.Anything, "u1", tg).Return(nil)

	require.NoError(t, newTestService(repo).SaveTargets(context.Background(), "u1", tg))
	repo.AssertExpectations(t)
}
