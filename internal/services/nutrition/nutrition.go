// Package nutrition содержит дневник питания и дневные нормы нутриентов.
package nutrition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/storage/repository"
)

// ErrInvalidDate дата не в формате YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date")

// Repository определяет методы хранилища дневника питания.
type Repository interface {
	SaveDiet(ctx context.Context, userUID string, date time.Time, foods []models.Food) (*models.Diet, error)
	GetDiet(ctx context.Context, userUID string, date time.Time) (*models.Diet, error)
	SaveTargets(ctx context.Context, userUID string, t models.Targets) error
	GetTargets(ctx context.Context, userUID string) (*models.Targets, error)
}

// Service реализует дневник питания.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

func (s *Service) today() time.Time {
	n := s.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// SaveDiet сохраняет план питания на сегодня (UTC).
func (s *Service) SaveDiet(ctx context.Context, userUID string, foods []models.Food) (*models.Diet, error) {
	const op = "nutrition.SaveDiet"
	d, err := s.repo.SaveDiet(ctx, userUID, s.today(), foods)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("diet saved", slog.String("user_uid", userUID), slog.String("date", d.Date), slog.Int("foods", len(d.Foods)))
	return d, nil
}

// GetDiet возвращает план питания на дату. Пустая дата означает сегодня.
// Если плана нет, возвращается пустой список продуктов.
func (s *Service) GetDiet(ctx context.Context, userUID, date string) (*models.Diet, error) {
	const op = "nutrition.GetDiet"
	day := s.today()
	if date != "" {
		parsed, err := time.Parse(models.DateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidDate)
		}
		day = parsed
	}

	d, err := s.repo.GetDiet(ctx, userUID, day)
	if errors.Is(err, repository.ErrNotFound) {
		return &models.Diet{UserUID: userUID, Date: day.Format(models.DateLayout), Foods: []models.Food{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if d.Foods == nil {
		d.Foods = []models.Food{}
	}
	return d, nil
}

// SaveTargets сохраняет дневные нормы.
func (s *Service) SaveTargets(ctx context.Context, userUID string, t models.Targets) error {
	const op = "nutrition.SaveTargets"
	if err := s.repo.SaveTargets(ctx, userUID, t); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetTargets возвращает нормы пользователя или нормы по умолчанию.
func (s *Service) GetTargets(ctx context.Context, userUID string) (models.Targets, error) {
	const op = "nutrition.GetTargets"
	t, err := s.repo.GetTargets(ctx, userUID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.DefaultTargets(), nil
	}
	if err != nil {
		return models.Targets{}, fmt.Errorf("%s: %w", op, err)
	}
	return *t, nil
}
