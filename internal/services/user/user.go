// Package user содержит логику профиля посетителя и списка пользователей для администратора.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/storage/repository"
)

// ErrUserNotFound пользователь не найден.
var ErrUserNotFound = errors.New("user not found")

// Repository определяет методы хранилища для профилей.
type Repository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateProfile(ctx context.Context, user models.User) error
}

// Service реализует чтение и изменение профилей.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// Profile возвращает профиль пользователя.
func (s *Service) Profile(ctx context.Context, userUID string) (*models.User, error) {
	const op = "user.Profile"
	u, err := s.repo.GetUser(ctx, userUID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateProfile применяет изменения профиля. Роль и абонемент не меняются.
func (s *Service) UpdateProfile(ctx context.Context, userUID string, upd models.ProfileUpdate) (*models.User, error) {
	const op = "user.UpdateProfile"
	u, err := s.Profile(ctx, userUID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.DateOfBirth != nil {
		u.DateOfBirth = upd.DateOfBirth
		now := s.now()
		age := now.Year() - upd.DateOfBirth.Year()
		if now.YearDay() < upd.DateOfBirth.YearDay() {
			age--
		}
		u.Age = age
	}
	if upd.Gender != nil {
		u.Gender = *upd.Gender
	}
	if upd.Weight != nil {
		u.Weight = *upd.Weight
	}
	if upd.Height != nil {
		u.Height = *upd.Height
	}
	if upd.Goals != nil {
		u.Goals = upd.Goals
	}
	if upd.ExperienceLevel != nil {
		u.ExperienceLevel = *upd.ExperienceLevel
	}
	if upd.ProfilePic != nil {
		u.ProfilePic = *upd.ProfilePic
	}

	err = s.repo.UpdateProfile(ctx, *u)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("profile updated", slog.String("user_uid", userUID))
	return u, nil
}

// ListUsers возвращает всех пользователей.
func (s *Service) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "user.ListUsers"
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}
