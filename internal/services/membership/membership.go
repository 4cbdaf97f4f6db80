// Package membership содержит бизнес-логику каталога абонементов
// и назначения абонемента пользователю с продлением действующего срока.
package membership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/lib/expiry"
	"github.com/magabrotheeeer/gym-manager/internal/lib/metrics"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/storage/repository"
)

const (
	cachePrefix = "membership:"
	plansKey    = cachePrefix + "plans"
	cacheTTL    = time.Hour
)

var (
	// ErrMembershipNotFound абонемента нет в каталоге.
	ErrMembershipNotFound = errors.New("membership not found")
	// ErrUserNotFound пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnknownAddon дополнительной услуги нет в каталоге.
	ErrUnknownAddon = errors.New("unknown addon")
)

// Repository определяет методы хранилища для абонементов и истории назначений.
type Repository interface {
	ListMemberships(ctx context.Context) ([]*models.Membership, error)
	GetMembership(ctx context.Context, id string) (*models.Membership, error)
	CreateMembershipIfAbsent(ctx context.Context, m models.Membership) (bool, error)
	AssignMembership(ctx context.Context, userUID string, compute models.AssignFunc) (*models.MembershipAssignment, error)
	ListAssignments(ctx context.Context, userUID string) ([]*models.MembershipAssignment, error)
}

// Cache описывает методы кеша каталога.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// Service реализует каталог абонементов и их назначение.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
	now   func() time.Time
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ListPlans возвращает каталог абонементов, сначала из кеша.
func (s *Service) ListPlans(ctx context.Context) ([]*models.Membership, error) {
	const op = "membership.ListPlans"
	var plans []*models.Membership
	if found, err := s.cache.Get(ctx, plansKey, &plans); err != nil {
		s.log.Warn("failed to read cache", slog.String("key", plansKey), sl.Err(err))
	} else if found {
		return plans, nil
	}

	plans, err := s.repo.ListMemberships(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, plansKey, plans, cacheTTL); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", plansKey), sl.Err(err))
	}
	return plans, nil
}

// GetPlan возвращает абонемент по ID, сначала из кеша.
func (s *Service) GetPlan(ctx context.Context, id string) (*models.Membership, error) {
	const op = "membership.GetPlan"
	key := cachePrefix + id
	var plan models.Membership
	if found, err := s.cache.Get(ctx, key, &plan); err != nil {
		s.log.Warn("failed to read cache", slog.String("key", key), sl.Err(err))
	} else if found {
		return &plan, nil
	}

	p, err := s.repo.GetMembership(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrMembershipNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, key, p, cacheTTL); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", key), sl.Err(err))
	}
	return p, nil
}

// SeedPlans добавляет в каталог отсутствующие стандартные абонементы и
// возвращает количество добавленных.
func (s *Service) SeedPlans(ctx context.Context) (int, error) {
	const op = "membership.SeedPlans"
	inserted := 0
	for _, plan := range defaultPlans() {
		ok, err := s.repo.CreateMembershipIfAbsent(ctx, plan)
		if err != nil {
			return inserted, fmt.Errorf("%s: %w", op, err)
		}
		if ok {
			inserted++
		}
	}
	if err := s.cache.InvalidatePrefix(ctx, cachePrefix); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("prefix", cachePrefix), sl.Err(err))
	}
	s.log.Info("membership catalog seeded", slog.Int("inserted", inserted))
	return inserted, nil
}

// Addons возвращает каталог дополнительных услуг.
func (s *Service) Addons() []models.Addon {
	out := make([]models.Addon, len(addons))
	copy(out, addons)
	return out
}

func addonsPrice(ids []string) (int, error) {
	total := 0
	for _, id := range ids {
		found := false
		for _, a := range addons {
			if a.ID == id {
				total += a.Price
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: %s", ErrUnknownAddon, id)
		}
	}
	return total, nil
}

// Assign назначает абонемент пользователю.
//
// Дата окончания считается по длительности плана от даты начала. Если у пользователя
// есть действующий абонемент, его срок продлевается на длину нового плана в днях.
// Итоговая стоимость равна цене плана плюс дополнительные услуги.
func (s *Service) Assign(ctx context.Context, req models.AssignRequest) (*models.AssignResult, error) {
	const op = "membership.Assign"
	log := s.log.With(sl.Op(op), slog.String("user_uid", req.UserUID), slog.String("membership_id", req.MembershipID))

	plan, err := s.GetPlan(ctx, req.MembershipID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	extra, err := addonsPrice(req.Addons)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	total := plan.Price + extra

	planType := req.PlanType
	if planType == "" {
		planType = expiry.PlanType(plan.Duration)
	}
	startDate := req.StartDate.UTC()
	candidate := expiry.PlanEnd(startDate, plan.Duration)
	if req.ExpiryDate != nil && !req.ExpiryDate.Equal(candidate) {
		log.Warn("client expiry date ignored",
			slog.Time("client", *req.ExpiryDate), slog.Time("computed", candidate))
	}
	if req.TotalPrice != nil && *req.TotalPrice != total {
		log.Warn("client total price ignored",
			slog.Int("client", *req.TotalPrice), slog.Int("computed", total))
	}

	now := s.now()
	a, err := s.repo.AssignMembership(ctx, req.UserUID, func(u *models.User) (models.MembershipAssignment, error) {
		final, extended := expiry.Extend(u.MembershipExpiry, startDate, candidate, now)
		return models.MembershipAssignment{
			MembershipID: plan.ID,
			PlanType:     planType,
			StartDate:    startDate,
			ExpiryDate:   final,
			AssignedBy:   req.AssignedBy,
			Addons:       req.Addons,
			TotalPrice:   total,
			IsExtension:  extended,
		}, nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.ObserveAssignment(a.IsExtension)
	log.Info("membership assigned",
		slog.String("assignment_id", a.ID),
		slog.Time("expiry_date", a.ExpiryDate),
		slog.Bool("is_extension", a.IsExtension))

	return &models.AssignResult{
		AssignmentID: a.ID,
		ExpiryDate:   a.ExpiryDate,
		IsExtension:  a.IsExtension,
		TotalPrice:   a.TotalPrice,
	}, nil
}

// ListAssignments возвращает историю назначений пользователя.
// Пустой userUID возвращает историю всех пользователей.
func (s *Service) ListAssignments(ctx context.Context, userUID string) ([]*models.MembershipAssignment, error) {
	const op = "membership.ListAssignments"
	list, err := s.repo.ListAssignments(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}
