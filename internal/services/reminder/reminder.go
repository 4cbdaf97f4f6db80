// Package reminder содержит бизнес-логику рассылок и персональных напоминаний:
// рассылку всем пользователям, адресные напоминания, отметку о прочтении
// и очистку просроченных записей.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/lib/metrics"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/rabbitmq"
	"github.com/magabrotheeeer/gym-manager/internal/storage/repository"
)

const (
	defaultCreatedBy = "system"
	day              = 24 * time.Hour

	// ExpiryMessage текст напоминания об окончании абонемента.
	ExpiryMessage = "Your membership is expiring soon. Please renew to continue enjoying our services."
)

var (
	// ErrUserNotFound пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrReminderNotFound напоминание не найдено.
	ErrReminderNotFound = errors.New("reminder not found")
	// ErrBroadcastNotFound рассылка не найдена.
	ErrBroadcastNotFound = errors.New("broadcast reminder not found")
)

// Repository определяет методы хранилища для рассылок и напоминаний.
type Repository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	CreateBroadcast(ctx context.Context, b models.BroadcastReminder) (*models.BroadcastReminder, error)
	ListActiveBroadcasts(ctx context.Context, now time.Time) ([]*models.BroadcastReminder, error)
	GetBroadcast(ctx context.Context, id string) (*models.BroadcastReminder, error)
	UpdateBroadcast(ctx context.Context, b models.BroadcastReminder) (*models.BroadcastReminder, error)
	DeleteBroadcast(ctx context.Context, id string) error

	CreateReminder(ctx context.Context, r models.Reminder) (*models.Reminder, error)
	ListUserReminders(ctx context.Context, userUID string, now time.Time) ([]*models.Reminder, error)
	GetReminder(ctx context.Context, id string) (*models.Reminder, error)
	UpdateReminder(ctx context.Context, r models.Reminder) (*models.Reminder, error)
	DeleteReminder(ctx context.Context, id string) error
	MarkReminderRead(ctx context.Context, id, userUID string, at time.Time) error
	DeleteExpiredReminders(ctx context.Context, now time.Time) (models.SweepResult, error)
}

// Service реализует рассылки и напоминания.
type Service struct {
	repo              Repository
	publisher         rabbitmq.Publisher
	log               *slog.Logger
	defaultExpiryDays int
	now               func() time.Time
}

// New создает новый экземпляр Service. publisher может быть nil,
// тогда письма об окончании абонемента не отправляются.
func New(repo Repository, publisher rabbitmq.Publisher, defaultExpiryDays int, log *slog.Logger) *Service {
	if defaultExpiryDays <= 0 {
		defaultExpiryDays = 1
	}
	return &Service{
		repo:              repo,
		publisher:         publisher,
		log:               log,
		defaultExpiryDays: defaultExpiryDays,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) expiryFrom(now time.Time, days int) time.Time {
	if days <= 0 {
		days = s.defaultExpiryDays
	}
	return now.Add(time.Duration(days) * day)
}

// nameOf возвращает имя пользователя или fallback. Ошибка поиска не прерывает операцию.
func (s *Service) nameOf(ctx context.Context, userUID, fallback string) string {
	if userUID == "" || userUID == defaultCreatedBy {
		return fallback
	}
	u, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("could not fetch user name, using default", slog.String("user_uid", userUID), sl.Err(err))
		}
		return fallback
	}
	if u.Name == "" {
		return fallback
	}
	return u.Name
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// CreateBroadcast создает рассылку и персональную копию для каждого пользователя.
func (s *Service) CreateBroadcast(ctx context.Context, req models.BroadcastRequest) (*models.BroadcastResult, error) {
	const op = "reminder.CreateBroadcast"
	now := s.now()
	createdBy := orDefault(req.CreatedBy, defaultCreatedBy)

	b, err := s.repo.CreateBroadcast(ctx, models.BroadcastReminder{
		Type:          req.Type,
		Message:       req.Message,
		Priority:      orDefault(req.Priority, models.PriorityNormal),
		SentAt:        now,
		ExpiryDate:    s.expiryFrom(now, req.ExpiryDays),
		CreatedBy:     createdBy,
		CreatedByName: s.nameOf(ctx, req.CreatedBy, models.SystemName),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.RemindersFannedOut.Add(float64(b.UserCount))
	s.log.Info("broadcast reminder created",
		slog.String("id", b.ID), slog.Int("user_count", b.UserCount))

	return &models.BroadcastResult{
		Message:           fmt.Sprintf("Reminder sent to %d users successfully", b.UserCount),
		BroadcastReminder: *b,
		UserCount:         b.UserCount,
	}, nil
}

// ListBroadcasts возвращает действующие рассылки.
func (s *Service) ListBroadcasts(ctx context.Context) ([]*models.BroadcastReminder, error) {
	const op = "reminder.ListBroadcasts"
	list, err := s.repo.ListActiveBroadcasts(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// UpdateBroadcast изменяет рассылку. Персональные копии не меняются.
func (s *Service) UpdateBroadcast(ctx context.Context, id string, upd models.BroadcastUpdate) (*models.BroadcastReminder, error) {
	const op = "reminder.UpdateBroadcast"
	b, err := s.repo.GetBroadcast(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrBroadcastNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	if upd.Type != nil {
		b.Type = *upd.Type
	}
	if upd.Message != nil {
		b.Message = *upd.Message
	}
	if upd.Priority != nil {
		b.Priority = *upd.Priority
	}
	if upd.ExpiryDays != nil {
		b.ExpiryDate = s.expiryFrom(now, *upd.ExpiryDays)
	}
	b.UpdatedAt = &now

	updated, err := s.repo.UpdateBroadcast(ctx, *b)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrBroadcastNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteBroadcast удаляет рассылку. Персональные копии остаются.
func (s *Service) DeleteBroadcast(ctx context.Context, id string) error {
	const op = "reminder.DeleteBroadcast"
	err := s.repo.DeleteBroadcast(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrBroadcastNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreateReminder создает адресное напоминание одному пользователю.
func (s *Service) CreateReminder(ctx context.Context, req models.ReminderRequest) (*models.Reminder, error) {
	const op = "reminder.CreateReminder"
	now := s.now()
	r, err := s.repo.CreateReminder(ctx, models.Reminder{
		UserUID:       req.UserUID,
		UserName:      s.nameOf(ctx, req.UserUID, models.UnknownUserName),
		Type:          req.Type,
		Message:       req.Message,
		Priority:      orDefault(req.Priority, models.PriorityNormal),
		SentAt:        now,
		ExpiryDate:    s.expiryFrom(now, req.ExpiryDays),
		CreatedBy:     orDefault(req.CreatedBy, defaultCreatedBy),
		CreatedByName: s.nameOf(ctx, req.CreatedBy, models.SystemName),
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// ListUserReminders возвращает действующие напоминания пользователя.
func (s *Service) ListUserReminders(ctx context.Context, userUID string) ([]*models.Reminder, error) {
	const op = "reminder.ListUserReminders"
	list, err := s.repo.ListUserReminders(ctx, userUID, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// UpdateReminder изменяет напоминание.
func (s *Service) UpdateReminder(ctx context.Context, id string, upd models.ReminderUpdate) (*models.Reminder, error) {
	const op = "reminder.UpdateReminder"
	r, err := s.repo.GetReminder(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrReminderNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	if upd.Type != nil {
		r.Type = *upd.Type
	}
	if upd.Message != nil {
		r.Message = *upd.Message
	}
	if upd.Priority != nil {
		r.Priority = *upd.Priority
	}
	if upd.Read != nil {
		r.Read = *upd.Read
	}
	if upd.ExpiryDays != nil {
		r.ExpiryDate = s.expiryFrom(now, *upd.ExpiryDays)
	}
	r.UpdatedAt = &now

	updated, err := s.repo.UpdateReminder(ctx, *r)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrReminderNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteReminder удаляет напоминание.
func (s *Service) DeleteReminder(ctx context.Context, id string) error {
	const op = "reminder.DeleteReminder"
	err := s.repo.DeleteReminder(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrReminderNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// MarkRead отмечает напоминание пользователя прочитанным.
func (s *Service) MarkRead(ctx context.Context, id, userUID string) error {
	const op = "reminder.MarkRead"
	err := s.repo.MarkReminderRead(ctx, id, userUID, s.now())
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrReminderNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SendExpiryReminder создает пользователю напоминание об окончании абонемента
// и ставит письмо в очередь. Ошибка публикации только логируется.
func (s *Service) SendExpiryReminder(ctx context.Context, userUID, createdBy string) (*models.Reminder, error) {
	const op = "reminder.SendExpiryReminder"
	log := s.log.With(sl.Op(op), slog.String("user_uid", userUID))

	user, err := s.repo.GetUser(ctx, userUID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	r, err := s.repo.CreateReminder(ctx, models.Reminder{
		UserUID:       user.UUID,
		UserName:      orDefault(user.Name, models.UnknownUserName),
		Type:          models.ReminderTypeMembershipExpiry,
		Message:       ExpiryMessage,
		Priority:      models.PriorityNormal,
		SentAt:        now,
		ExpiryDate:    s.expiryFrom(now, 0),
		CreatedBy:     orDefault(createdBy, defaultCreatedBy),
		CreatedByName: s.nameOf(ctx, createdBy, models.SystemName),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	event := models.MembershipExpiringEvent{
		UserUID:        user.UUID,
		Email:          user.Email,
		Name:           user.Name,
		MembershipType: user.MembershipType,
		Message:        ExpiryMessage,
	}
	if user.MembershipExpiry != nil {
		event.ExpiryDate = *user.MembershipExpiry
	}
	if err := s.Publish(event); err != nil {
		log.Warn("failed to queue expiry e-mail", sl.Err(err))
	}

	log.Info("expiry reminder sent", slog.String("reminder_id", r.ID))
	return r, nil
}

// Publish ставит письмо об окончании абонемента в очередь.
func (s *Service) Publish(event models.MembershipExpiringEvent) error {
	if s.publisher == nil {
		return nil
	}
	return rabbitmq.PublishMessage(s.publisher, rabbitmq.Exchange, rabbitmq.MembershipExpiringKey, event)
}

// Sweep удаляет просроченные напоминания и рассылки.
func (s *Service) Sweep(ctx context.Context) (models.SweepResult, error) {
	const op = "reminder.Sweep"
	res, err := s.repo.DeleteExpiredReminders(ctx, s.now())
	if err != nil {
		return models.SweepResult{}, fmt.Errorf("%s: %w", op, err)
	}
	metrics.ObserveSweep(res.Reminders, res.Broadcasts)
	s.log.Info("expired reminders swept",
		slog.Int("reminders", res.Reminders), slog.Int("broadcasts", res.Broadcasts))
	return res, nil
}
