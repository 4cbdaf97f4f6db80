// Package scheduler запускает периодические задачи: очистку просроченных
// напоминаний и поиск абонементов, которые скоро закончатся.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/rabbitmq"
	"github.com/magabrotheeeer/gym-manager/internal/services/reminder"
)

// ExpiryWindow горизонт поиска заканчивающихся абонементов.
const ExpiryWindow = 24 * time.Hour

// MembershipRepository ищет пользователей с заканчивающимся абонементом.
type MembershipRepository interface {
	FindMembershipsExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.ExpiringMember, error)
}

// Reminders описывает нужные планировщику методы сервиса напоминаний.
type Reminders interface {
	CreateReminder(ctx context.Context, req models.ReminderRequest) (*models.Reminder, error)
	Sweep(ctx context.Context) (models.SweepResult, error)
}

// Service планировщик фоновых задач.
type Service struct {
	repo      MembershipRepository
	reminders Reminders
	log       *slog.Logger
	now       func() time.Time
}

// New создает новый экземпляр Service.
func New(repo MembershipRepository, reminders Reminders, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		reminders: reminders,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// RunSweeper удаляет просроченные напоминания сразу и затем на каждом тике.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	s.runSweep(ctx)
	runEvery(ctx, interval, s.runSweep)
}

// RunExpiryNotifier ищет абонементы, заканчивающиеся в ближайшие сутки,
// создает напоминание и ставит письмо в очередь.
func (s *Service) RunExpiryNotifier(ctx context.Context, interval time.Duration, channel rabbitmq.Publisher) {
	run := func(ctx context.Context) { s.notifyExpiring(ctx, channel) }
	run(ctx)
	runEvery(ctx, interval, run)
}

func runEvery(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}

func (s *Service) runSweep(ctx context.Context) {
	if _, err := s.reminders.Sweep(ctx); err != nil {
		s.log.Error("failed to sweep expired reminders", sl.Err(err))
	}
}

func (s *Service) notifyExpiring(ctx context.Context, channel rabbitmq.Publisher) {
	s.log.Info("looking for memberships expiring within a day")
	now := s.now()
	members, err := s.repo.FindMembershipsExpiringBetween(ctx, now, now.Add(ExpiryWindow))
	if err != nil {
		s.log.Error("failed to find expiring memberships", sl.Err(err))
		return
	}
	if len(members) == 0 {
		s.log.Info("no expiring memberships found")
		return
	}
	s.log.Info("found expiring memberships", slog.Int("count", len(members)))

	for _, m := range members {
		if _, err = s.reminders.CreateReminder(ctx, models.ReminderRequest{
			UserUID: m.UserUID,
			Type:    models.ReminderTypeMembershipExpiry,
			Message: reminder.ExpiryMessage,
		}); err != nil {
			s.log.Error("failed to create expiry reminder", slog.String("user_uid", m.UserUID), sl.Err(err))
		}

		if channel == nil {
			continue
		}
		event := models.MembershipExpiringEvent{
			UserUID:        m.UserUID,
			Email:          m.Email,
			Name:           m.Name,
			MembershipType: m.MembershipType,
			ExpiryDate:     m.ExpiryDate,
			Message:        reminder.ExpiryMessage,
		}
		if err = rabbitmq.PublishMessage(channel, rabbitmq.Exchange, rabbitmq.MembershipExpiringKey, event); err != nil {
			s.log.Error("failed to publish message", slog.String("user_uid", m.UserUID), sl.Err(err))
		}
	}
}
