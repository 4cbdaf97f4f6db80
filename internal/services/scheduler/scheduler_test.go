package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/rabbitmq"
	"github.com/magabrotheeeer/gym-manager/internal/services/reminder"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindMembershipsExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.ExpiringMember, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ExpiringMember), args.Error(1)
}

type MockReminders struct {
	mock.Mock
}

func (m *MockReminders) CreateReminder(ctx context.Context, req models.ReminderRequest) (*models.Reminder, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reminder), args.Error(1)
}

func (m *MockReminders) Sweep(ctx context.Context) (models.SweepResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.SweepResult), args.Error(1)
}

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

var fixedNow = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func newTestService(repo *MockRepository, rem *MockReminders) *Service {
	s := New(repo, rem, newNoopLogger())
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestService_notifyExpiring(t *testing.T) {
	member := &models.ExpiringMember{
		UserUID:        "u1",
		Email:          "john@example.com",
		Name:           "John",
		MembershipType: "monthly",
		ExpiryDate:     fixedNow.Add(10 * time.Hour),
	}
	reminderReq := models.ReminderRequest{
		UserUID: "u1",
		Type:    models.ReminderTypeMembershipExpiry,
		Message: reminder.ExpiryMessage,
	}

	tests := []struct {
		name       string
		setupMocks func(*MockRepository, *MockReminders, *MockChannel)
	}{
		{
			name: "success - reminder and e-mail job",
			setupMocks: func(r *MockRepository, rem *MockReminders, ch *MockChannel) {
				r.On("FindMembershipsExpiringBetween", mock.Anything, fixedNow, fixedNow.Add(ExpiryWindow)).
					Return([]*models.ExpiringMember{member}, nil).Once()
				rem.On("CreateReminder", mock.Anything, reminderReq).Return(&models.Reminder{ID: "r1"}, nil).Once()
				ch.On("Publish", rabbitmq.Exchange, rabbitmq.MembershipExpiringKey, false, false,
					mock.MatchedBy(func(p amqp.Publishing) bool {
						var ev models.MembershipExpiringEvent
						return json.Unmarshal(p.Body, &ev) == nil && ev.Email == "john@example.com"
					})).Return(nil).Once()
			},
		},
		{
			name: "no expiring memberships",
			setupMocks: func(r *MockRepository, _ *MockReminders, _ *MockChannel) {
				r.On("FindMembershipsExpiringBetween", mock.Anything, fixedNow, fixedNow.Add(ExpiryWindow)).
					Return([]*models.ExpiringMember{}, nil).Once()
			},
		},
		{
			name: "repository error",
			setupMocks: func(r *MockRepository, _ *MockReminders, _ *MockChannel) {
				r.On("FindMembershipsExpiringBetween", mock.Anything, fixedNow, fixedNow.Add(ExpiryWindow)).
					Return(nil, errors.New("db error")).Once()
			},
		},
		{
			name: "reminder error still publishes",
			setupMocks: func(r *MockRepository, rem *MockReminders, ch *MockChannel) {
				r.On("FindMembershipsExpiringBetween", mock.Anything, fixedNow, fixedNow.Add(ExpiryWindow)).
					Return([]*models.ExpiringMember{member}, nil).Once()
				rem.On("CreateReminder", mock.Anything, reminderReq).Return(nil, errors.New("db error")).Once()
				ch.On("Publish", rabbitmq.Exchange, rabbitmq.MembershipExpiringKey, false, false, mock.Anything).
					Return(nil).Once()
			},
		},
		{
			name: "publish error is logged",
			setupMocks: func(r *MockRepository, rem *MockReminders, ch *MockChannel) {
				r.On("FindMembershipsExpiringBetween", mock.Anything, fixedNow, fixedNow.Add(ExpiryWindow)).
					Return([]*models.ExpiringMember{member}, nil).Once()
				rem.On("CreateReminder", mock.Anything, reminderReq).Return(&models.Reminder{ID: "r1"}, nil).Once()
				ch.On("Publish", rabbitmq.Exchange, rabbitmq.MembershipExpiringKey, false, false, mock.Anything).
					Return(errors.New("channel closed")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			rem := new(MockReminders)
			channel := new(MockChannel)
			tt.setupMocks(repo, rem, channel)

			newTestService(repo, rem).notifyExpiring(context.Background(), channel)

			repo.AssertExpectations(t)
			rem.AssertExpectations(t)
			channel.AssertExpectations(t)
		})
	}
}

func TestService_notifyExpiring_NilChannel(t *testing.T) {
	repo := new(MockRepository)
	rem := new(MockReminders)
	repo.On("FindMembershipsExpiringBetween", mock.Anything, fixedNow, fixedNow.Add(ExpiryWindow)).
		Return([]*models.ExpiringMember{{UserUID: "u1"}}, nil).Once()
	rem.On("CreateReminder", mock.Anything, mock.Anything).Return(&models.Reminder{ID: "r1"}, nil).Once()

	newTestService(repo, rem).notifyExpiring(context.Background(), nil)

	rem.AssertExpectations(t)
}

func TestService_RunSweeper_StopsOnCancel(t *testing.T) {
	var calls atomic.Int32
	repo := new(MockRepository)
	rem := new(MockReminders)
	rem.On("Sweep", mock.Anything).Return(models.SweepResult{Reminders: 2}, nil).
		Run(func(mock.Arguments) { calls.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		newTestService(repo, rem).RunSweeper(ctx, 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}

func TestService_RunSweeper_ErrorDoesNotStop(t *testing.T) {
	var calls atomic.Int32
	repo := new(MockRepository)
	rem := new(MockReminders)
	rem.On("Sweep", mock.Anything).Return(models.SweepResult{}, errors.New("db error")).
		Run(func(mock.Arguments) { calls.Add(1) })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	newTestService(repo, rem).RunSweeper(ctx, 10*time.Millisecond)

	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}
