package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/gym-manager/internal/migrations"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции проекта.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	var storage *Storage
	for i := 0; i < 10; i++ {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	cleanup := func() {
		_ = storage.DB.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return storage, cleanup
}

// TestDataFactory создает тестовые данные напрямую в базе.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает пользователя и возвращает его UID.
func (f *TestDataFactory) CreateUser(t *testing.T, name, email string, expiry *time.Time) string {
	t.Helper()
	var uid string
	err := f.storage.DB.QueryRow(`INSERT INTO users (name, username, email, password_hash, membership_expiry)
		VALUES ($1, $2, $2, 'hash', $3) RETURNING uid`, name, email, expiry).Scan(&uid)
	require.NoError(t, err)
	return uid
}

// CreateMembership создает абонемент и возвращает его ID.
func (f *TestDataFactory) CreateMembership(t *testing.T, name string, duration, price int) string {
	t.Helper()
	var id string
	err := f.storage.DB.QueryRow(`INSERT INTO memberships (name, duration, price, price_per_month, category)
		VALUES ($1, $2, $3, $3 / $2, 'bodybuilding') RETURNING id`, name, duration, price).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateBroadcast создает рассылку с заданным сроком без персональных копий.
func (f *TestDataFactory) CreateBroadcast(t *testing.T, message string, expiry time.Time) string {
	t.Helper()
	var id string
	err := f.storage.DB.QueryRow(`INSERT INTO broadcast_reminders (type, message, sent_at, expiry_date)
		VALUES ('general', $1, now(), $2) RETURNING id`, message, expiry).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateReminder создает персональное напоминание с заданным сроком.
func (f *TestDataFactory) CreateReminder(t *testing.T, userUID, message string, expiry time.Time) string {
	t.Helper()
	r, err := f.storage.CreateReminder(context.Background(), models.Reminder{
		UserUID:       userUID,
		UserName:      "tester",
		Type:          "general",
		Message:       message,
		Priority:      models.PriorityNormal,
		SentAt:        time.Now().UTC(),
		ExpiryDate:    expiry,
		CreatedBy:     "system",
		CreatedByName: models.SystemName,
	})
	require.NoError(t, err)
	return r.ID
}

// TestVerification проверяет состояние базы после операций.
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов.
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// CountRows возвращает количество строк в таблице.
func (v *TestVerification) CountRows(t *testing.T, table string) int {
	t.Helper()
	var count int
	require.NoError(t, v.storage.DB.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&count))
	return count
}

// CountRemindersOfBroadcast возвращает количество копий рассылки.
func (v *TestVerification) CountRemindersOfBroadcast(t *testing.T, broadcastID string) int {
	t.Helper()
	var count int
	require.NoError(t, v.storage.DB.QueryRow(
		"SELECT COUNT(*) FROM reminders WHERE broadcast_id = $1", broadcastID).Scan(&count))
	return count
}
