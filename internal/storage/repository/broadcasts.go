package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

const broadcastColumns = `id, type, message, priority, sent_at, expiry_date, user_count,
			      created_by, created_by_name, created_at, updated_at`

func scanBroadcast(row rowScanner) (*models.BroadcastReminder, error) {
	var (
		b         models.BroadcastReminder
		updatedAt sql.NullTime
	)
	if err := row.Scan(&b.ID, &b.Type, &b.Message, &b.Priority, &b.SentAt, &b.ExpiryDate, &b.UserCount,
		&b.CreatedBy, &b.CreatedByName, &b.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		b.UpdatedAt = &updatedAt.Time
	}
	b.IsBroadcast = true
	return &b, nil
}

// CreateBroadcast сохраняет рассылку и создает по персональной копии для каждого
// пользователя в одной транзакции. UserCount рассылки равен числу созданных копий.
func (s *Storage) CreateBroadcast(ctx context.Context, b models.BroadcastReminder) (*models.BroadcastReminder, error) {
	const op = "storage.CreateBroadcast"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var created *models.BroadcastReminder
	err := s.withTx(ctx, func(ctx context.Context, tx DBTX) error {
		var id string
		if err := tx.QueryRowContext(ctx, `INSERT INTO broadcast_reminders
			      (type, message, priority, sent_at, expiry_date, user_count, created_by, created_by_name)
			  VALUES ($1, $2, $3, $4, $5, 0, $6, $7)
			  RETURNING id`,
			b.Type, b.Message, b.Priority, b.SentAt, b.ExpiryDate, b.CreatedBy, b.CreatedByName).Scan(&id); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `INSERT INTO reminders
			      (user_uid, user_name, type, message, priority, sent_at, expiry_date, read,
			       created_by, created_by_name, broadcast_id)
			  SELECT uid, name, $1::text, $2::text, $3::text, $4::timestamptz, $5::timestamptz,
			         FALSE, $6::text, $7::text, $8::uuid
			  FROM users`,
			b.Type, b.Message, b.Priority, b.SentAt, b.ExpiryDate, b.CreatedBy, b.CreatedByName, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}

		created, err = scanBroadcast(tx.QueryRowContext(ctx, `UPDATE broadcast_reminders
			  SET user_count = $1
			  WHERE id = $2
			  RETURNING `+broadcastColumns, n, id))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// ListActiveBroadcasts возвращает рассылки, срок которых не истек к now, новые первыми.
func (s *Storage) ListActiveBroadcasts(ctx context.Context, now time.Time) ([]*models.BroadcastReminder, error) {
	const op = "storage.ListActiveBroadcasts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+broadcastColumns+`
			  FROM broadcast_reminders
			  WHERE expiry_date >= $1
			  ORDER BY sent_at DESC`, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.BroadcastReminder, 0)
	for rows.Next() {
		b, err := scanBroadcast(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetBroadcast возвращает рассылку по ID.
func (s *Storage) GetBroadcast(ctx context.Context, id string) (*models.BroadcastReminder, error) {
	const op = "storage.GetBroadcast"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	b, err := scanBroadcast(s.DB.QueryRowContext(ctx, `SELECT `+broadcastColumns+` FROM broadcast_reminders WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return b, nil
}

// UpdateBroadcast сохраняет тип, текст, приоритет и срок рассылки.
// Персональные копии не изменяются.
func (s *Storage) UpdateBroadcast(ctx context.Context, b models.BroadcastReminder) (*models.BroadcastReminder, error) {
	const op = "storage.UpdateBroadcast"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	updated, err := scanBroadcast(s.DB.QueryRowContext(ctx, `UPDATE broadcast_reminders
			  SET type = $1, message = $2, priority = $3, expiry_date = $4, updated_at = $5
			  WHERE id = $6
			  RETURNING `+broadcastColumns,
		b.Type, b.Message, b.Priority, b.ExpiryDate, b.UpdatedAt, b.ID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return updated, nil
}

// DeleteBroadcast удаляет рассылку. Персональные копии остаются.
func (s *Storage) DeleteBroadcast(ctx context.Context, id string) error {
	const op = "storage.DeleteBroadcast"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM broadcast_reminders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = affectedOrNotFound(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
