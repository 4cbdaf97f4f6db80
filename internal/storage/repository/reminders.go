package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

const reminderColumns = `id, user_uid, user_name, type, message, priority, sent_at, expiry_date, read,
			      created_by, created_by_name, broadcast_id, created_at, updated_at`

func scanReminder(row rowScanner) (*models.Reminder, error) {
	var (
		r           models.Reminder
		broadcastID sql.NullString
		updatedAt   sql.NullTime
	)
	if err := row.Scan(&r.ID, &r.UserUID, &r.UserName, &r.Type, &r.Message, &r.Priority, &r.SentAt,
		&r.ExpiryDate, &r.Read, &r.CreatedBy, &r.CreatedByName, &broadcastID, &r.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	if broadcastID.Valid {
		r.BroadcastID = &broadcastID.String
	}
	if updatedAt.Valid {
		r.UpdatedAt = &updatedAt.Time
	}
	return &r, nil
}

// CreateReminder сохраняет адресное напоминание одному пользователю.
func (s *Storage) CreateReminder(ctx context.Context, r models.Reminder) (*models.Reminder, error) {
	const op = "storage.CreateReminder"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	created, err := scanReminder(s.DB.QueryRowContext(ctx, `INSERT INTO reminders
			      (user_uid, user_name, type, message, priority, sent_at, expiry_date, read,
			       created_by, created_by_name, broadcast_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, $9, $10)
			  RETURNING `+reminderColumns,
		r.UserUID, r.UserName, r.Type, r.Message, r.Priority, r.SentAt, r.ExpiryDate,
		r.CreatedBy, r.CreatedByName, r.BroadcastID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return created, nil
}

// ListUserReminders возвращает действующие напоминания пользователя, новые первыми.
func (s *Storage) ListUserReminders(ctx context.Context, userUID string, now time.Time) ([]*models.Reminder, error) {
	const op = "storage.ListUserReminders"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+reminderColumns+`
			  FROM reminders
			  WHERE user_uid = $1 AND expiry_date >= $2
			  ORDER BY sent_at DESC`, userUID, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Reminder, 0)
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetReminder возвращает напоминание по ID.
func (s *Storage) GetReminder(ctx context.Context, id string) (*models.Reminder, error) {
	const op = "storage.GetReminder"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	r, err := scanReminder(s.DB.QueryRowContext(ctx, `SELECT `+reminderColumns+` FROM reminders WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return r, nil
}

// UpdateReminder сохраняет изменяемые поля напоминания.
func (s *Storage) UpdateReminder(ctx context.Context, r models.Reminder) (*models.Reminder, error) {
	const op = "storage.UpdateReminder"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	updated, err := scanReminder(s.DB.QueryRowContext(ctx, `UPDATE reminders
			  SET type = $1, message = $2, priority = $3, read = $4, expiry_date = $5, updated_at = $6
			  WHERE id = $7
			  RETURNING `+reminderColumns,
		r.Type, r.Message, r.Priority, r.Read, r.ExpiryDate, r.UpdatedAt, r.ID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return updated, nil
}

// DeleteReminder удаляет напоминание по ID.
func (s *Storage) DeleteReminder(ctx context.Context, id string) error {
	const op = "storage.DeleteReminder"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = affectedOrNotFound(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// MarkReminderRead отмечает напоминание прочитанным. Чужие напоминания не изменяются.
func (s *Storage) MarkReminderRead(ctx context.Context, id, userUID string, at time.Time) error {
	const op = "storage.MarkReminderRead"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `UPDATE reminders
			  SET read = TRUE, updated_at = $1
			  WHERE id = $2 AND user_uid = $3`, at, id, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = affectedOrNotFound(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteExpiredReminders удаляет напоминания и рассылки с expiry_date < now.
func (s *Storage) DeleteExpiredReminders(ctx context.Context, now time.Time) (models.SweepResult, error) {
	const op = "storage.DeleteExpiredReminders"
	select {
	case <-ctx.Done():
		return models.SweepResult{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var result models.SweepResult
	err := s.withTx(ctx, func(ctx context.Context, tx DBTX) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM reminders WHERE expiry_date < $1`, now)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		result.Reminders = int(n)

		res, err = tx.ExecContext(ctx, `DELETE FROM broadcast_reminders WHERE expiry_date < $1`, now)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		if err != nil {
			return err
		}
		result.Broadcasts = int(n)
		return nil
	})
	if err != nil {
		return models.SweepResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
