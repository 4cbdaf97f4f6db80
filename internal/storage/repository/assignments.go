package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// AssignMembership блокирует строку пользователя, вычисляет назначение через compute,
// обновляет абонемент пользователя и добавляет запись в историю в одной транзакции.
// Параллельные назначения одному пользователю выполняются последовательно.
func (s *Storage) AssignMembership(ctx context.Context, userUID string, compute models.AssignFunc) (*models.MembershipAssignment, error) {
	const op = "storage.AssignMembership"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var result models.MembershipAssignment
	err := s.withTx(ctx, func(ctx context.Context, tx DBTX) error {
		user, err := scanUser(tx.QueryRowContext(ctx,
			`SELECT `+userColumns+` FROM users WHERE uid = $1 FOR UPDATE`, userUID))
		if err != nil {
			return mapError(err)
		}

		a, err := compute(user)
		if err != nil {
			return err
		}

		if _, err = tx.ExecContext(ctx, `UPDATE users
			  SET membership_id = $1, membership_type = $2,
			      membership_start_date = $3, membership_expiry = $4
			  WHERE uid = $5`,
			a.MembershipID, a.PlanType, a.StartDate, a.ExpiryDate, user.UUID); err != nil {
			return err
		}

		addons, err := json.Marshal(nonNil(a.Addons))
		if err != nil {
			return err
		}
		if err = tx.QueryRowContext(ctx, `INSERT INTO membership_assignments
			      (user_uid, membership_id, plan_type, start_date, expiry_date, assigned_by,
			       addons, total_price, is_extension)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id, assigned_at`,
			user.UUID, a.MembershipID, a.PlanType, a.StartDate, a.ExpiryDate, a.AssignedBy,
			string(addons), a.TotalPrice, a.IsExtension).Scan(&a.ID, &a.AssignedAt); err != nil {
			return err
		}
		a.UserUID = user.UUID
		result = a
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListAssignments возвращает историю назначений пользователя, новые первыми.
// Пустой userUID возвращает историю всех пользователей.
func (s *Storage) ListAssignments(ctx context.Context, userUID string) ([]*models.MembershipAssignment, error) {
	const op = "storage.ListAssignments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, membership_id, plan_type, start_date, expiry_date, assigned_by,
			      addons, total_price, is_extension, assigned_at
			  FROM membership_assignments
			  WHERE $1 = '' OR user_uid::text = $1
			  ORDER BY assigned_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.MembershipAssignment, 0)
	for rows.Next() {
		var (
			a      models.MembershipAssignment
			addons []byte
		)
		if err = rows.Scan(&a.ID, &a.UserUID, &a.MembershipID, &a.PlanType, &a.StartDate, &a.ExpiryDate,
			&a.AssignedBy, &addons, &a.TotalPrice, &a.IsExtension, &a.AssignedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = json.Unmarshal(addons, &a.Addons); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
