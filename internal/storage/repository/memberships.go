package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

const membershipColumns = `id, name, duration, price, price_per_month, features, category,
			      description, badge, best_for, created_at`

func scanMembership(row rowScanner) (*models.Membership, error) {
	var (
		m        models.Membership
		features []byte
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Duration, &m.Price, &m.PricePerMonth, &features, &m.Category,
		&m.Description, &m.Badge, &m.BestFor, &m.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(features, &m.Features); err != nil {
		return nil, fmt.Errorf("decode features: %w", err)
	}
	return &m, nil
}

// ListMemberships возвращает каталог абонементов по категории и длительности.
func (s *Storage) ListMemberships(ctx context.Context) ([]*models.Membership, error) {
	const op = "storage.ListMemberships"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+membershipColumns+` FROM memberships ORDER BY category, duration`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Membership, 0)
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetMembership возвращает абонемент по ID.
func (s *Storage) GetMembership(ctx context.Context, id string) (*models.Membership, error) {
	const op = "storage.GetMembership"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	m, err := scanMembership(s.DB.QueryRowContext(ctx, `SELECT `+membershipColumns+` FROM memberships WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return m, nil
}

// CreateMembershipIfAbsent добавляет абонемент, если абонемента с таким именем еще нет.
// Возвращает true, если запись добавлена.
func (s *Storage) CreateMembershipIfAbsent(ctx context.Context, m models.Membership) (bool, error) {
	const op = "storage.CreateMembershipIfAbsent"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	features, err := json.Marshal(nonNil(m.Features))
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	query := `INSERT INTO memberships (name, duration, price, price_per_month, features, category,
			      description, badge, best_for)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  ON CONFLICT (name) DO NOTHING`
	res, err := s.DB.ExecContext(ctx, query,
		m.Name, m.Duration, m.Price, m.PricePerMonth, string(features), m.Category,
		m.Description, m.Badge, m.BestFor)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n == 1, nil
}
