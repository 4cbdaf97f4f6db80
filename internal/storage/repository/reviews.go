package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// CreateReview сохраняет отзыв.
func (s *Storage) CreateReview(ctx context.Context, r models.Review) (*models.Review, error) {
	const op = "storage.CreateReview"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if err := s.DB.QueryRowContext(ctx, `INSERT INTO reviews (user_uid, user_name, rating, comment)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at`,
		r.UserUID, r.UserName, r.Rating, r.Comment).Scan(&r.ID, &r.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return &r, nil
}

// ListReviews возвращает отзывы, новые первыми.
func (s *Storage) ListReviews(ctx context.Context) ([]*models.Review, error) {
	const op = "storage.ListReviews"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, user_uid, user_name, rating, comment, created_at
			  FROM reviews ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Review, 0)
	for rows.Next() {
		var r models.Review
		if err = rows.Scan(&r.ID, &r.UserUID, &r.UserName, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
