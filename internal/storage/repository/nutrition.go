package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// SaveDiet сохраняет план питания пользователя на дату, заменяя существующий.
func (s *Storage) SaveDiet(ctx context.Context, userUID string, date time.Time, foods []models.Food) (*models.Diet, error) {
	const op = "storage.SaveDiet"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	raw, err := json.Marshal(nonNil(foods))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	d := models.Diet{UserUID: userUID, Date: date.Format(models.DateLayout), Foods: nonNil(foods)}
	if err = s.DB.QueryRowContext(ctx, `INSERT INTO diets (user_uid, date, foods)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (user_uid, date) DO UPDATE SET foods = EXCLUDED.foods, updated_at = now()
			  RETURNING id, created_at, updated_at`,
		userUID, date, string(raw)).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return &d, nil
}

// GetDiet возвращает план питания пользователя на дату.
func (s *Storage) GetDiet(ctx context.Context, userUID string, date time.Time) (*models.Diet, error) {
	const op = "storage.GetDiet"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	d := models.Diet{UserUID: userUID, Date: date.Format(models.DateLayout)}
	var raw []byte
	if err := s.DB.QueryRowContext(ctx, `SELECT id, foods, created_at, updated_at
			  FROM diets WHERE user_uid = $1 AND date = $2`, userUID, date).
		Scan(&d.ID, &raw, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	if err := json.Unmarshal(raw, &d.Foods); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &d, nil
}

// SaveTargets сохраняет дневные нормы пользователя.
func (s *Storage) SaveTargets(ctx context.Context, userUID string, t models.Targets) error {
	const op = "storage.SaveTargets"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := s.DB.ExecContext(ctx, `INSERT INTO targets (user_uid, protein, calories, fat, carbs, fiber, sugar)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (user_uid) DO UPDATE SET
			      protein = EXCLUDED.protein, calories = EXCLUDED.calories, fat = EXCLUDED.fat,
			      carbs = EXCLUDED.carbs, fiber = EXCLUDED.fiber, sugar = EXCLUDED.sugar,
			      updated_at = now()`,
		userUID, t.Protein, t.Calories, t.Fat, t.Carbs, t.Fiber, t.Sugar); err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	return nil
}

// GetTargets возвращает дневные нормы пользователя.
func (s *Storage) GetTargets(ctx context.Context, userUID string) (*models.Targets, error) {
	const op = "storage.GetTargets"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var t models.Targets
	if err := s.DB.QueryRowContext(ctx, `SELECT protein, calories, fat, carbs, fiber, sugar
			  FROM targets WHERE user_uid = $1`, userUID).
		Scan(&t.Protein, &t.Calories, &t.Fat, &t.Carbs, &t.Fiber, &t.Sugar); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return &t, nil
}
