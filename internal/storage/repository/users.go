package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

const userColumns = `uid, name, username, email, password_hash, phone, age, date_of_birth,
			      gender, weight, height, goals, experience_level, profile_pic, role,
			      membership_id, membership_type, membership_start_date, membership_expiry, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u                      models.User
		dob, startDate, expiry sql.NullTime
		membershipID           sql.NullString
		goals                  []byte
	)
	if err := row.Scan(&u.UUID, &u.Name, &u.Username, &u.Email, &u.PasswordHash, &u.Phone, &u.Age, &dob,
		&u.Gender, &u.Weight, &u.Height, &goals, &u.ExperienceLevel, &u.ProfilePic, &u.Role,
		&membershipID, &u.MembershipType, &startDate, &expiry, &u.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(goals, &u.Goals); err != nil {
		return nil, fmt.Errorf("decode goals: %w", err)
	}
	if dob.Valid {
		u.DateOfBirth = &dob.Time
	}
	if membershipID.Valid {
		u.MembershipID = &membershipID.String
	}
	if startDate.Valid {
		u.MembershipStartDate = &startDate.Time
	}
	if expiry.Valid {
		u.MembershipExpiry = &expiry.Time
	}
	return &u, nil
}

// RegisterUser сохраняет нового пользователя и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	goals, err := json.Marshal(nonNil(user.Goals))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var newID string
	query := `INSERT INTO users (name, username, email, password_hash, phone, age, date_of_birth,
			      gender, weight, height, goals, experience_level, profile_pic, role)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Name, user.Username, user.Email, user.PasswordHash, user.Phone, user.Age, user.DateOfBirth,
		user.Gender, user.Weight, user.Height, string(goals), user.ExperienceLevel, user.ProfilePic,
		user.Role).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, mapError(err))
	}
	return newID, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	u, err := scanUser(s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE uid = $1`, userUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по e-mail.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	u, err := scanUser(s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return u, nil
}

// GetUserByUsername возвращает пользователя по username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	u, err := scanUser(s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return u, nil
}

// ListUsers возвращает всех пользователей, новые первыми.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateProfile сохраняет поля профиля пользователя.
func (s *Storage) UpdateProfile(ctx context.Context, user models.User) error {
	const op = "storage.UpdateProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	goals, err := json.Marshal(nonNil(user.Goals))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	query := `UPDATE users
			  SET name = $1, phone = $2, age = $3, date_of_birth = $4, gender = $5,
			      weight = $6, height = $7, goals = $8, experience_level = $9, profile_pic = $10
			  WHERE uid = $11`
	res, err := s.DB.ExecContext(ctx, query,
		user.Name, user.Phone, user.Age, user.DateOfBirth, user.Gender,
		user.Weight, user.Height, string(goals), user.ExperienceLevel, user.ProfilePic, user.UUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = affectedOrNotFound(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// FindMembershipsExpiringBetween находит пользователей, чей абонемент заканчивается в [from, to).
func (s *Storage) FindMembershipsExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.ExpiringMember, error) {
	const op = "storage.FindMembershipsExpiringBetween"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, name, membership_type, membership_expiry
			  FROM users
			  WHERE membership_expiry >= $1 AND membership_expiry < $2
			  ORDER BY membership_expiry`
	rows, err := s.DB.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ExpiringMember
	for rows.Next() {
		var m models.ExpiringMember
		if err = rows.Scan(&m.UserUID, &m.Email, &m.Name, &m.MembershipType, &m.ExpiryDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
