// Package auth содержит логику регистрации, входа и проверки JWT посетителей зала.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-manager/internal/config"
	"github.com/magabrotheeeer/gym-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-manager/internal/lib/password"
	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/storage/repository"
)

const (
	defaultExperienceLevel = "Beginner"
	usernameAttempts       = 5
)

var (
	// ErrInvalidCredentials неверный email или пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUsernameTaken имя пользователя занято.
	ErrUsernameTaken = errors.New("username already taken")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его ID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByUsername возвращает пользователя по имени.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service отвечает за регистрацию, авторизацию и валидацию JWT.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
	now      func() time.Time
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
		now:      time.Now,
	}
}

// ageAt возвращает полное число лет на дату now.
func ageAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

func (s *Service) exists(ctx context.Context, lookup func(context.Context, string) (*models.User, error), key string) (bool, error) {
	_, err := lookup(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// derivedUsername подбирает свободное имя на основе локальной части email.
// При коллизии к имени добавляется короткий случайный суффикс.
func (s *Service) derivedUsername(ctx context.Context, email string) (string, error) {
	base, _, _ := strings.Cut(email, "@")
	candidate := base
	for i := 0; i < usernameAttempts; i++ {
		taken, err := s.exists(ctx, s.users.GetUserByUsername, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + uuid.NewString()[:6]
	}
	return "", ErrUsernameTaken
}

// Register создает пользователя с ролью "user" и возвращает его без хэша пароля.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	const op = "auth.Register"
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.exists(ctx, s.users.GetUserByEmail, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if taken {
		return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	}

	username := req.Username
	if username == "" {
		username, err = s.derivedUsername(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else {
		taken, err = s.exists(ctx, s.users.GetUserByUsername, username)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if taken {
			return nil, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	age := req.Age
	if age == 0 && req.DateOfBirth != nil {
		age = ageAt(*req.DateOfBirth, s.now())
	}
	goals := req.Goals
	if goals == nil {
		goals = []string{}
	}
	user := models.User{
		Name:            req.Name,
		Username:        username,
		Email:           email,
		PasswordHash:    hashed,
		Phone:           req.Phone,
		Age:             age,
		DateOfBirth:     req.DateOfBirth,
		Gender:          req.Gender,
		Weight:          req.Weight,
		Height:          req.Height,
		Goals:           goals,
		ExperienceLevel: req.ExperienceLevel,
		ProfilePic:      req.ProfilePic,
		Role:            models.RoleUser,
	}
	if user.ExperienceLevel == "" {
		user.ExperienceLevel = defaultExperienceLevel
	}

	uid, err := s.users.RegisterUser(ctx, user)
	if errors.Is(err, repository.ErrAlreadyExists) {
		// гонка с параллельной регистрацией
		return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.UUID = uid
	user.PasswordHash = ""
	user.CreatedAt = s.now().UTC()

	s.log.Info("user registered", slog.String("user_uid", uid))
	return &user, nil
}

// Login проверяет пароль пользователя и выдает JWT.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (*models.LoginResult, error) {
	const op = "auth.Login"
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	token, err := s.jwtMaker.GenerateToken(user.Username, user.Role, user.UUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := *user
	out.PasswordHash = ""
	return &models.LoginResult{Token: token, User: &out}, nil
}

// ValidateToken проверяет JWT и возвращает пользователя из claims.
func (s *Service) ValidateToken(_ context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return &models.User{
		UUID:     claims.UserUID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

// EnsureAdmin создает учетную запись администратора, если ее еще нет.
// Пустой email или пароль отключают создание.
func (s *Service) EnsureAdmin(ctx context.Context, cfg config.Admin) error {
	const op = "auth.EnsureAdmin"
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		s.log.Info("admin bootstrap skipped")
		return nil
	}
	email := strings.ToLower(cfg.AdminEmail)
	taken, err := s.exists(ctx, s.users.GetUserByEmail, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if taken {
		return nil
	}

	hashed, err := password.GetHash(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	username, err := s.derivedUsername(ctx, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	uid, err := s.users.RegisterUser(ctx, models.User{
		Name:            cfg.AdminName,
		Username:        username,
		Email:           email,
		PasswordHash:    hashed,
		Goals:           []string{},
		ExperienceLevel: defaultExperienceLevel,
		Role:            models.RoleAdmin,
	})
	if errors.Is(err, repository.ErrAlreadyExists) {
		// email мог занять параллельный запуск, иначе конфликт по username
		taken, lookupErr := s.exists(ctx, s.users.GetUserByEmail, email)
		if lookupErr != nil {
			return fmt.Errorf("%s: %w", op, lookupErr)
		}
		if !taken {
			return fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("admin account already exists", slog.String("email", email))
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("admin account created", slog.String("user_uid", uid))
	return nil
}
