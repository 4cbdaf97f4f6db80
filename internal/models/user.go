// Package models содержит доменные структуры зала: пользователей, абонементы,
// историю назначений, напоминания, вопросы, отзывы и дневник питания.
// Структуры используются в бизнес‑логике, хранилище и в JSON-ответах API.
package models

import "time"

const (
	// RoleAdmin роль администратора зала
	RoleAdmin = "admin"
	// RoleUser роль обычного посетителя
	RoleUser = "user"
)

// User представляет зарегистрированного посетителя зала.
type User struct {
	UUID                string     `json:"id"`
	Name                string     `json:"name"`
	Username            string     `json:"username"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	Phone               string     `json:"phone,omitempty"`
	Age                 int        `json:"age,omitempty"`
	DateOfBirth         *time.Time `json:"dateOfBirth,omitempty"`
	Gender              string     `json:"gender,omitempty"`
	Weight              float64    `json:"weight,omitempty"`
	Height              float64    `json:"height,omitempty"`
	Goals               []string   `json:"goals"`
	ExperienceLevel     string     `json:"experienceLevel"`
	ProfilePic          string     `json:"profilePic,omitempty"`
	Role                string     `json:"role"`
	MembershipID        *string    `json:"membershipId"`
	MembershipType      string     `json:"membershipType,omitempty"`
	MembershipStartDate *time.Time `json:"membershipStartDate,omitempty"`
	MembershipExpiry    *time.Time `json:"membershipExpiry"` // nil - активного абонемента нет
	CreatedAt           time.Time  `json:"createdAt"`
}

// IsAdmin сообщает, является ли пользователь администратором.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ProfileUpdate изменяемые пользователем поля профиля.
// Роль и абонемент здесь менять нельзя.
type ProfileUpdate struct {
	Name            *string    `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Phone           *string    `json:"phone,omitempty" validate:"omitempty,max=32"`
	DateOfBirth     *time.Time `json:"dateOfBirth,omitempty"`
	Gender          *string    `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Weight          *float64   `json:"weight,omitempty" validate:"omitempty,gt=0"`
	Height          *float64   `json:"height,omitempty" validate:"omitempty,gt=0"`
	Goals           []string   `json:"goals,omitempty"`
	ExperienceLevel *string    `json:"experienceLevel,omitempty"`
	ProfilePic      *string    `json:"profilePic,omitempty"`
}

// ExpiringMember данные для письма об окончании абонемента.
type ExpiringMember struct {
	UserUID        string    `json:"userId"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	MembershipType string    `json:"membershipType"`
	ExpiryDate     time.Time `json:"expiryDate"`
}

// RegisterRequest входные данные регистрации.
type RegisterRequest struct {
	Name            string     `json:"name" validate:"required,max=100"`
	Email           string     `json:"email" validate:"required,email"`
	Password        string     `json:"password" validate:"required,min=6,max=72"`
	Username        string     `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Phone           string     `json:"phone,omitempty" validate:"omitempty,max=32"`
	Age             int        `json:"age,omitempty" validate:"omitempty,gt=0,lt=150"`
	DateOfBirth     *time.Time `json:"dateOfBirth,omitempty"`
	Gender          string     `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Weight          float64    `json:"weight,omitempty" validate:"omitempty,gt=0"`
	Height          float64    `json:"height,omitempty" validate:"omitempty,gt=0"`
	Goals           []string   `json:"goals,omitempty"`
	ExperienceLevel string     `json:"experienceLevel,omitempty"`
	ProfilePic      string     `json:"profilePic,omitempty"`
}

// LoginRequest входные данные входа.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult токен доступа и профиль пользователя.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
