package models

import "time"

const (
	// PriorityNormal приоритет напоминания по умолчанию
	PriorityNormal = "normal"
	// ReminderTypeMembershipExpiry напоминание об окончании абонемента
	ReminderTypeMembershipExpiry = "membership_expiry"
	// SystemName имя отправителя, если автора найти не удалось
	SystemName = "System"
	// UnknownUserName имя получателя, если пользователя найти не удалось
	UnknownUserName = "Unknown User"
)

// BroadcastReminder сообщение администратора для всех пользователей.
// UserCount - размер списка пользователей на момент рассылки.
type BroadcastReminder struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Message       string     `json:"message"`
	Priority      string     `json:"priority"`
	SentAt        time.Time  `json:"sentAt"`
	ExpiryDate    time.Time  `json:"expiryDate"`
	UserCount     int        `json:"userCount"`
	CreatedBy     string     `json:"createdBy"`
	CreatedByName string     `json:"createdByName"`
	IsBroadcast   bool       `json:"isBroadcast"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// Reminder персональное напоминание: копия рассылки или адресное сообщение.
// BroadcastID только ссылка, удаление рассылки копии не затрагивает.
type Reminder struct {
	ID            string     `json:"id"`
	UserUID       string     `json:"userId"`
	UserName      string     `json:"userName"`
	Type          string     `json:"type"`
	Message       string     `json:"message"`
	Priority      string     `json:"priority"`
	SentAt        time.Time  `json:"sentAt"`
	ExpiryDate    time.Time  `json:"expiryDate"`
	Read          bool       `json:"read"`
	CreatedBy     string     `json:"createdBy"`
	CreatedByName string     `json:"createdByName"`
	BroadcastID   *string    `json:"broadcastId,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// BroadcastRequest входные данные рассылки.
type BroadcastRequest struct {
	Type       string `json:"type" validate:"required"`
	Message    string `json:"message" validate:"required"`
	Priority   string `json:"priority,omitempty" validate:"omitempty,oneof=low normal high urgent"`
	ExpiryDays int    `json:"expiryDays,omitempty" validate:"omitempty,gt=0,lte=365"`
	CreatedBy  string `json:"createdBy,omitempty"`
}

// BroadcastUpdate частичное изменение рассылки.
type BroadcastUpdate struct {
	Type       *string `json:"type,omitempty" validate:"omitempty,min=1"`
	Message    *string `json:"message,omitempty" validate:"omitempty,min=1"`
	Priority   *string `json:"priority,omitempty" validate:"omitempty,oneof=low normal high urgent"`
	ExpiryDays *int    `json:"expiryDays,omitempty" validate:"omitempty,gt=0,lte=365"`
}

// BroadcastResult ответ на создание рассылки.
type BroadcastResult struct {
	Message           string            `json:"message"`
	BroadcastReminder BroadcastReminder `json:"broadcastReminder"`
	UserCount         int               `json:"userCount"`
}

// ReminderRequest входные данные адресного напоминания.
type ReminderRequest struct {
	UserUID    string `json:"userId" validate:"required,uuid"`
	Type       string `json:"type" validate:"required"`
	Message    string `json:"message" validate:"required"`
	Priority   string `json:"priority,omitempty" validate:"omitempty,oneof=low normal high urgent"`
	ExpiryDays int    `json:"expiryDays,omitempty" validate:"omitempty,gt=0,lte=365"`
	CreatedBy  string `json:"createdBy,omitempty"`
}

// ReminderUpdate частичное изменение напоминания.
type ReminderUpdate struct {
	Type       *string `json:"type,omitempty" validate:"omitempty,min=1"`
	Message    *string `json:"message,omitempty" validate:"omitempty,min=1"`
	Priority   *string `json:"priority,omitempty" validate:"omitempty,oneof=low normal high urgent"`
	Read       *bool   `json:"read,omitempty"`
	ExpiryDays *int    `json:"expiryDays,omitempty" validate:"omitempty,gt=0,lte=365"`
}

// SweepResult количество удаленных просроченных записей.
type SweepResult struct {
	Reminders  int `json:"reminders"`
	Broadcasts int `json:"broadcasts"`
}

// MembershipExpiringEvent сообщение в очередь для письма об окончании абонемента.
type MembershipExpiringEvent struct {
	UserUID        string    `json:"userId"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	MembershipType string    `json:"membershipType"`
	ExpiryDate     time.Time `json:"expiryDate"`
	Message        string    `json:"message"`
}
