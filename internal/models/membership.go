package models

import "time"

// Membership тарифный план зала. Каталог не меняется после заполнения.
type Membership struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Duration      int       `json:"duration"` // в месяцах
	Price         int       `json:"price"`
	PricePerMonth int       `json:"pricePerMonth"`
	Features      []string  `json:"features"`
	Category      string    `json:"category"`
	Description   string    `json:"description,omitempty"`
	Badge         string    `json:"badge,omitempty"`
	BestFor       string    `json:"bestFor,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Addon дополнительная услуга к абонементу.
type Addon struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Unit        string `json:"unit"`
	Description string `json:"description,omitempty"`
}

// MembershipAssignment запись истории назначений. Только добавляется, не изменяется.
type MembershipAssignment struct {
	ID           string    `json:"id"`
	UserUID      string    `json:"userId"`
	MembershipID string    `json:"membershipId"`
	PlanType     string    `json:"planType"`
	StartDate    time.Time `json:"startDate"`
	ExpiryDate   time.Time `json:"expiryDate"`
	AssignedBy   string    `json:"assignedBy"`
	Addons       []string  `json:"addons"`
	TotalPrice   int       `json:"totalPrice"`
	IsExtension  bool      `json:"isExtension"`
	AssignedAt   time.Time `json:"assignedAt"`
}

// AssignRequest входные данные назначения абонемента.
// ExpiryDate и TotalPrice от клиента необязательны: сервер считает их сам.
type AssignRequest struct {
	UserUID      string     `json:"userId" validate:"required,uuid"`
	MembershipID string     `json:"membershipId" validate:"required,uuid"`
	PlanType     string     `json:"planType,omitempty" validate:"omitempty,oneof=monthly yearly"`
	StartDate    time.Time  `json:"startDate" validate:"required"`
	ExpiryDate   *time.Time `json:"expiryDate,omitempty"`
	AssignedBy   string     `json:"assignedBy,omitempty"`
	Addons       []string   `json:"addons,omitempty"`
	TotalPrice   *int       `json:"totalPrice,omitempty"`
}

// AssignResult результат назначения абонемента.
type AssignResult struct {
	AssignmentID string    `json:"assignmentId"`
	ExpiryDate   time.Time `json:"expiryDate"`
	IsExtension  bool      `json:"isExtension"`
	TotalPrice   int       `json:"totalPrice"`
}

// AssignFunc вычисляет запись назначения по текущему состоянию пользователя.
// Хранилище вызывает ее внутри транзакции, пока строка пользователя заблокирована.
type AssignFunc func(user *User) (MembershipAssignment, error)
