package models

import "time"

// DateLayout формат даты дневника питания.
const DateLayout = "2006-01-02"

// Food продукт в дневнике питания, значения на порцию.
type Food struct {
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Protein  float64 `json:"protein" validate:"gte=0"`
	Calories float64 `json:"calories" validate:"gte=0"`
	Fat      float64 `json:"fat" validate:"gte=0"`
	Carbs    float64 `json:"carbs" validate:"gte=0"`
	Fiber    float64 `json:"fiber" validate:"gte=0"`
	Sugar    float64 `json:"sugar" validate:"gte=0"`
}

// Diet план питания пользователя на день.
type Diet struct {
	ID        string    `json:"id,omitempty"`
	UserUID   string    `json:"userId"`
	Date      string    `json:"date"`
	Foods     []Food    `json:"dietPlan"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Targets дневные нормы нутриентов.
type Targets struct {
	Protein  float64 `json:"protein" validate:"gte=0"`
	Calories float64 `json:"calories" validate:"gte=0"`
	Fat      float64 `json:"fat" validate:"gte=0"`
	Carbs    float64 `json:"carbs" validate:"gte=0"`
	Fiber    float64 `json:"fiber" validate:"gte=0"`
	Sugar    float64 `json:"sugar" validate:"gte=0"`
}

// DefaultTargets нормы для пользователя, который их еще не задал.
func DefaultTargets() Targets {
	return Targets{
		Protein:  150,
		Calories: 2500,
		Fat:      80,
		Carbs:    300,
		Fiber:    25,
		Sugar:    50,
	}
}
