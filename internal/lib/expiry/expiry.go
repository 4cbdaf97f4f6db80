// Package expiry считает даты окончания абонементов: срок плана в днях,
// дату окончания по количеству месяцев и продление действующего абонемента.
package expiry

import (
	"math"
	"time"
)

const day = 24 * time.Hour

const (
	// PlanMonthly тип плана короче года
	PlanMonthly = "monthly"
	// PlanYearly тип плана от 12 месяцев
	PlanYearly = "yearly"
)

// DaySpan возвращает длину периода [start, candidate] в днях с округлением вверх.
// Для candidate раньше start возвращает 0.
func DaySpan(start, candidate time.Time) int {
	d := candidate.Sub(start)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(float64(d) / float64(day)))
}

// PlanEnd дата окончания плана длительностью months календарных месяцев.
func PlanEnd(start time.Time, months int) time.Time {
	return start.AddDate(0, months, 0)
}

// PlanType тип плана по длительности в месяцах.
func PlanType(months int) string {
	if months >= 12 {
		return PlanYearly
	}
	return PlanMonthly
}

// Extend вычисляет итоговую дату окончания абонемента.
//
// Если текущего абонемента нет или он уже закончился (current не позже now),
// возвращается candidate без изменений. Если абонемент еще действует,
// к current прибавляется DaySpan(start, candidate) дней, и extended = true.
func Extend(current *time.Time, start, candidate, now time.Time) (final time.Time, extended bool) {
	if current == nil || !current.After(now) {
		return candidate, false
	}
	return current.Add(time.Duration(DaySpan(start, candidate)) * day), true
}
