// Package metrics объявляет счетчики prometheus для назначений абонементов
// и жизненного цикла напоминаний. Метрики отдаются по /metrics через promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// KindFresh новый абонемент
	KindFresh = "fresh"
	// KindExtension продление действующего абонемента
	KindExtension = "extension"
)

var (
	// MembershipAssignments количество назначений абонементов по виду.
	MembershipAssignments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gym",
		Name:      "membership_assignments_total",
		Help:      "Number of membership assignments by kind (fresh or extension).",
	}, []string{"kind"})

	// RemindersFannedOut количество персональных копий, созданных рассылками.
	RemindersFannedOut = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gym",
		Name:      "reminders_fanned_out_total",
		Help:      "Number of individual reminders created from broadcasts.",
	})

	// RemindersSwept количество удаленных просроченных записей по таблице.
	RemindersSwept = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gym",
		Name:      "reminders_swept_total",
		Help:      "Number of expired reminder records deleted by the sweep.",
	}, []string{"collection"})
)

// ObserveAssignment учитывает одно назначение абонемента.
func ObserveAssignment(extended bool) {
	if extended {
		MembershipAssignments.WithLabelValues(KindExtension).Inc()
		return
	}
	MembershipAssignments.WithLabelValues(KindFresh).Inc()
}

// ObserveSweep учитывает результат очистки.
func ObserveSweep(reminders, broadcasts int) {
	RemindersSwept.WithLabelValues("reminders").Add(float64(reminders))
	RemindersSwept.WithLabelValues("broadcast_reminders").Add(float64(broadcasts))
}
