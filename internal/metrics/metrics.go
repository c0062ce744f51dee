// Package metrics регистрирует счетчики Prometheus основных событий сервиса.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingsTotal счетчик успешных бронирований.
	BookingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appointment_bookings_total",
		Help: "Number of successfully booked appointments.",
	})

	// BookingConflictsTotal счетчик бронирований, проигравших гонку за слот.
	BookingConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appointment_booking_conflicts_total",
		Help: "Number of booking attempts rejected because the slot was taken.",
	})

	// CancellationsTotal счетчик отмен.
	CancellationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appointment_cancellations_total",
		Help: "Number of cancelled appointments.",
	})

	// LoginFailuresTotal счетчик неудачных попыток входа.
	LoginFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_login_failures_total",
		Help: "Number of failed login attempts.",
	})

	// LockoutsTotal счетчик сработавших автоматических блокировок.
	LockoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_lockouts_total",
		Help: "Number of accounts locked after repeated failed logins.",
	})
)
