package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// Booking represents a single staff/service assignment in the calendar.
// A multi-service confirmation produces one row per service, tied together
// by GroupID.
type Booking struct {
	ID         int64
	CustomerID int64
	StaffID    int64
	ServiceID  int64
	GroupID    *string // общий идентификатор для услуг одного визита

	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString // конец с учетом buffer
	Status      BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its staff member's time
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsFinished returns true if the booking reached a terminal state
func (b *Booking) IsFinished() bool {
	return b.Status == StatusCompleted || b.Status == StatusNoShow || b.Status == StatusCancelled
}

// CanTransitionTo проверяет допустимость перехода статуса.
// Бронирования никогда не удаляются, только переводятся по статусам.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled || next == StatusNoShow
	case StatusConfirmed:
		return next == StatusInProgress || next == StatusCancelled || next == StatusNoShow
	case StatusInProgress:
		return next == StatusCompleted
	default:
		return false
	}
}

// StaffBookingsFilter фильтр для выборки бронирований под расчет доступности
type StaffBookingsFilter struct {
	Date            time.Time // Обязательный параметр
	StaffIDs        []int64   // Фильтр по мастерам (опционально, если пусто - все)
	Status          *BookingStatus
	IncludeInactive bool // Включать ли отмененные и no-show
}
