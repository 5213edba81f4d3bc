package domain

import "time"

// Default configuration values
const (
	DefaultSlotStepMinutes         = 30
	DefaultMinBookingNoticeMinutes = 60 // 1 hour
	DefaultAdvanceBookingDays      = 0  // 0 = unlimited
	DefaultSearchBudget            = 500 * time.Millisecond
)

// Search bounds
const (
	// MaxPermutationServices предел числа элементарных услуг, для которого
	// перебираются все перестановки. Выше предела поиск идет только по
	// каноническому порядку, а ответ помечается truncated.
	MaxPermutationServices = 6

	// VipComboServices VIP-комбо определено ровно для двух услуг
	VipComboServices = 2
)

// Business validation constants
const (
	MinSlotStepMinutes          = 5
	MaxSlotStepMinutes          = 120
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxRequestedServices        = 10
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, не занимающие время мастера.
// Используются при фильтрации бронирований для расчета доступности.
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses статусы, занимающие время мастера
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
