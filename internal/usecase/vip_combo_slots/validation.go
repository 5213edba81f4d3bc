package vip_combo_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if len(req.Services) == 0 {
		return fmt.Errorf("%w: services must not be empty", ErrInvalidInput)
	}

	// Больше двух позиций не имеет смысла даже до раскрытия комбо
	if len(req.Services) > domain.VipComboServices {
		return ErrExactlyTwoServices
	}

	for i, svc := range req.Services {
		if svc.ID <= 0 {
			return fmt.Errorf("%w: services[%d].id must be positive", ErrInvalidInput, i)
		}
		if svc.DurationMinutes != nil && *svc.DurationMinutes <= 0 {
			return fmt.Errorf("%w: services[%d].duration must be positive", ErrInvalidInput, i)
		}
	}

	if req.SelectedTechnicianID != nil && *req.SelectedTechnicianID <= 0 {
		return fmt.Errorf("%w: selectedTechnicianId must be positive", ErrInvalidInput)
	}

	// Пин на услугу без указания мастера бессмыслен
	if req.SelectedServiceID != nil && req.SelectedTechnicianID == nil {
		return fmt.Errorf("%w: selectedServiceId requires selectedTechnicianId", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, requestDate.Location())

	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
