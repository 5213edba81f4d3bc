package vip_combo_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("service not found")

	// ErrExactlyTwoServices возвращается, когда после раскрытия комбо
	// получилось не ровно две элементарные услуги
	ErrExactlyTwoServices = errors.New("vip combo requires exactly two services")

	// ErrNestedCombo возвращается при вложенных комбо в каталоге
	ErrNestedCombo = errors.New("nested combo services are not allowed")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
