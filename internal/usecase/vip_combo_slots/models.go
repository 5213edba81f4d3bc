package vip_combo_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ServiceWithAddon выбранная услуга с опциональным переопределением длительности
type ServiceWithAddon struct {
	ID              int64 `json:"id"`
	DurationMinutes *int  `json:"duration,omitempty"`
}

// Request модель запроса на VIP-комбо поиск: две услуги одновременно
// у двух разных мастеров
type Request struct {
	Services             []ServiceWithAddon // Ровно две элементарные услуги (после раскрытия комбо)
	Date                 time.Time          // Дата визита
	SelectedTechnicianID *int64             // Пин мастера на одну из услуг
	SelectedServiceID    *int64             // Услуга, за которой закреплен мастер
}

// Settings параметры поиска, приходящие из конфигурации приложения
type Settings struct {
	SearchBudget  time.Duration
	StaffFallback bool
}

// Response модель ответа с VIP-комбо слотами.
// Невыполнимость - значение, не ошибка: при пустом списке квалифицированных
// мастеров Slots пуст, а UnassignableServiceIDs перечисляет услуги,
// которые некому выполнять.
type Response struct {
	Date                   time.Time `json:"date"`
	Slots                  []Slot    `json:"slots"`
	Truncated              bool      `json:"truncated"`
	UnassignableServiceIDs []int64   `json:"unassignableServiceIds,omitempty"`
}

// Slot VIP-комбо слот: ровно два назначения с общим временем начала
// и разными мастерами
type Slot struct {
	StartTime types.TimeString    `json:"startTime"`
	Available bool                `json:"available"`
	Services  []ServiceAssignment `json:"services"`
}

// ServiceAssignment назначение мастера на услугу внутри слота
type ServiceAssignment struct {
	ServiceID int64            `json:"serviceId"`
	StaffID   int64            `json:"staffId"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}
