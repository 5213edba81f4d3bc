package multi_service_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ServiceWithAddon выбранная услуга с опциональным переопределением длительности
// (например, при добавлении дизайна к маникюру)
type ServiceWithAddon struct {
	ID              int64 `json:"id"`
	DurationMinutes *int  `json:"duration,omitempty"`
}

// Request модель запроса на последовательный мульти-сервисный поиск
type Request struct {
	Services             []ServiceWithAddon // Выбранные услуги (комбо раскрываются)
	Date                 time.Time          // Дата визита
	SelectedTechnicianID *int64             // Предпочитаемый мастер (мягкое предпочтение)
	SelectedServiceID    *int64             // Услуга, за которой мастер закреплен жестко (опционально)
}

// Settings параметры поиска, приходящие из конфигурации приложения
type Settings struct {
	SearchBudget  time.Duration
	StaffFallback bool
}

// Response модель ответа с кандидатами слотов.
// Невыполнимость запроса - значение в ответе, не ошибка: при пустом списке
// квалифицированных мастеров Slots пуст, а UnassignableServiceIDs перечисляет
// услуги, которые некому выполнять.
type Response struct {
	Date                   time.Time `json:"date"`
	Slots                  []Slot    `json:"slots"`
	Truncated              bool      `json:"truncated"`
	UnassignableServiceIDs []int64   `json:"unassignableServiceIds,omitempty"`
}

// Slot кандидат слота: общее время начала визита и назначения по услугам
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
