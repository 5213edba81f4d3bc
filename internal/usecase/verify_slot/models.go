package verify_slot

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на проверку конкретного времени начала визита.
// Время начала фиксировано: поиск не имеет права сдвинуть его на соседний слот.
type Request struct {
	ServiceIDs           []int64          // Выбранные услуги (комбо раскрываются)
	Date                 time.Time        // Дата визита
	StartTime            types.TimeString // Проверяемое время начала
	SelectedTechnicianID *int64           // Предпочитаемый мастер (мягкое предпочтение)
}

// Settings параметры поиска, приходящие из конфигурации приложения
type Settings struct {
	SearchBudget  time.Duration
	StaffFallback bool
}

// Response результат проверки. Недоступность - значение, не ошибка;
// это касается и невыполнимости: при пустом списке квалифицированных
// мастеров Available=false, а UnassignableServiceIDs перечисляет услуги,
// которые некому выполнять.
type Response struct {
	Available              bool                `json:"available"`
	Assignments            []ServiceAssignment `json:"assignments"`
	Truncated              bool                `json:"truncated"`
	UnassignableServiceIDs []int64             `json:"unassignableServiceIds,omitempty"`
}

// ServiceAssignment назначение мастера на услугу
type ServiceAssignment struct {
	ServiceID int64            `json:"serviceId"`
	StaffID   int64            `json:"staffId"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}
