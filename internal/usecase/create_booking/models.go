package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание визита.
// Один запрос порождает по одной записи на каждую элементарную услугу,
// связанные общим groupId.
type Request struct {
	CustomerID           int64            // ID клиента
	ServiceIDs           []int64          // Выбранные услуги (комбо раскрываются)
	Date                 time.Time        // Дата визита
	StartTime            types.TimeString // Время начала визита
	SelectedTechnicianID *int64           // Предпочитаемый мастер (мягкое предпочтение)
	Notes                *string          // Дополнительные заметки (опционально)
}

// Settings параметры поиска, приходящие из конфигурации приложения
type Settings struct {
	SearchBudget  time.Duration
	StaffFallback bool
}

// Response модель ответа с созданным визитом
type Response struct {
	GroupID   *string          `json:"groupId,omitempty"`
	Date      time.Time        `json:"date"`
	StartTime types.TimeString `json:"startTime"`
	Bookings  []BookingItem    `json:"bookings"`
}

// BookingItem одна запись визита
type BookingItem struct {
	ID           int64            `json:"id"`
	ServiceID    int64            `json:"serviceId"`
	StaffID      int64            `json:"staffId"`
	StartTime    types.TimeString `json:"startTime"`
	EndTime      types.TimeString `json:"endTime"`
	Status       string           `json:"status"`
	ServiceName  string           `json:"serviceName"`
	ServicePrice float64          `json:"servicePrice"`
	CreatedAt    time.Time        `json:"createdAt"`
}
