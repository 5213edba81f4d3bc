package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model.
// Невыполнимый запрос - обычный 200: periods пуст, unassignableServiceIds
// перечисляет услуги без квалифицированных мастеров.
type AvailableSlotsResponse struct {
	Date                   string        `json:"date"`
	ServiceID              int64         `json:"serviceId"`
	Periods                []PeriodGroup `json:"periods"`
	Truncated              bool          `json:"truncated"`
	UnassignableServiceIDs []int64       `json:"unassignableServiceIds,omitempty"`
}

// PeriodGroup группа слотов одного периода дня
type PeriodGroup struct {
	Period string          `json:"period"` // "morning", "afternoon", "evening"
	Slots  []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	StaffID   int64  `json:"staffId"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	periods := make([]PeriodGroup, len(resp.Periods))
	for i, period := range resp.Periods {
		slots := make([]AvailableSlot, len(period.Slots))
		for j, slot := range period.Slots {
			slots[j] = AvailableSlot{
				StartTime: slot.StartTime.String(),
				EndTime:   slot.EndTime.String(),
				StaffID:   slot.StaffID,
			}
		}
		periods[i] = PeriodGroup{Period: period.Period, Slots: slots}
	}

	return &AvailableSlotsResponse{
		Date:                   resp.Date.Format(domain.DateFormat),
		ServiceID:              resp.ServiceID,
		Periods:                periods,
		Truncated:              resp.Truncated,
		UnassignableServiceIDs: resp.UnassignableServiceIDs,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(serviceID int64, dateStr string, staffID *int64) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceID: serviceID,
		Date:      date,
		StaffID:   staffID,
	}, nil
}
