package verify_slot

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	verifySlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/verify_slot"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// VerifySlotRequest HTTP request model
type VerifySlotRequest struct {
	ServiceIDs           []int64 `json:"serviceIds"`
	Date                 string  `json:"date"`      // "2025-11-03"
	StartTime            string  `json:"startTime"` // "10:00"
	SelectedTechnicianID *int64  `json:"selectedTechnicianId,omitempty"`
}

// VerifySlotResponse HTTP response model.
// Невыполнимый запрос - обычный 200: available=false,
// unassignableServiceIds перечисляет услуги без квалифицированных мастеров.
type VerifySlotResponse struct {
	Available              bool                `json:"available"`
	Assignments            []ServiceAssignment `json:"assignments"`
	Truncated              bool                `json:"truncated"`
	UnassignableServiceIDs []int64             `json:"unassignableServiceIds,omitempty"`
}

// ServiceAssignment назначение мастера на услугу
type ServiceAssignment struct {
	ServiceID int64  `json:"serviceId"`
	StaffID   int64  `json:"staffId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *VerifySlotRequest) ToUseCaseRequest() (*verifySlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &verifySlot.Request{
		ServiceIDs:           r.ServiceIDs,
		Date:                 date,
		StartTime:            startTime,
		SelectedTechnicianID: r.SelectedTechnicianID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *verifySlot.Response) *VerifySlotResponse {
	assignments := make([]ServiceAssignment, len(resp.Assignments))
	for i, a := range resp.Assignments {
		assignments[i] = ServiceAssignment{
			ServiceID: a.ServiceID,
			StaffID:   a.StaffID,
			StartTime: a.StartTime.String(),
			EndTime:   a.EndTime.String(),
		}
	}

	return &VerifySlotResponse{
		Available:              resp.Available,
		Assignments:            assignments,
		Truncated:              resp.Truncated,
		UnassignableServiceIDs: resp.UnassignableServiceIDs,
	}
}
