package vip_combo_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	vipComboSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/vip_combo_slots"
)

// VipComboSlotsRequest HTTP request model
type VipComboSlotsRequest struct {
	ServicesWithAddons   []ServiceWithAddon `json:"servicesWithAddons"`
	Date                 string             `json:"date"` // "2025-11-03"
	SelectedTechnicianID *int64             `json:"selectedTechnicianId,omitempty"`
	SelectedServiceID    *int64             `json:"selectedServiceId,omitempty"`
}

// ServiceWithAddon выбранная услуга с опциональной длительностью
type ServiceWithAddon struct {
	ID              int64 `json:"id"`
	DurationMinutes *int  `json:"duration,omitempty"`
}

// VipComboSlotsResponse HTTP response model.
// Невыполнимый запрос - обычный 200: slots пуст, unassignableServiceIds
// перечисляет услуги без квалифицированных мастеров.
type VipComboSlotsResponse struct {
	Date                   string  `json:"date"`
	Slots                  []Slot  `json:"slots"`
	Truncated              bool    `json:"truncated"`
	UnassignableServiceIDs []int64 `json:"unassignableServiceIds,omitempty"`
}

// Slot кандидат VIP-слота: две услуги с общим временем начала
type Slot struct {
	StartTime string              `json:"startTime"`
	Available bool                `json:"available"`
	Services  []ServiceAssignment `json:"services"`
}

// ServiceAssignment назначение мастера на услугу
type ServiceAssignment struct {
	ServiceID int64  `json:"serviceId"`
	StaffID   int64  `json:"staffId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *VipComboSlotsRequest) ToUseCaseRequest() (*vipComboSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	services := make([]vipComboSlots.ServiceWithAddon, len(r.ServicesWithAddons))
	for i, svc := range r.ServicesWithAddons {
		services[i] = vipComboSlots.ServiceWithAddon{
			ID:              svc.ID,
			DurationMinutes: svc.DurationMinutes,
		}
	}

	return &vipComboSlots.Request{
		Services:             services,
		Date:                 date,
		SelectedTechnicianID: r.SelectedTechnicianID,
		SelectedServiceID:    r.SelectedServiceID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *vipComboSlots.Response) *VipComboSlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		services := make([]ServiceAssignment, len(slot.Services))
		for j, a := range slot.Services {
			services[j] = ServiceAssignment{
				ServiceID: a.ServiceID,
				StaffID:   a.StaffID,
				StartTime: a.StartTime.String(),
				EndTime:   a.EndTime.String(),
			}
		}
		slots[i] = Slot{
			StartTime: slot.StartTime.String(),
			Available: slot.Available,
			Services:  services,
		}
	}

	return &VipComboSlotsResponse{
		Date:                   resp.Date.Format(domain.DateFormat),
		Slots:                  slots,
		Truncated:              resp.Truncated,
		UnassignableServiceIDs: resp.UnassignableServiceIDs,
	}
}
