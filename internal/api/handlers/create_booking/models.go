package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CreateBookingRequest HTTP request model.
// CustomerID берется из заголовка аутентификации, не из тела.
type CreateBookingRequest struct {
	ServiceIDs           []int64 `json:"serviceIds"`
	Date                 string  `json:"date"`      // "2025-11-03"
	StartTime            string  `json:"startTime"` // "10:00"
	SelectedTechnicianID *int64  `json:"selectedTechnicianId,omitempty"`
	Notes                *string `json:"notes,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	GroupID   *string       `json:"groupId,omitempty"`
	Date      string        `json:"date"`
	StartTime string        `json:"startTime"`
	Bookings  []BookingItem `json:"bookings"`
}

// BookingItem одна созданная запись
type BookingItem struct {
	ID           int64   `json:"id"`
	ServiceID    int64   `json:"serviceId"`
	StaffID      int64   `json:"staffId"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Status       string  `json:"status"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	CreatedAt    string  `json:"createdAt"` // ISO 8601 format
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID:           customerID,
		ServiceIDs:           r.ServiceIDs,
		Date:                 date,
		StartTime:            startTime,
		SelectedTechnicianID: r.SelectedTechnicianID,
		Notes:                r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	bookings := make([]BookingItem, len(resp.Bookings))
	for i, b := range resp.Bookings {
		bookings[i] = BookingItem{
			ID:           b.ID,
			ServiceID:    b.ServiceID,
			StaffID:      b.StaffID,
			StartTime:    b.StartTime.String(),
			EndTime:      b.EndTime.String(),
			Status:       b.Status,
			ServiceName:  b.ServiceName,
			ServicePrice: b.ServicePrice,
			CreatedAt:    b.CreatedAt.Format(time.RFC3339),
		}
	}

	return &CreateBookingResponse{
		GroupID:   resp.GroupID,
		Date:      resp.Date.Format(domain.DateFormat),
		StartTime: resp.StartTime.String(),
		Bookings:  bookings,
	}
}
