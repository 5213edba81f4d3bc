package update_booking_status

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model.
// CustomerID берется из заголовка аутентификации, не из тела.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(customerID int64) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		CustomerID: customerID,
		Status:     r.Status,
	}
}
