package combo_eligible_check

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
)

type CatalogService interface {
	CheckComboEligible(ctx context.Context, req *models.CheckComboEligibleRequest) (*models.CheckComboEligibleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
