package category_incompatibilities

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
)

type CatalogService interface {
	CheckIncompatibilities(ctx context.Context, req *models.CheckIncompatibilitiesRequest) (*models.CheckIncompatibilitiesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
