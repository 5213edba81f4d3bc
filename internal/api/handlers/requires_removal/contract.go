package requires_removal

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
)

type CatalogService interface {
	CheckRequiresRemoval(ctx context.Context, req *models.CheckRequiresRemovalRequest) (*models.CheckRequiresRemovalResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
