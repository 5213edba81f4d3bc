package catalog

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetServicesByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error)
	GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error)
	GetIncompatibilities(ctx context.Context) ([]*domain.CategoryIncompatibility, error)
	GetComboEligibleRules(ctx context.Context) ([]*domain.ComboEligibleRule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
