package requires_removal

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
)

const (
	msgMissingCategoryIDs = "параметр categoryIds обязателен"
	msgInvalidCategoryIDs = "некорректный формат categoryIds, ожидается список ID через запятую"
	msgCategoryNotFound   = "категория не найдена"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/categories/requires-removal?categoryIds=1,2
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("categoryIds")
	if raw == "" {
		h.logger.Warn("GET /services/categories/requires-removal - Missing categoryIds")
		handlers.RespondBadRequest(w, msgMissingCategoryIDs)
		return
	}

	categoryIDs, err := parseIDList(raw)
	if err != nil {
		h.logger.Warn("GET /services/categories/requires-removal - Invalid categoryIds: %s", raw)
		handlers.RespondBadRequest(w, msgInvalidCategoryIDs)
		return
	}

	result, err := h.service.CheckRequiresRemoval(r.Context(), &models.CheckRequiresRemovalRequest{
		CategoryIDs: categoryIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrCategoryNotFound):
			h.logger.Warn("GET /services/categories/requires-removal - Category not found: categoryIds=%v", categoryIDs)
			handlers.RespondNotFound(w, msgCategoryNotFound)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("GET /services/categories/requires-removal - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /services/categories/requires-removal - Failed to check: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/categories/requires-removal - Checked: categoryIds=%v, requiresRemoval=%v",
		categoryIDs, result.RequiresRemoval)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseIDList разбирает список ID через запятую: "1,2,3"
func parseIDList(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
