package combo_eligible_check

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
	msgMissingServiceIDs = "параметр serviceIds обязателен"
	msgInvalidServiceIDs = "некорректный формат serviceIds, ожидается список ID через запятую"
	msgServiceNotFound   = "услуга не найдена"
	msgInvalidInput      = "некорректные входные данные"
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

// Handle GET /api/v1/services/combo-eligible/check?serviceIds=1,2
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("serviceIds")
	if raw == "" {
		h.logger.Warn("GET /services/combo-eligible/check - Missing serviceIds")
		handlers.RespondBadRequest(w, msgMissingServiceIDs)
		return
	}

	serviceIDs, err := parseIDList(raw)
	if err != nil {
		h.logger.Warn("GET /services/combo-eligible/check - Invalid serviceIds: %s", raw)
		handlers.RespondBadRequest(w, msgInvalidServiceIDs)
		return
	}

	result, err := h.service.CheckComboEligible(r.Context(), &models.CheckComboEligibleRequest{
		ServiceIDs: serviceIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("GET /services/combo-eligible/check - Service not found: serviceIds=%v", serviceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("GET /services/combo-eligible/check - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /services/combo-eligible/check - Failed to check: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/combo-eligible/check - Checked: serviceIds=%v, eligible=%v",
		serviceIDs, result.IsEligible)
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
