package multi_service_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	multiServiceSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/multi_service_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound    = "услуга не найдена"
	msgNestedCombo        = "комбо-услуга не может содержать другое комбо"
	msgTooManyServices    = "слишком много услуг в одном запросе"
	msgInvalidBookingDate = "некорректная дата"
	msgDateTooFar         = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase MultiServiceSlotsUseCase
	logger  Logger
}

func NewHandler(useCase MultiServiceSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/multi-service-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req MultiServiceSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/multi-service-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/multi-service-slots - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, multiServiceSlots.ErrServiceNotFound):
			h.logger.Warn("POST /bookings/multi-service-slots - Service not found")
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, multiServiceSlots.ErrNestedCombo):
			h.logger.Warn("POST /bookings/multi-service-slots - Nested combo rejected")
			handlers.RespondBadRequest(w, msgNestedCombo)

		case errors.Is(err, multiServiceSlots.ErrTooManyServices):
			h.logger.Warn("POST /bookings/multi-service-slots - Too many services: count=%d", len(req.ServicesWithAddons))
			handlers.RespondBadRequest(w, msgTooManyServices)

		case errors.Is(err, multiServiceSlots.ErrInvalidDate):
			h.logger.Warn("POST /bookings/multi-service-slots - Invalid date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, multiServiceSlots.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings/multi-service-slots - Date too far in future: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, multiServiceSlots.ErrInvalidInput):
			h.logger.Warn("POST /bookings/multi-service-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings/multi-service-slots - Failed to find slots: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings/multi-service-slots - Slots retrieved: services=%d, date=%s, slots=%d",
		len(req.ServicesWithAddons), req.Date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
