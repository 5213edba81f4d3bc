package verify_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	verifySlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/verify_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени"
	msgServiceNotFound    = "услуга не найдена"
	msgNestedCombo        = "комбо-услуга не может содержать другое комбо"
	msgInvalidBookingDate = "некорректная дата"
	msgDateTooFar         = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase VerifySlotUseCase
	logger  Logger
}

func NewHandler(useCase VerifySlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/verify-slot-with-permutations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req VerifySlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/verify-slot-with-permutations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/verify-slot-with-permutations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, verifySlot.ErrServiceNotFound):
			h.logger.Warn("POST /bookings/verify-slot-with-permutations - Service not found")
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, verifySlot.ErrNestedCombo):
			h.logger.Warn("POST /bookings/verify-slot-with-permutations - Nested combo rejected")
			handlers.RespondBadRequest(w, msgNestedCombo)

		case errors.Is(err, verifySlot.ErrInvalidDate):
			h.logger.Warn("POST /bookings/verify-slot-with-permutations - Invalid date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, verifySlot.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings/verify-slot-with-permutations - Date too far in future: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, verifySlot.ErrInvalidInput):
			h.logger.Warn("POST /bookings/verify-slot-with-permutations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings/verify-slot-with-permutations - Failed to verify slot: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings/verify-slot-with-permutations - Verified: date=%s, start=%s, available=%v",
		req.Date, req.StartTime, result.Available)
	handlers.RespondJSON(w, http.StatusOK, response)
}
