package vip_combo_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	vipComboSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/vip_combo_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound    = "услуга не найдена"
	msgNestedCombo        = "комбо-услуга не может содержать другое комбо"
	msgExactlyTwoServices = "VIP-режим доступен ровно для двух услуг"
	msgInvalidBookingDate = "некорректная дата"
	msgDateTooFar         = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase VipComboSlotsUseCase
	logger  Logger
}

func NewHandler(useCase VipComboSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/vip-combo-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req VipComboSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/vip-combo-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/vip-combo-slots - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, vipComboSlots.ErrServiceNotFound):
			h.logger.Warn("POST /bookings/vip-combo-slots - Service not found")
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, vipComboSlots.ErrExactlyTwoServices):
			h.logger.Warn("POST /bookings/vip-combo-slots - Not exactly two services: count=%d", len(req.ServicesWithAddons))
			handlers.RespondBadRequest(w, msgExactlyTwoServices)

		case errors.Is(err, vipComboSlots.ErrNestedCombo):
			h.logger.Warn("POST /bookings/vip-combo-slots - Nested combo rejected")
			handlers.RespondBadRequest(w, msgNestedCombo)

		case errors.Is(err, vipComboSlots.ErrInvalidDate):
			h.logger.Warn("POST /bookings/vip-combo-slots - Invalid date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, vipComboSlots.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings/vip-combo-slots - Date too far in future: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, vipComboSlots.ErrInvalidInput):
			h.logger.Warn("POST /bookings/vip-combo-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings/vip-combo-slots - Failed to find slots: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings/vip-combo-slots - Slots retrieved: date=%s, slots=%d",
		req.Date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
