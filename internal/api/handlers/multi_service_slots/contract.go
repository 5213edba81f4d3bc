package multi_service_slots

import (
	"context"

	multiServiceSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/multi_service_slots"
)

type MultiServiceSlotsUseCase interface {
	Execute(ctx context.Context, req *multiServiceSlots.Request) (*multiServiceSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
