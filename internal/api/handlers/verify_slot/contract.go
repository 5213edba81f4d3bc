package verify_slot

import (
	"context"

	verifySlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/verify_slot"
)

type VerifySlotUseCase interface {
	Execute(ctx context.Context, req *verifySlot.Request) (*verifySlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
