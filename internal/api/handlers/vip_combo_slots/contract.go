package vip_combo_slots

import (
	"context"

	vipComboSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/vip_combo_slots"
)

type VipComboSlotsUseCase interface {
	Execute(ctx context.Context, req *vipComboSlots.Request) (*vipComboSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
