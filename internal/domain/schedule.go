package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// DaySchedule рабочие часы салона на один день недели
type DaySchedule struct {
	IsOpen    bool
	OpenTime  *types.TimeString
	CloseTime *types.TimeString
}

// ScheduleConfig salon-wide scheduling configuration
type ScheduleConfig struct {
	ID                      int64
	SlotStepMinutes         int
	MinBookingNoticeMinutes int
	AdvanceBookingDays      int // 0 = unlimited

	// Week расписание по дням недели, индекс соответствует time.Weekday
	Week [7]DaySchedule

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DayFor возвращает расписание на день недели указанной даты
func (c *ScheduleConfig) DayFor(date time.Time) DaySchedule {
	return c.Week[int(date.Weekday())]
}
