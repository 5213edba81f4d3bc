package scheduling

import (
	"testing"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var testDate = time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC) // понедельник

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	if err != nil {
		t.Fatalf("invalid time fixture %q: %v", s, err)
	}
	return v
}

func openDay(t *testing.T, open, close string) domain.DaySchedule {
	t.Helper()
	return domain.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr(ts(t, open)),
		CloseTime: ptr.Ptr(ts(t, close)),
	}
}

func svc(id int64, duration, buffer int) *domain.Service {
	return &domain.Service{
		ID:              id,
		Name:            "service",
		DurationMinutes: duration,
		BufferMinutes:   buffer,
		CategoryID:      1,
		IsActive:        true,
	}
}

func tech(id int64, serviceIDs ...int64) *domain.Staff {
	return &domain.Staff{
		ID:         id,
		Name:       "tech",
		Status:     domain.StaffActive,
		IsBookable: true,
		ServiceIDs: serviceIDs,
	}
}

func busy(t *testing.T, staffID int64, start, end string) *domain.Booking {
	t.Helper()
	return &domain.Booking{
		ID:          1,
		StaffID:     staffID,
		ServiceID:   1,
		BookingDate: testDate,
		StartTime:   ts(t, start),
		EndTime:     ts(t, end),
		Status:      domain.StatusConfirmed,
	}
}

func fixedOptions() Options {
	// Фиксированные часы и отключенный дедлайн - поиск полностью детерминирован
	return Options{
		PermutationCap: domain.MaxPermutationServices,
		Now:            func() time.Time { return testDate },
	}
}

func startTimes(res Result) []string {
	out := make([]string, len(res.Slots))
	for i, s := range res.Slots {
		out[i] = s.StartTime.String()
	}
	return out
}
