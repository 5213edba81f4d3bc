package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

func TestFindVipComboSlotsInvariants(t *testing.T) {
	serviceA := svc(1, 30, 0)
	serviceB := svc(2, 45, 0)
	staff := []*domain.Staff{tech(1, 1, 2), tech(2, 1, 2)}
	bookings := []*domain.Booking{busy(t, 1, "10:00", "10:30")}

	snap := NewSnapshot(testDate, openDay(t, "09:00", "12:00"), 30,
		[]*domain.Service{serviceA, serviceB}, staff, bookings)

	res := FindVipComboSlots(snap, serviceA, serviceB, fixedOptions())

	require.True(t, res.Feasible())
	require.NotEmpty(t, res.Slots)

	for _, slot := range res.Slots {
		require.Len(t, slot.Assignments, 2)
		a, b := slot.Assignments[0], slot.Assignments[1]
		// Одновременный режим: общий старт, разные мастера
		assert.Equal(t, a.StartTime, b.StartTime, "slot %s", slot.StartTime)
		assert.NotEqual(t, a.StaffID, b.StaffID, "slot %s", slot.StartTime)
	}

	// В 10:00 мастер 1 занят, а двоим услугам нужны два разных человека -
	// из одного свободного мастера пара не собирается
	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00"}, startTimes(res))
}

// Сценарий из постановки: единственный общий мастер на обе услуги -
// VIP-комбо невозможно (нужны два разных человека), последовательный
// режим при этом остается выполнимым.
func TestFindVipComboSlotsSingleSharedStaff(t *testing.T) {
	serviceA := svc(1, 30, 0)
	serviceB := svc(2, 45, 0)
	staff := []*domain.Staff{tech(1, 1, 2)}

	snap := NewSnapshot(testDate, openDay(t, "09:00", "18:00"), 30,
		[]*domain.Service{serviceA, serviceB}, staff, nil)

	vip := FindVipComboSlots(snap, serviceA, serviceB, fixedOptions())
	assert.True(t, vip.Feasible())
	assert.Empty(t, vip.Slots)

	consecutive := FindConsecutiveSlots(snap, []*domain.Service{serviceA, serviceB}, fixedOptions())
	assert.NotEmpty(t, consecutive.Slots)
}

func TestFindVipComboSlotsDifferentEndTimes(t *testing.T) {
	serviceA := svc(1, 30, 0)
	serviceB := svc(2, 60, 15)
	staff := []*domain.Staff{tech(1, 1), tech(2, 2)}

	snap := NewSnapshot(testDate, openDay(t, "09:00", "11:00"), 30,
		[]*domain.Service{serviceA, serviceB}, staff, nil)

	res := FindVipComboSlots(snap, serviceA, serviceB, fixedOptions())

	// Кандидат должен вмещать более длинную услугу: 75 минут
	require.Equal(t, []string{"09:00", "09:30"}, startTimes(res))
	first := res.Slots[0]
	assert.Equal(t, "09:30", first.Assignments[0].EndTime.String())
	assert.Equal(t, "10:15", first.Assignments[1].EndTime.String())
}

func TestFindVipComboSlotsPinnedSide(t *testing.T) {
	serviceA := svc(1, 30, 0)
	serviceB := svc(2, 30, 0)
	staff := []*domain.Staff{tech(1, 1, 2), tech(2, 1, 2), tech(3, 1, 2)}

	snap := NewSnapshot(testDate, openDay(t, "09:00", "10:00"), 30,
		[]*domain.Service{serviceA, serviceB}, staff, nil)

	opts := fixedOptions()
	opts.Preference = &Preference{StaffID: 3, ServiceID: ptr.Ptr(int64(2))}
	res := FindVipComboSlots(snap, serviceA, serviceB, opts)

	require.NotEmpty(t, res.Slots)
	for _, slot := range res.Slots {
		assert.Equal(t, int64(3), slot.Assignments[1].StaffID)
		assert.NotEqual(t, int64(3), slot.Assignments[0].StaffID)
	}
}

func TestFindVipComboSlotsRespectsExistingBookings(t *testing.T) {
	serviceA := svc(1, 30, 0)
	serviceB := svc(2, 30, 0)
	staff := []*domain.Staff{tech(1, 1), tech(2, 2)}
	bookings := []*domain.Booking{
		busy(t, 1, "09:00", "09:30"),
		busy(t, 2, "09:30", "10:00"),
	}

	snap := NewSnapshot(testDate, openDay(t, "09:00", "10:30"), 30,
		[]*domain.Service{serviceA, serviceB}, staff, bookings)

	res := FindVipComboSlots(snap, serviceA, serviceB, fixedOptions())

	// 09:00 блокирует мастер 1, 09:30 - мастер 2, остается 10:00
	assert.Equal(t, []string{"10:00"}, startTimes(res))
}
