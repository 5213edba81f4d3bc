package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Сценарий из постановки: услуга 30 минут без buffer, единственный мастер
// занят 10:00-10:30. Слот 10:00 исключается, 10:30 остается.
func TestFindSingleServiceSlotsExcludesBookedWindow(t *testing.T) {
	serviceA := svc(1, 30, 0)
	snap := NewSnapshot(
		testDate,
		openDay(t, "09:00", "12:00"),
		30,
		[]*domain.Service{serviceA},
		[]*domain.Staff{tech(1, 1)},
		[]*domain.Booking{busy(t, 1, "10:00", "10:30")},
	)

	res := FindSingleServiceSlots(snap, serviceA, fixedOptions())

	require.True(t, res.Feasible())
	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, startTimes(res))
}

func TestFindSingleServiceSlotsBufferExtendsOccupancy(t *testing.T) {
	// 30 минут работы + 15 минут buffer: мастер занят до 10:45,
	// слот 10:30 конфликтует с бронированием 10:40-11:00
	serviceA := svc(1, 30, 15)
	snap := NewSnapshot(
		testDate,
		openDay(t, "10:00", "12:00"),
		30,
		[]*domain.Service{serviceA},
		[]*domain.Staff{tech(1, 1)},
		[]*domain.Booking{busy(t, 1, "10:40", "11:00")},
	)

	res := FindSingleServiceSlots(snap, serviceA, fixedOptions())

	assert.Equal(t, []string{"11:00"}, startTimes(res))
}

func TestFindSingleServiceSlotsStaffPick(t *testing.T) {
	serviceA := svc(1, 30, 0)
	staff := []*domain.Staff{tech(2, 1), tech(1, 1)}

	t.Run("deterministic lowest id wins", func(t *testing.T) {
		snap := NewSnapshot(testDate, openDay(t, "09:00", "10:00"), 30,
			[]*domain.Service{serviceA}, staff, nil)

		res := FindSingleServiceSlots(snap, serviceA, fixedOptions())

		require.Len(t, res.Slots, 2)
		assert.Equal(t, int64(1), res.Slots[0].Assignments[0].StaffID)
	})

	t.Run("preference wins when free", func(t *testing.T) {
		snap := NewSnapshot(testDate, openDay(t, "09:00", "10:00"), 30,
			[]*domain.Service{serviceA}, staff, nil)

		opts := fixedOptions()
		opts.Preference = &Preference{StaffID: 2}
		res := FindSingleServiceSlots(snap, serviceA, opts)

		require.Len(t, res.Slots, 2)
		assert.Equal(t, int64(2), res.Slots[0].Assignments[0].StaffID)
	})

	t.Run("busy preference falls back to first free", func(t *testing.T) {
		snap := NewSnapshot(testDate, openDay(t, "09:00", "10:00"), 30,
			[]*domain.Service{serviceA}, staff,
			[]*domain.Booking{busy(t, 2, "09:00", "09:30")})

		opts := fixedOptions()
		opts.Preference = &Preference{StaffID: 2}
		res := FindSingleServiceSlots(snap, serviceA, opts)

		require.Len(t, res.Slots, 2)
		assert.Equal(t, int64(1), res.Slots[0].Assignments[0].StaffID)
		assert.Equal(t, int64(2), res.Slots[1].Assignments[0].StaffID)
	})
}

func TestFindSingleServiceSlotsNoQualifiedStaff(t *testing.T) {
	serviceA := svc(1, 30, 0)
	// Мастер есть, но квалифицирован на другую услугу
	snap := NewSnapshot(testDate, openDay(t, "09:00", "12:00"), 30,
		[]*domain.Service{serviceA}, []*domain.Staff{tech(1, 2)}, nil)

	res := FindSingleServiceSlots(snap, serviceA, fixedOptions())

	assert.False(t, res.Feasible())
	assert.Equal(t, []int64{1}, res.UnassignableServiceIDs)
	assert.Empty(t, res.Slots)
}

func TestFindSingleServiceSlotsStaffFallback(t *testing.T) {
	serviceA := svc(1, 30, 0)
	snap := NewSnapshot(testDate, openDay(t, "09:00", "10:00"), 30,
		[]*domain.Service{serviceA}, []*domain.Staff{tech(1, 2)}, nil)

	opts := fixedOptions()
	opts.StaffFallback = true
	res := FindSingleServiceSlots(snap, serviceA, opts)

	// Аварийный режим: неквалифицированный мастер попадает в кандидаты
	require.True(t, res.Feasible())
	assert.Equal(t, []string{"09:00", "09:30"}, startTimes(res))
}

func TestFindSingleServiceSlotsInactiveBookingFreesWindow(t *testing.T) {
	serviceA := svc(1, 30, 0)
	cancelled := busy(t, 1, "09:00", "09:30")
	cancelled.Status = domain.StatusCancelled

	snap := NewSnapshot(testDate, openDay(t, "09:00", "10:00"), 30,
		[]*domain.Service{serviceA}, []*domain.Staff{tech(1, 1)},
		[]*domain.Booking{cancelled})

	res := FindSingleServiceSlots(snap, serviceA, fixedOptions())

	assert.Equal(t, []string{"09:00", "09:30"}, startTimes(res))
}

func TestFindSingleServiceSlotsBudgetTruncation(t *testing.T) {
	serviceA := svc(1, 30, 0)
	snap := NewSnapshot(testDate, openDay(t, "09:00", "18:00"), 30,
		[]*domain.Service{serviceA}, []*domain.Staff{tech(1, 1)}, nil)

	opts := fixedOptions()
	opts.Deadline = testDate.Add(-time.Second)
	opts.Now = func() time.Time { return testDate }
	res := FindSingleServiceSlots(snap, serviceA, opts)

	assert.True(t, res.Truncated)
	assert.Empty(t, res.Slots)
}

func TestFindSingleServiceSlotsQualifiedStaffOnly(t *testing.T) {
	// Свойство: мастер каждого выданного слота квалифицирован и свободен
	serviceA := svc(1, 45, 5)
	staff := []*domain.Staff{tech(1, 2), tech(2, 1), tech(3, 1)}
	bookings := []*domain.Booking{
		busy(t, 2, "09:00", "11:00"),
		busy(t, 3, "10:00", "10:30"),
	}
	snap := NewSnapshot(testDate, openDay(t, "09:00", "13:00"), 15,
		[]*domain.Service{serviceA}, staff, bookings)

	res := FindSingleServiceSlots(snap, serviceA, fixedOptions())

	require.NotEmpty(t, res.Slots)
	for _, slot := range res.Slots {
		require.Len(t, slot.Assignments, 1)
		a := slot.Assignments[0]
		assert.Contains(t, []int64{2, 3}, a.StaffID, "slot %s", slot.StartTime)

		startMin, err := a.StartTime.Minutes()
		require.NoError(t, err)
		endMin, err := a.EndTime.Minutes()
		require.NoError(t, err)
		assert.Equal(t, serviceA.TotalMinutes(), endMin-startMin)
		assert.True(t, snap.StaffFree(a.StaffID, startMin, endMin))
	}
}
