package verify_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var (
	testNow  = time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC) // воскресенье
	testDate = time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)  // понедельник
)

type mockBookingRepo struct {
	bookings []*domain.Booking
}

func (m *mockBookingRepo) GetByStaffAndDate(_ context.Context, _ domain.StaffBookingsFilter) ([]*domain.Booking, error) {
	return m.bookings, nil
}

type mockCatalogRepo struct {
	services []*domain.Service
}

func (m *mockCatalogRepo) GetActiveServices(_ context.Context) ([]*domain.Service, error) {
	return m.services, nil
}

type mockStaffRepo struct {
	staff []*domain.Staff
}

func (m *mockStaffRepo) GetSchedulable(_ context.Context) ([]*domain.Staff, error) {
	return m.staff, nil
}

type mockScheduleRepo struct {
	cfg *domain.ScheduleConfig
}

func (m *mockScheduleRepo) Get(_ context.Context) (*domain.ScheduleConfig, error) {
	return m.cfg, nil
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	if err != nil {
		t.Fatalf("invalid time fixture %q: %v", s, err)
	}
	return v
}

func testSchedule(t *testing.T) *domain.ScheduleConfig {
	t.Helper()
	cfg := &domain.ScheduleConfig{
		SlotStepMinutes:         30,
		MinBookingNoticeMinutes: 60,
		AdvanceBookingDays:      0,
	}
	cfg.Week[time.Monday] = domain.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr(ts(t, "09:00")),
		CloseTime: ptr.Ptr(ts(t, "12:00")),
	}
	return cfg
}

func newTestUseCase(
	bookings []*domain.Booking,
	services []*domain.Service,
	staff []*domain.Staff,
	now time.Time,
	t *testing.T,
) *UseCase {
	t.Helper()
	uc := NewUseCase(
		&mockBookingRepo{bookings: bookings},
		&mockCatalogRepo{services: services},
		&mockStaffRepo{staff: staff},
		&mockScheduleRepo{cfg: testSchedule(t)},
		Settings{SearchBudget: domain.DefaultSearchBudget},
		noopLogger{},
	)
	uc.timeProvider = fixedClock{t: now}
	return uc
}

func TestExecute_AvailableStart(t *testing.T) {
	services := []*domain.Service{
		{ID: 1, Name: "Маникюр", DurationMinutes: 30, CategoryID: 1, IsActive: true},
		{ID: 2, Name: "Педикюр", DurationMinutes: 30, CategoryID: 1, IsActive: true},
	}
	staff := []*domain.Staff{
		{ID: 1, Name: "Анна", Status: domain.StaffActive, IsBookable: true, ServiceIDs: []int64{1, 2}},
	}
	uc := newTestUseCase(nil, services, staff, testNow, t)

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{1, 2},
		Date:       testDate,
		StartTime:  ts(t, "09:00"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Available)
	require.Len(t, resp.Assignments, 2)
	assert.Equal(t, "09:00", resp.Assignments[0].StartTime.String())
	assert.Equal(t, "10:00", resp.Assignments[1].EndTime.String())
}

func TestExecute_StartAnchoredExactly(t *testing.T) {
	services := []*domain.Service{
		{ID: 1, Name: "Маникюр", DurationMinutes: 30, CategoryID: 1, IsActive: true},
	}
	staff := []*domain.Staff{
		{ID: 1, Name: "Анна", Status: domain.StaffActive, IsBookable: true, ServiceIDs: []int64{1}},
	}
	bookings := []*domain.Booking{
		{
			ID:          1,
			StaffID:     1,
			ServiceID:   1,
			BookingDate: testDate,
			StartTime:   ts(t, "09:00"),
			EndTime:     ts(t, "09:30"),
			Status:      domain.StatusConfirmed,
		},
	}
	uc := newTestUseCase(bookings, services, staff, testNow, t)

	// Мастер свободен с 09:30, но проверяется именно 09:00:
	// сдвиг на соседний слот не допускается
	resp, err := uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{1},
		Date:       testDate,
		StartTime:  ts(t, "09:00"),
	})
	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Empty(t, resp.Assignments)
}

func TestExecute_PermutationRescuesStart(t *testing.T) {
	// Услуга 1 умеет только Анна, услуга 2 - только Вера.
	// Анна занята 09:00-09:30: порядок (1, 2) с 09:00 не размещается,
	// но порядок (2, 1) ставит Веру на 09:00 и Анну на 09:30.
	services := []*domain.Service{
		{ID: 1, Name: "Маникюр", DurationMinutes: 30, CategoryID: 1, IsActive: true},
		{ID: 2, Name: "Педикюр", DurationMinutes: 30, CategoryID: 1, IsActive: true},
	}
	staff := []*domain.Staff{
		{ID: 1, Name: "Анна", Status: domain.StaffActive, IsBookable: true, ServiceIDs: []int64{1}},
		{ID: 2, Name: "Вера", Status: domain.StaffActive, IsBookable: true, ServiceIDs: []int64{2}},
	}
	bookings := []*domain.Booking{
		{
			ID:          1,
			StaffID:     1,
			ServiceID:   1,
			BookingDate: testDate,
			StartTime:   ts(t, "09:00"),
			EndTime:     ts(t, "09:30"),
			Status:      domain.StatusConfirmed,
		},
	}
	uc := newTestUseCase(bookings, services, staff, testNow, t)

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{1, 2},
		Date:       testDate,
		StartTime:  ts(t, "09:00"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Available)
	require.Len(t, resp.Assignments, 2)
	assert.Equal(t, int64(2), resp.Assignments[0].ServiceID)
	assert.Equal(t, int64(2), resp.Assignments[0].StaffID)
	assert.Equal(t, int64(1), resp.Assignments[1].ServiceID)
	assert.Equal(t, "09:30", resp.Assignments[1].StartTime.String())
}

func TestExecute_ClosedDayNotAvailable(t *testing.T) {
	services := []*domain.Service{
		{ID: 1, Name: "Маникюр", DurationMinutes: 30, CategoryID: 1, IsActive: true},
	}
	staff := []*domain.Staff{
		{ID: 1, Name: "Анна", Status: domain.StaffActive, IsBookable: true, ServiceIDs: []int64{1}},
	}
	uc := newTestUseCase(nil, services, staff, testNow, t)

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{1},
		Date:       testDate.AddDate(0, 0, 1), // вторник закрыт
		StartTime:  ts(t, "09:00"),
	})
	require.NoError(t, err)
	assert.False(t, resp.Available)
}

func TestExecute_SameDayNoticeViolation(t *testing.T) {
	services := []*domain.Service{
		{ID: 1, Name: "Маникюр", DurationMinutes: 30, CategoryID: 1, IsActive: true},
	}
	staff := []*domain.Staff{
		{ID: 1, Name: "Анна", Status: domain.StaffActive, IsBookable: true, ServiceIDs: []int64{1}},
	}
	now := time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(nil, services, staff, now, t)

	// 09:30 сегодня при уведомлении за час - слишком поздно
	resp, err := uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{1},
		Date:       testDate,
		StartTime:  ts(t, "09:30"),
	})
	require.NoError(t, err)
	assert.False(t, resp.Available)
}

func TestExecute_NoQualifiedStaff(t *testing.T) {
	services := []*domain.Service{
		{ID: 1, Name: "Маникюр", DurationMinutes: 30, CategoryID: 1, IsActive: true},
	}
	uc := newTestUseCase(nil, services, nil, testNow, t)

	// Услугу некому выполнять: недоступность как значение, не ошибка
	resp, err := uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{1},
		Date:       testDate,
		StartTime:  ts(t, "09:00"),
	})
	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Empty(t, resp.Assignments)
	assert.Equal(t, []int64{1}, resp.UnassignableServiceIDs)
}

func TestExecute_UnknownService(t *testing.T) {
	uc := newTestUseCase(nil, nil, nil, testNow, t)

	_, err := uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{99},
		Date:       testDate,
		StartTime:  ts(t, "09:00"),
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidStartTime(t *testing.T) {
	uc := newTestUseCase(nil, nil, nil, testNow, t)

	_, err := uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{1},
		Date:       testDate,
		StartTime:  types.TimeString("25:99"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
