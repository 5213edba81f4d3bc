package multi_service_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	configRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/config"
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
	err error
}

func (m *mockScheduleRepo) Get(_ context.Context) (*domain.ScheduleConfig, error) {
	if m.err != nil {
		return nil, m.err
	}
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

// testSchedule понедельник открыт 09:00-11:00, остальные дни закрыты
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
		CloseTime: ptr.Ptr(ts(t, "11:00")),
	}
	return cfg
}

func newTestUseCase(
	bookings []*domain.Booking,
	services []*domain.Service,
	staff []*domain.Staff,
	schedule *mockScheduleRepo,
	now time.Time,
) *UseCase {
	uc := NewUseCase(
		&mockBookingRepo{bookings: bookings},
		&mockCatalogRepo{services: services},
		&mockStaffRepo{staff: staff},
		schedule,
		Settings{SearchBudget: domain.DefaultSearchBudget},
		noopLogger{},
	)
	uc.timeProvider = fixedClock{t: now}
	return uc
}

func slotStarts(resp *Response) []string {
	out := make([]string, len(resp.Slots))
	for i, s := range resp.Slots {
		out[i] = s.StartTime.String()
	}
	return out
}

func TestExecute_ConsecutivePlacement(t *testing.T) {
	services := []*domain.Service{
		{ID: 1, Name: "Маникюр", DurationMinutes: 30, CategoryID: 1, IsActive: true},
		{ID: 2, Name: "Педикюр", DurationMinutes: 30, CategoryID: 1, IsActive: true},
	}
	staff := []*domain.Staff{
		{ID: 1, Name: "Анна", Status: domain.StaffActive, IsBookable: true, ServiceIDs: []int64{1, 2}},
	}
	uc := newTestUseCase(nil, services, staff, &mockScheduleRepo{cfg: testSchedule(t)}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		Services: []ServiceWithAddon{{ID: 1}, {ID: 2}},
		Date:     testDate,
	})
	require.NoError(t, err)

	// Две услуги по 30 минут в окне 09:00-11:00 с шагом 30
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slotStarts(resp))
	require.Len(t, resp.Slots[0].Services, 2)
	assert.True(t, resp.Slots[0].Available)
	assert.Equal(t, "09:00", resp.Slots[0].Services[0].StartTime.String())
	assert.Equal(t, "10:00", resp.Slots[0].Services[1].EndTime.String())
	assert.False(t, resp.Truncated)
}

func TestExecute_BusyStaffShiftsSlots(t *testing.T) {
	services := []*domain.Service{
		{ID: 1, Name: "Маникюр", DurationMinutes: 30, CategoryID: 1, IsActive: true},
		{ID: 2, Name: "Педикюр", DurationMinutes: 30, CategoryID: 1, IsActive: true},
	}
	staff := []*domain.Staff{
		{ID: 1, Name: "Анна", Status: domain.StaffActive, IsBookable: true, ServiceIDs: []int64{1, 2}},
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
	uc := newTestUseCase(bookings, services, staff, &mockScheduleRepo{cfg: testSchedule(t)}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		Services: []ServiceWithAddon{{ID: 1}, {ID: 2}},
		Date:     testDate,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:30", "10:00"}, slotStarts(resp))
}

func TestExecute_DurationOverride(t *testing.T) {
	services := []*domain.Service{
		{ID: 1, Name: "Маникюр", DurationMinutes: 30, CategoryID: 1, IsActive: true},
	}
	staff := []*domain.Staff{
		{ID: 1, Name: "Анна", Status: domain.StaffActive, IsBookable: true, ServiceIDs: []int64{1}},
	}
	uc := newTestUseCase(nil, services, staff, &mockScheduleRepo{cfg: testSchedule(t)}, testNow)

	// С дизайном услуга занимает час вместо тридцати минут
	resp, err := uc.Execute(context.Background(), &Request{
		Services: []ServiceWithAddon{{ID: 1, DurationMinutes: ptr.Ptr(60)}},
		Date:     testDate,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slotStarts(resp))
	assert.Equal(t, "10:00", resp.Slots[0].Services[0].EndTime.String())
}

func TestExecute_ClosedDayReturnsEmpty(t *testing.T) {
	services := []*domain.Service{
		{ID: 1, Name: "Маникюр", DurationMinutes: 30, CategoryID: 1, IsActive: true},
	}
	staff := []*domain.Staff{
		{ID: 1, Name: "Анна", Status: domain.StaffActive, IsBookable: true, ServiceIDs: []int64{1}},
	}
	uc := newTestUseCase(nil, services, staff, &mockScheduleRepo{cfg: testSchedule(t)}, testNow)

	// Вторник в расписании закрыт
	resp, err := uc.Execute(context.Background(), &Request{
		Services: []ServiceWithAddon{{ID: 1}},
		Date:     testDate.AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_MissingScheduleConfigClosesAllDays(t *testing.T) {
	services := []*domain.Service{
		{ID: 1, Name: "Маникюр", DurationMinutes: 30, CategoryID: 1, IsActive: true},
	}
	staff := []*domain.Staff{
		{ID: 1, Name: "Анна", Status: domain.StaffActive, IsBookable: true, ServiceIDs: []int64{1}},
	}
	uc := newTestUseCase(nil, services, staff, &mockScheduleRepo{err: configRepo.ErrConfigNotFound}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		Services: []ServiceWithAddon{{ID: 1}},
		Date:     testDate,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_SameDayNoticeFilter(t *testing.T) {
	services := []*domain.Service{
		{ID: 1, Name: "Маникюр", DurationMinutes: 30, CategoryID: 1, IsActive: true},
	}
	staff := []*domain.Staff{
		{ID: 1, Name: "Анна", Status: domain.StaffActive, IsBookable: true, ServiceIDs: []int64{1}},
	}
	// Запрос на сегодня в 09:30 при уведомлении за час: раньше 10:30 нельзя
	now := time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC)
	uc := newTestUseCase(nil, services, staff, &mockScheduleRepo{cfg: testSchedule(t)}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Services: []ServiceWithAddon{{ID: 1}},
		Date:     testDate,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:30"}, slotStarts(resp))
}

func TestExecute_UnknownServiceRejected(t *testing.T) {
	uc := newTestUseCase(nil, nil, nil, &mockScheduleRepo{cfg: testSchedule(t)}, testNow)

	_, err := uc.Execute(context.Background(), &Request{
		Services: []ServiceWithAddon{{ID: 99}},
		Date:     testDate,
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_NoQualifiedStaff(t *testing.T) {
	services := []*domain.Service{
		{ID: 1, Name: "Маникюр", DurationMinutes: 30, CategoryID: 1, IsActive: true},
		{ID: 2, Name: "Педикюр", DurationMinutes: 30, CategoryID: 1, IsActive: true},
	}
	staff := []*domain.Staff{
		{ID: 1, Name: "Анна", Status: domain.StaffActive, IsBookable: true, ServiceIDs: []int64{1}},
	}
	uc := newTestUseCase(nil, services, staff, &mockScheduleRepo{cfg: testSchedule(t)}, testNow)

	// Педикюр некому выполнять: обычный пустой ответ, не ошибка
	resp, err := uc.Execute(context.Background(), &Request{
		Services: []ServiceWithAddon{{ID: 1}, {ID: 2}},
		Date:     testDate,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, []int64{2}, resp.UnassignableServiceIDs)
}

func TestExecute_ComboExpansion(t *testing.T) {
	services := []*domain.Service{
		{ID: 1, Name: "Маникюр", DurationMinutes: 30, CategoryID: 1, IsActive: true},
		{ID: 2, Name: "Педикюр", DurationMinutes: 30, CategoryID: 1, IsActive: true},
		{ID: 10, Name: "Комбо", DurationMinutes: 0, CategoryID: 1, IsActive: true, AssociatedServiceIDs: []int64{1, 2}},
	}
	staff := []*domain.Staff{
		{ID: 1, Name: "Анна", Status: domain.StaffActive, IsBookable: true, ServiceIDs: []int64{1, 2}},
	}
	uc := newTestUseCase(nil, services, staff, &mockScheduleRepo{cfg: testSchedule(t)}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		Services: []ServiceWithAddon{{ID: 10}},
		Date:     testDate,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	// Комбо раскрыто в две элементарные услуги
	assert.Len(t, resp.Slots[0].Services, 2)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(nil, nil, nil, &mockScheduleRepo{cfg: testSchedule(t)}, testNow)

	t.Run("empty services", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{Date: testDate})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("too many services", func(t *testing.T) {
		many := make([]ServiceWithAddon, domain.MaxRequestedServices+1)
		for i := range many {
			many[i] = ServiceWithAddon{ID: int64(i + 1)}
		}
		_, err := uc.Execute(context.Background(), &Request{Services: many, Date: testDate})
		assert.ErrorIs(t, err, ErrTooManyServices)
	})

	t.Run("past date", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			Services: []ServiceWithAddon{{ID: 1}},
			Date:     testNow.AddDate(0, 0, -1),
		})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}
