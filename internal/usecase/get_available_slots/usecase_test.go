package get_available_slots

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

// testSchedule понедельник открыт 09:00-14:00 с часовой сеткой,
// остальные дни закрыты
func testSchedule(t *testing.T) *domain.ScheduleConfig {
	t.Helper()
	cfg := &domain.ScheduleConfig{
		SlotStepMinutes:         60,
		MinBookingNoticeMinutes: 60,
		AdvanceBookingDays:      0,
	}
	cfg.Week[time.Monday] = domain.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr(ts(t, "09:00")),
		CloseTime: ptr.Ptr(ts(t, "14:00")),
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

func testServices() []*domain.Service {
	return []*domain.Service{
		{ID: 1, Name: "Маникюр", DurationMinutes: 30, BufferMinutes: 15, CategoryID: 1, IsActive: true},
		{ID: 2, Name: "Покрытие гель-лак", DurationMinutes: 30, CategoryID: 1, IsActive: true},
	}
}

func testStaff() []*domain.Staff {
	return []*domain.Staff{
		{ID: 1, Name: "Анна", Status: domain.StaffActive, IsBookable: true, ServiceIDs: []int64{1, 2}},
		{ID: 2, Name: "Вера", Status: domain.StaffActive, IsBookable: true, ServiceIDs: []int64{1, 2}},
	}
}

func periodStarts(g PeriodGroup) []string {
	out := make([]string, len(g.Slots))
	for i, s := range g.Slots {
		out[i] = s.StartTime.String()
	}
	return out
}

func TestExecute_GroupsByDayPeriod(t *testing.T) {
	uc := newTestUseCase(nil, testServices(), testStaff(), &mockScheduleRepo{cfg: testSchedule(t)}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Periods, 2)

	// Утро до 12:00, дальше день; вечерних слотов при закрытии в 14:00 нет
	morning := resp.Periods[0]
	assert.Equal(t, "morning", morning.Period)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, periodStarts(morning))

	afternoon := resp.Periods[1]
	assert.Equal(t, "afternoon", afternoon.Period)
	assert.Equal(t, []string{"12:00", "13:00"}, periodStarts(afternoon))

	// Конец слота учитывает buffer: 30 минут работы + 15 уборки
	first := morning.Slots[0]
	assert.Equal(t, "09:45", first.EndTime.String())
	assert.Equal(t, int64(1), first.StaffID)
	assert.False(t, resp.Truncated)
}

func TestExecute_PreferredMaster(t *testing.T) {
	uc := newTestUseCase(nil, testServices(), testStaff(), &mockScheduleRepo{cfg: testSchedule(t)}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      testDate,
		StaffID:   ptr.Ptr(int64(2)),
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Periods)

	// Мягкое предпочтение: свободная Вера ставится вместо мастера с меньшим ID
	for _, period := range resp.Periods {
		for _, slot := range period.Slots {
			assert.Equal(t, int64(2), slot.StaffID)
		}
	}
}

func TestExecute_BusyMasterSlotsShrink(t *testing.T) {
	// Оба мастера заняты с 09:00 до 11:00 - утро остается с одним слотом
	bookings := []*domain.Booking{
		{ID: 1, StaffID: 1, ServiceID: 1, BookingDate: testDate, StartTime: ts(t, "09:00"), EndTime: ts(t, "11:00"), Status: domain.StatusConfirmed},
		{ID: 2, StaffID: 2, ServiceID: 1, BookingDate: testDate, StartTime: ts(t, "09:00"), EndTime: ts(t, "11:00"), Status: domain.StatusConfirmed},
	}
	uc := newTestUseCase(bookings, testServices(), testStaff(), &mockScheduleRepo{cfg: testSchedule(t)}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Periods, 2)
	assert.Equal(t, []string{"11:00"}, periodStarts(resp.Periods[0]))
	assert.Equal(t, []string{"12:00", "13:00"}, periodStarts(resp.Periods[1]))
}

func TestExecute_SameDayNoticeFilter(t *testing.T) {
	// Запрос на сегодня в 10:30 при уведомлении за час: утро отсекается целиком
	now := time.Date(2025, 11, 3, 10, 30, 0, 0, time.UTC)
	uc := newTestUseCase(nil, testServices(), testStaff(), &mockScheduleRepo{cfg: testSchedule(t)}, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Periods, 1)
	assert.Equal(t, "afternoon", resp.Periods[0].Period)
	assert.Equal(t, []string{"12:00", "13:00"}, periodStarts(resp.Periods[0]))
}

func TestExecute_ClosedDay(t *testing.T) {
	uc := newTestUseCase(nil, testServices(), testStaff(), &mockScheduleRepo{cfg: testSchedule(t)}, testNow)

	// Вторник в расписании закрыт: пустой ответ без ошибки
	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Periods)
}

func TestExecute_NoScheduleConfig(t *testing.T) {
	uc := newTestUseCase(nil, testServices(), testStaff(),
		&mockScheduleRepo{err: configRepo.ErrConfigNotFound}, testNow)

	// Без конфигурации все дни считаются закрытыми
	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Periods)
}

func TestExecute_ComboExpandsToConsecutiveVisit(t *testing.T) {
	services := append(testServices(), &domain.Service{
		ID: 10, Name: "Маникюр с покрытием", DurationMinutes: 0, CategoryID: 1, IsActive: true,
		AssociatedServiceIDs: []int64{1, 2},
	})
	uc := newTestUseCase(nil, services, testStaff(), &mockScheduleRepo{cfg: testSchedule(t)}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Periods)

	// Визит из двух услуг: 30+15 и 30 минут подряд, конец слота по второй услуге
	first := resp.Periods[0].Slots[0]
	assert.Equal(t, "09:00", first.StartTime.String())
	assert.Equal(t, "10:15", first.EndTime.String())
}

func TestExecute_UnknownService(t *testing.T) {
	uc := newTestUseCase(nil, testServices(), testStaff(), &mockScheduleRepo{cfg: testSchedule(t)}, testNow)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 99, Date: testDate})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_NoQualifiedStaff(t *testing.T) {
	staff := []*domain.Staff{
		{ID: 1, Name: "Анна", Status: domain.StaffActive, IsBookable: true, ServiceIDs: []int64{2}},
	}
	uc := newTestUseCase(nil, testServices(), staff, &mockScheduleRepo{cfg: testSchedule(t)}, testNow)

	// Услугу некому выполнять: обычный пустой ответ, не ошибка
	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Periods)
	assert.Equal(t, []int64{1}, resp.UnassignableServiceIDs)
}

func TestExecute_DateValidation(t *testing.T) {
	t.Run("date in past", func(t *testing.T) {
		uc := newTestUseCase(nil, testServices(), testStaff(), &mockScheduleRepo{cfg: testSchedule(t)}, testNow)

		_, err := uc.Execute(context.Background(), &Request{
			ServiceID: 1,
			Date:      time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("date beyond advance window", func(t *testing.T) {
		cfg := testSchedule(t)
		cfg.AdvanceBookingDays = 7
		uc := newTestUseCase(nil, testServices(), testStaff(), &mockScheduleRepo{cfg: cfg}, testNow)

		_, err := uc.Execute(context.Background(), &Request{
			ServiceID: 1,
			Date:      time.Date(2025, 11, 17, 0, 0, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})

	t.Run("invalid service id", func(t *testing.T) {
		uc := newTestUseCase(nil, testServices(), testStaff(), &mockScheduleRepo{cfg: testSchedule(t)}, testNow)

		_, err := uc.Execute(context.Background(), &Request{ServiceID: 0, Date: testDate})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
