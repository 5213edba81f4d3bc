package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	configRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/config"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

// UseCase use case для получения доступных слотов одной услуги.
// Комбо-услуга раскрывается в элементарные и ищется как последовательный визит.
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	staffRepo    StaffRepository
	scheduleRepo ScheduleRepository
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	staffRepo StaffRepository,
	scheduleRepo ScheduleRepository,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		staffRepo:    staffRepo,
		scheduleRepo: scheduleRepo,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s, staff=%v",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StaffID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем конфигурацию расписания (дефолты, если её нет в БД)
	schedule, err := uc.scheduleRepo.Get(ctx)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}
	if schedule == nil {
		schedule = defaultSchedule()
		uc.logger.Info("GetAvailableSlots: using default schedule config")
	}

	// 4. Валидация даты с учетом конфигурации
	if err := validateDate(req.Date, now, schedule.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Рабочие часы на дату: в выходной слотов нет
	day := schedule.DayFor(req.Date)
	if !day.IsOpen {
		uc.logger.Info("GetAvailableSlots: salon is closed on %s", req.Date.Format(domain.DateFormat))
		return &Response{Date: req.Date, ServiceID: req.ServiceID, Periods: []PeriodGroup{}}, nil
	}

	// 6. Каталог: находим услугу и раскрываем комбо
	catalogServices, err := uc.catalogRepo.GetActiveServices(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to load catalog: %v", ErrInternal, err)
	}

	catalog := make(map[int64]*domain.Service, len(catalogServices))
	for _, svc := range catalogServices {
		catalog[svc.ID] = svc
	}

	if _, ok := catalog[req.ServiceID]; !ok {
		uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	expandedIDs, err := scheduling.Expand([]int64{req.ServiceID}, catalog)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: combo expansion failed for service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: combo expansion failed: %v", ErrInternal, err)
	}

	requested := make([]*domain.Service, 0, len(expandedIDs))
	for _, id := range expandedIDs {
		requested = append(requested, catalog[id])
	}

	// 7. Мастера и бронирования на дату
	staff, err := uc.staffRepo.GetSchedulable(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load staff: %v", err)
		return nil, fmt.Errorf("%w: failed to load staff: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetByStaffAndDate(ctx, domain.StaffBookingsFilter{Date: req.Date})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to load bookings: %v", ErrInternal, err)
	}

	// 8. Снимок собран - дальше чистый поиск без обращений к БД
	snap := scheduling.NewSnapshot(req.Date, day, schedule.SlotStepMinutes, catalogServices, staff, bookings)

	opts := scheduling.DefaultOptions(now)
	opts.Deadline = now.Add(uc.settings.SearchBudget)
	opts.Now = uc.timeProvider.Now
	opts.StaffFallback = uc.settings.StaffFallback
	if req.StaffID != nil {
		opts.Preference = &scheduling.Preference{StaffID: *req.StaffID}
	}

	var result scheduling.Result
	if len(requested) == 1 {
		result = scheduling.FindSingleServiceSlots(snap, requested[0], opts)
	} else {
		result = scheduling.FindConsecutiveSlots(snap, requested, opts)
	}

	// 9. Нет квалифицированных мастеров - пустая выдача с перечнем
	// невыполнимых услуг, не ошибка
	if !result.Feasible() {
		uc.logger.Warn("GetAvailableSlots: no qualified staff for services %v", result.UnassignableServiceIDs)
		return &Response{
			Date:                   req.Date,
			ServiceID:              req.ServiceID,
			Periods:                []PeriodGroup{},
			UnassignableServiceIDs: result.UnassignableServiceIDs,
		}, nil
	}

	// 10. Для сегодняшней даты отсекаем слоты ближе минимального уведомления
	slots := filterByNotice(result.Slots, req.Date, now, schedule.MinBookingNoticeMinutes)

	// 11. Группируем по периодам дня
	periods := groupByPeriod(slots)

	uc.logger.Info("GetAvailableSlots: %d slots in %d periods for service=%d, date=%s (truncated=%v)",
		len(slots), len(periods), req.ServiceID, req.Date.Format(domain.DateFormat), result.Truncated)

	return &Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		Periods:   periods,
		Truncated: result.Truncated,
	}, nil
}

// defaultSchedule конфигурация по умолчанию: рабочие часы без записи в БД
// не известны, поэтому каждый день недели считается закрытым
func defaultSchedule() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		SlotStepMinutes:         domain.DefaultSlotStepMinutes,
		MinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:      domain.DefaultAdvanceBookingDays,
	}
}
