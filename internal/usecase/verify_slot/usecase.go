package verify_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	configRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/config"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

// UseCase use case проверки конкретного времени начала визита.
// В отличие от поиска слотов, здесь время зафиксировано клиентом
// и ответ бинарный: либо визит можно начать ровно в startTime, либо нет.
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

// Execute проверяет доступность визита с фиксированным временем начала
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("VerifySlot: %d services, date=%s, start=%s",
		len(req.ServiceIDs), req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("VerifySlot: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Конфигурация расписания
	schedule, err := uc.scheduleRepo.Get(ctx)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("VerifySlot: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}
	if schedule == nil {
		schedule = &domain.ScheduleConfig{
			SlotStepMinutes:         domain.DefaultSlotStepMinutes,
			MinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
			AdvanceBookingDays:      domain.DefaultAdvanceBookingDays,
		}
	}

	// 3. Валидация даты
	if err := validateDate(req.Date, now, schedule.AdvanceBookingDays); err != nil {
		uc.logger.Warn("VerifySlot: date validation failed: %v", err)
		return nil, err
	}

	// 4. Выходной день - слот недоступен, не ошибка
	day := schedule.DayFor(req.Date)
	if !day.IsOpen {
		uc.logger.Info("VerifySlot: salon is closed on %s", req.Date.Format(domain.DateFormat))
		return &Response{Available: false, Assignments: []ServiceAssignment{}}, nil
	}

	// 5. Минимальный запас времени действует только на сегодняшнюю дату
	if isSameDay(req.Date, now) && schedule.MinBookingNoticeMinutes > 0 {
		startMin, _ := req.StartTime.Minutes()
		nowMin := now.Hour()*60 + now.Minute()
		if startMin < nowMin+schedule.MinBookingNoticeMinutes {
			uc.logger.Info("VerifySlot: start %s violates min notice of %d minutes",
				req.StartTime, schedule.MinBookingNoticeMinutes)
			return &Response{Available: false, Assignments: []ServiceAssignment{}}, nil
		}
	}

	// 6. Каталог и раскрытие комбо
	catalogServices, err := uc.catalogRepo.GetActiveServices(ctx)
	if err != nil {
		uc.logger.Error("VerifySlot: failed to load catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to load catalog: %v", ErrInternal, err)
	}

	catalog := make(map[int64]*domain.Service, len(catalogServices))
	for _, svc := range catalogServices {
		catalog[svc.ID] = svc
	}

	for _, id := range req.ServiceIDs {
		if _, ok := catalog[id]; !ok {
			uc.logger.Warn("VerifySlot: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
	}

	expandedIDs, err := scheduling.Expand(req.ServiceIDs, catalog)
	if err != nil {
		if errors.Is(err, scheduling.ErrNestedCombo) {
			uc.logger.Warn("VerifySlot: nested combo rejected: %v", err)
			return nil, ErrNestedCombo
		}
		uc.logger.Error("VerifySlot: combo expansion failed: %v", err)
		return nil, fmt.Errorf("%w: combo expansion failed: %v", ErrInternal, err)
	}

	requested := make([]*domain.Service, 0, len(expandedIDs))
	for _, id := range expandedIDs {
		requested = append(requested, catalog[id])
	}

	// 7. Мастера и бронирования на дату
	staff, err := uc.staffRepo.GetSchedulable(ctx)
	if err != nil {
		uc.logger.Error("VerifySlot: failed to load staff: %v", err)
		return nil, fmt.Errorf("%w: failed to load staff: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetByStaffAndDate(ctx, domain.StaffBookingsFilter{Date: req.Date})
	if err != nil {
		uc.logger.Error("VerifySlot: failed to load bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to load bookings: %v", ErrInternal, err)
	}

	// 8. Снимок и проверка кандидата
	snap := scheduling.NewSnapshot(req.Date, day, schedule.SlotStepMinutes, catalogServices, staff, bookings)

	opts := scheduling.DefaultOptions(now)
	opts.Deadline = now.Add(uc.settings.SearchBudget)
	opts.Now = uc.timeProvider.Now
	opts.StaffFallback = uc.settings.StaffFallback
	if req.SelectedTechnicianID != nil {
		opts.Preference = &scheduling.Preference{StaffID: *req.SelectedTechnicianID}
	}

	result, err := scheduling.VerifyStart(snap, requested, req.StartTime, opts)
	if err != nil {
		uc.logger.Warn("VerifySlot: verification rejected: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 9. Нет квалифицированных мастеров - недоступность с перечнем
	// невыполнимых услуг, не ошибка
	if !result.Feasible() {
		uc.logger.Warn("VerifySlot: no qualified staff for services %v", result.UnassignableServiceIDs)
		return &Response{
			Available:              false,
			Assignments:            []ServiceAssignment{},
			UnassignableServiceIDs: result.UnassignableServiceIDs,
		}, nil
	}

	resp := &Response{
		Available:   len(result.Slots) > 0,
		Assignments: []ServiceAssignment{},
		Truncated:   result.Truncated,
	}
	if resp.Available {
		resp.Assignments = toAssignments(result.Slots[0])
	}

	uc.logger.Info("VerifySlot: date=%s start=%s available=%v (truncated=%v)",
		req.Date.Format(domain.DateFormat), req.StartTime, resp.Available, resp.Truncated)

	return resp, nil
}

// toAssignments конвертирует назначения кандидата в DTO ответа
func toAssignments(candidate scheduling.SlotCandidate) []ServiceAssignment {
	assignments := make([]ServiceAssignment, len(candidate.Assignments))
	for i, a := range candidate.Assignments {
		assignments[i] = ServiceAssignment{
			ServiceID: a.ServiceID,
			StaffID:   a.StaffID,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
		}
	}
	return assignments
}

// isSameDay проверяет, что две даты приходятся на один календарный день
func isSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
