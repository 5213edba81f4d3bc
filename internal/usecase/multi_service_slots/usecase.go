package multi_service_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	configRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/config"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase use case последовательного мульти-сервисного поиска слотов.
// Комбо раскрываются в элементарные услуги, затем перебираются перестановки
// порядка выполнения: фиксированный входной порядок может быть неразмещаемым,
// когда другой порядок размещается.
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

// Execute выполняет поиск последовательных мульти-сервисных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MultiServiceSlots: %d services, date=%s, technician=%v",
		len(req.Services), req.Date.Format(domain.DateFormat), req.SelectedTechnicianID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("MultiServiceSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Конфигурация расписания
	schedule, err := uc.scheduleRepo.Get(ctx)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("MultiServiceSlots: failed to get schedule config: %v", err)
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
		uc.logger.Warn("MultiServiceSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Выходной день - пустой ответ, не ошибка
	day := schedule.DayFor(req.Date)
	if !day.IsOpen {
		uc.logger.Info("MultiServiceSlots: salon is closed on %s", req.Date.Format(domain.DateFormat))
		return &Response{Date: req.Date, Slots: []Slot{}}, nil
	}

	// 5. Каталог, раскрытие комбо и переопределения длительности
	catalogServices, err := uc.catalogRepo.GetActiveServices(ctx)
	if err != nil {
		uc.logger.Error("MultiServiceSlots: failed to load catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to load catalog: %v", ErrInternal, err)
	}

	catalog := make(map[int64]*domain.Service, len(catalogServices))
	for _, svc := range catalogServices {
		catalog[svc.ID] = svc
	}

	requestedIDs := make([]int64, 0, len(req.Services))
	for _, svc := range req.Services {
		if _, ok := catalog[svc.ID]; !ok {
			uc.logger.Warn("MultiServiceSlots: service id=%d not found", svc.ID)
			return nil, ErrServiceNotFound
		}
		requestedIDs = append(requestedIDs, svc.ID)
	}

	expandedIDs, err := scheduling.Expand(requestedIDs, catalog)
	if err != nil {
		if errors.Is(err, scheduling.ErrNestedCombo) {
			uc.logger.Warn("MultiServiceSlots: nested combo rejected: %v", err)
			return nil, ErrNestedCombo
		}
		uc.logger.Error("MultiServiceSlots: combo expansion failed: %v", err)
		return nil, fmt.Errorf("%w: combo expansion failed: %v", ErrInternal, err)
	}

	snapshotServices := applyDurationOverrides(catalogServices, req.Services)

	requested := make([]*domain.Service, 0, len(expandedIDs))
	for _, svc := range snapshotServices {
		for _, id := range expandedIDs {
			if svc.ID == id {
				requested = append(requested, svc)
				break
			}
		}
	}

	// 6. Мастера и бронирования на дату
	staff, err := uc.staffRepo.GetSchedulable(ctx)
	if err != nil {
		uc.logger.Error("MultiServiceSlots: failed to load staff: %v", err)
		return nil, fmt.Errorf("%w: failed to load staff: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetByStaffAndDate(ctx, domain.StaffBookingsFilter{Date: req.Date})
	if err != nil {
		uc.logger.Error("MultiServiceSlots: failed to load bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to load bookings: %v", ErrInternal, err)
	}

	// 7. Снимок и поиск
	snap := scheduling.NewSnapshot(req.Date, day, schedule.SlotStepMinutes, snapshotServices, staff, bookings)

	opts := scheduling.DefaultOptions(now)
	opts.Deadline = now.Add(uc.settings.SearchBudget)
	opts.Now = uc.timeProvider.Now
	opts.StaffFallback = uc.settings.StaffFallback
	if req.SelectedTechnicianID != nil {
		opts.Preference = &scheduling.Preference{
			StaffID:   *req.SelectedTechnicianID,
			ServiceID: req.SelectedServiceID,
		}
	}

	result := scheduling.FindConsecutiveSlots(snap, requested, opts)

	// 8. Нет квалифицированных мастеров - пустая выдача с перечнем
	// невыполнимых услуг, не ошибка
	if !result.Feasible() {
		uc.logger.Warn("MultiServiceSlots: no qualified staff for services %v", result.UnassignableServiceIDs)
		return &Response{
			Date:                   req.Date,
			Slots:                  []Slot{},
			UnassignableServiceIDs: result.UnassignableServiceIDs,
		}, nil
	}

	// 9. Для сегодняшней даты отсекаем слоты ближе минимального уведомления
	candidates := filterByNotice(result.Slots, req.Date, now, schedule.MinBookingNoticeMinutes)

	uc.logger.Info("MultiServiceSlots: found %d slots for date=%s (truncated=%v)",
		len(candidates), req.Date.Format(domain.DateFormat), result.Truncated)

	return &Response{
		Date:      req.Date,
		Slots:     toSlots(candidates),
		Truncated: result.Truncated,
	}, nil
}

// filterByNotice отсекает слоты ближе минимального уведомления.
// Фильтр действует только для сегодняшней даты.
func filterByNotice(slots []scheduling.SlotCandidate, requestDate, now time.Time, noticeMinutes int) []scheduling.SlotCandidate {
	if !isSameDay(requestDate, now) {
		return slots
	}

	currentTime := types.NewTimeString(now)
	nowMin, err := currentTime.Minutes()
	if err != nil {
		return slots
	}
	earliestMin := nowMin + noticeMinutes

	out := make([]scheduling.SlotCandidate, 0, len(slots))
	for _, candidate := range slots {
		startMin, err := candidate.StartTime.Minutes()
		if err != nil {
			continue
		}
		if startMin < earliestMin {
			continue
		}
		out = append(out, candidate)
	}
	return out
}

// isSameDay проверяет, что две даты приходятся на один календарный день
func isSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// applyDurationOverrides возвращает копию каталога с переопределенными
// длительностями из запроса. Переопределение действует только на элементарные
// услуги; buffer остается каталожным.
func applyDurationOverrides(catalogServices []*domain.Service, requested []ServiceWithAddon) []*domain.Service {
	overrides := make(map[int64]int)
	for _, svc := range requested {
		if svc.DurationMinutes != nil {
			overrides[svc.ID] = *svc.DurationMinutes
		}
	}
	if len(overrides) == 0 {
		return catalogServices
	}

	out := make([]*domain.Service, len(catalogServices))
	for i, svc := range catalogServices {
		if minutes, ok := overrides[svc.ID]; ok && !svc.IsCombo() {
			clone := *svc
			clone.DurationMinutes = minutes
			out[i] = &clone
			continue
		}
		out[i] = svc
	}
	return out
}

// toSlots конвертирует кандидатов поиска в DTO ответа
func toSlots(candidates []scheduling.SlotCandidate) []Slot {
	slots := make([]Slot, len(candidates))
	for i, candidate := range candidates {
		assignments := make([]ServiceAssignment, len(candidate.Assignments))
		for j, a := range candidate.Assignments {
			assignments[j] = ServiceAssignment{
				ServiceID: a.ServiceID,
				StaffID:   a.StaffID,
				StartTime: a.StartTime,
				EndTime:   a.EndTime,
			}
		}
		slots[i] = Slot{
			StartTime: candidate.StartTime,
			Available: true,
			Services:  assignments,
		}
	}
	return slots
}
