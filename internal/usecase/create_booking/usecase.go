package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	configRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/config"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

// UseCase use case создания визита. Проверка доступности и вставка записей
// выполняются в сериализуемой транзакции: бронирования на дату читаются
// с блокировкой FOR UPDATE, а exclusion constraint в БД служит последней
// линией защиты от двойного бронирования.
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	staffRepo    StaffRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
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
	txManager TransactionManager,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		staffRepo:    staffRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания визита
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, %d services, date=%s, start=%s",
		req.CustomerID, len(req.ServiceIDs), req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Конфигурация расписания
	schedule, err := uc.scheduleRepo.Get(ctx)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("CreateBooking: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}
	if schedule == nil {
		schedule = &domain.ScheduleConfig{
			SlotStepMinutes:         domain.DefaultSlotStepMinutes,
			MinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
			AdvanceBookingDays:      domain.DefaultAdvanceBookingDays,
		}
		uc.logger.Info("CreateBooking: schedule config not found, using defaults")
	}

	// 3. Валидация даты и времени
	if err := validateDate(req.Date, now, schedule.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	day := schedule.DayFor(req.Date)
	if !day.IsOpen {
		uc.logger.Warn("CreateBooking: salon is closed on %s", req.Date.Format(domain.DateFormat))
		return nil, ErrSalonClosed
	}

	if err := validateBookingTime(req.Date, req.StartTime, now, schedule.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	// 4. Каталог и раскрытие комбо
	catalogServices, err := uc.catalogRepo.GetActiveServices(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to load catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to load catalog: %v", ErrInternal, err)
	}

	catalog := make(map[int64]*domain.Service, len(catalogServices))
	for _, svc := range catalogServices {
		catalog[svc.ID] = svc
	}

	for _, id := range req.ServiceIDs {
		if _, ok := catalog[id]; !ok {
			uc.logger.Warn("CreateBooking: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
	}

	expandedIDs, err := scheduling.Expand(req.ServiceIDs, catalog)
	if err != nil {
		if errors.Is(err, scheduling.ErrNestedCombo) {
			uc.logger.Warn("CreateBooking: nested combo rejected: %v", err)
			return nil, ErrNestedCombo
		}
		uc.logger.Error("CreateBooking: combo expansion failed: %v", err)
		return nil, fmt.Errorf("%w: combo expansion failed: %v", ErrInternal, err)
	}

	requested := make([]*domain.Service, 0, len(expandedIDs))
	for _, id := range expandedIDs {
		requested = append(requested, catalog[id])
	}

	// 5. Мастера
	staff, err := uc.staffRepo.GetSchedulable(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to load staff: %v", err)
		return nil, fmt.Errorf("%w: failed to load staff: %v", ErrInternal, err)
	}

	var created []*domain.Booking

	// 6. Проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created = created[:0]

		// 6.1. Бронирования на дату читаются с блокировкой FOR UPDATE
		bookings, err := uc.bookingRepo.GetByStaffAndDate(txCtx, domain.StaffBookingsFilter{Date: req.Date})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 6.2. Повторная проверка выбранного времени на свежем снимке:
		// состояние могло измениться с момента выдачи списка слотов
		snap := scheduling.NewSnapshot(req.Date, day, schedule.SlotStepMinutes, catalogServices, staff, bookings)

		opts := scheduling.DefaultOptions(uc.timeProvider.Now())
		opts.Deadline = uc.timeProvider.Now().Add(uc.settings.SearchBudget)
		opts.Now = uc.timeProvider.Now
		opts.StaffFallback = uc.settings.StaffFallback
		if req.SelectedTechnicianID != nil {
			opts.Preference = &scheduling.Preference{StaffID: *req.SelectedTechnicianID}
		}

		result, err := scheduling.VerifyStart(snap, requested, req.StartTime, opts)
		if err != nil {
			uc.logger.Warn("CreateBooking: verification rejected: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if !result.Feasible() {
			uc.logger.Warn("CreateBooking: no qualified staff for services %v", result.UnassignableServiceIDs)
			return ErrNoQualifiedStaff
		}

		if len(result.Slots) == 0 {
			uc.logger.Warn("CreateBooking: start %s is not available on %s",
				req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		assignments := result.Slots[0].Assignments

		// 6.3. Общий идентификатор визита для многоуслуговых записей
		var groupID *string
		if len(assignments) > 1 {
			id := uuid.NewString()
			groupID = &id
		}

		// 6.4. По одной записи на элементарную услугу, с денормализацией
		// названия и цены на момент бронирования
		for _, a := range assignments {
			svc := catalog[a.ServiceID]

			booking := &domain.Booking{
				CustomerID:   req.CustomerID,
				StaffID:      a.StaffID,
				ServiceID:    a.ServiceID,
				GroupID:      groupID,
				BookingDate:  req.Date,
				StartTime:    a.StartTime,
				EndTime:      a.EndTime,
				Status:       domain.StatusConfirmed,
				ServiceName:  svc.Name,
				ServicePrice: servicePrice(svc),
				Notes:        req.Notes,
			}

			row, err := uc.bookingRepo.Create(txCtx, booking)
			if err != nil {
				if errors.Is(err, bookingRepo.ErrSlotTaken) {
					// Страховка на уровне БД: exclusion constraint поймал
					// гонку, которую не увидела проверка по снимку
					uc.logger.Warn("CreateBooking: exclusion constraint rejected insert: %v", err)
					return ErrSlotNotAvailable
				}
				uc.logger.Error("CreateBooking: failed to create booking: %v", err)
				return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
			}

			created = append(created, row)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created %d bookings for customer=%d on %s",
		len(created), req.CustomerID, req.Date.Format(domain.DateFormat))

	items := make([]BookingItem, len(created))
	for i, b := range created {
		items[i] = BookingItem{
			ID:           b.ID,
			ServiceID:    b.ServiceID,
			StaffID:      b.StaffID,
			StartTime:    b.StartTime,
			EndTime:      b.EndTime,
			Status:       string(b.Status),
			ServiceName:  b.ServiceName,
			ServicePrice: b.ServicePrice,
			CreatedAt:    b.CreatedAt,
		}
	}

	var groupID *string
	if len(created) > 0 {
		groupID = created[0].GroupID
	}

	return &Response{
		GroupID:   groupID,
		Date:      req.Date,
		StartTime: req.StartTime,
		Bookings:  items,
	}, nil
}

// servicePrice извлекает цену из услуги. Если цена не указана, возвращает 0.0
func servicePrice(svc *domain.Service) float64 {
	if svc.Price == nil {
		return 0.0
	}
	return *svc.Price
}
