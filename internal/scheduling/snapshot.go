package scheduling

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// interval занятый интервал [startMin, endMin) в минутах от полуночи
type interval struct {
	startMin int
	endMin   int
}

// Snapshot неизменяемый срез данных для одного запроса доступности.
// Собирается из БД до начала поиска; сам поиск - чистое вычисление
// без обращений к хранилищу, поэтому результат детерминирован для
// зафиксированного снимка.
type Snapshot struct {
	Date        time.Time
	Day         domain.DaySchedule
	StepMinutes int

	services  map[int64]*domain.Service
	staff     map[int64]*domain.Staff
	qualified map[int64][]int64 // serviceID -> отсортированные ID мастеров
	busy      map[int64][]interval

	allStaff []int64 // все доступные мастера, отсортированы по ID
}

// NewSnapshot индексирует каталог, мастеров и активные бронирования.
// В расписании участвуют только активные bookable-мастера; неактивные
// бронирования (отмененные, no-show) не занимают время.
func NewSnapshot(
	date time.Time,
	day domain.DaySchedule,
	stepMinutes int,
	services []*domain.Service,
	staff []*domain.Staff,
	bookings []*domain.Booking,
) *Snapshot {
	snap := &Snapshot{
		Date:        date,
		Day:         day,
		StepMinutes: stepMinutes,
		services:    make(map[int64]*domain.Service, len(services)),
		staff:       make(map[int64]*domain.Staff, len(staff)),
		qualified:   make(map[int64][]int64),
		busy:        make(map[int64][]interval),
	}

	for _, svc := range services {
		snap.services[svc.ID] = svc
	}

	for _, st := range staff {
		if !st.IsSchedulable() {
			continue
		}
		snap.staff[st.ID] = st
		snap.allStaff = append(snap.allStaff, st.ID)
		for _, svcID := range st.ServiceIDs {
			snap.qualified[svcID] = append(snap.qualified[svcID], st.ID)
		}
	}

	sort.Slice(snap.allStaff, func(i, j int) bool { return snap.allStaff[i] < snap.allStaff[j] })
	for svcID := range snap.qualified {
		ids := snap.qualified[svcID]
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		start, err := b.StartTime.Minutes()
		if err != nil {
			continue
		}
		end, err := b.EndTime.Minutes()
		if err != nil {
			continue
		}
		snap.busy[b.StaffID] = append(snap.busy[b.StaffID], interval{startMin: start, endMin: end})
	}

	return snap
}

// Service возвращает услугу из снимка
func (s *Snapshot) Service(id int64) (*domain.Service, bool) {
	svc, ok := s.services[id]
	return svc, ok
}

// QualifiedStaff возвращает ID мастеров, квалифицированных для услуги,
// в возрастающем порядке. Порядок фиксирован ради воспроизводимости выбора.
func (s *Snapshot) QualifiedStaff(serviceID int64) []int64 {
	return s.qualified[serviceID]
}

// AllStaff возвращает всех доступных мастеров (для аварийного fallback)
func (s *Snapshot) AllStaff() []int64 {
	return s.allStaff
}

// StaffFree проверяет, что мастер свободен весь интервал [startMin, endMin).
// Граничащие бронирования пересечением не считаются.
func (s *Snapshot) StaffFree(staffID int64, startMin, endMin int) bool {
	for _, iv := range s.busy[staffID] {
		if iv.startMin < endMin && iv.endMin > startMin {
			return false
		}
	}
	return true
}

// candidateStaff возвращает кандидатов для услуги с учетом предпочтений.
// Жесткий пин сужает список до одного мастера (если он квалифицирован),
// мягкое предпочтение поднимает мастера в начало списка.
func (s *Snapshot) candidateStaff(serviceID int64, opts *Options) []int64 {
	qualified := s.qualified[serviceID]
	if len(qualified) == 0 && opts.StaffFallback {
		qualified = s.allStaff
	}

	if pinID, ok := opts.pinnedStaff(serviceID); ok {
		for _, id := range qualified {
			if id == pinID {
				return []int64{pinID}
			}
		}
		return nil
	}

	if prefID, ok := opts.softPreferred(); ok {
		for i, id := range qualified {
			if id == prefID && i > 0 {
				reordered := make([]int64, 0, len(qualified))
				reordered = append(reordered, prefID)
				reordered = append(reordered, qualified[:i]...)
				reordered = append(reordered, qualified[i+1:]...)
				return reordered
			}
		}
	}

	return qualified
}

// openCloseMinutes возвращает границы рабочего дня в минутах.
// ok=false, если салон в этот день закрыт.
func (s *Snapshot) openCloseMinutes() (openMin, closeMin int, ok bool) {
	if !s.Day.IsOpen || s.Day.OpenTime == nil || s.Day.CloseTime == nil {
		return 0, 0, false
	}
	openMin, err := s.Day.OpenTime.Minutes()
	if err != nil {
		return 0, 0, false
	}
	closeMin, err = s.Day.CloseTime.Minutes()
	if err != nil {
		return 0, 0, false
	}
	if closeMin <= openMin {
		return 0, 0, false
	}
	return openMin, closeMin, true
}
