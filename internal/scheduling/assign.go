package scheduling

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// Assignment назначение мастера на услугу внутри кандидата слота.
// EndTime включает buffer услуги - это окно занятости мастера.
type Assignment struct {
	ServiceID int64
	StaffID   int64
	StartTime types.TimeString
	EndTime   types.TimeString
}

// SlotCandidate кандидат слота: время начала визита и упорядоченный список
// назначений. Живет только в рамках одного запроса доступности.
type SlotCandidate struct {
	StartTime   types.TimeString
	Assignments []Assignment
}

// Result итог поиска. Отсутствие слотов - нормальный исход, не ошибка.
type Result struct {
	Slots []SlotCandidate

	// Truncated true, если поиск обрезан бюджетом или лимитом перестановок
	// и результат нельзя считать исчерпывающим
	Truncated bool

	// UnassignableServiceIDs услуги, для которых нет ни одного
	// квалифицированного мастера. Непустой список означает, что запрос
	// в принципе невыполним (fail closed).
	UnassignableServiceIDs []int64
}

// Feasible возвращает true, если все услуги в принципе назначаемы
func (r *Result) Feasible() bool {
	return len(r.UnassignableServiceIDs) == 0
}

// assignment внутреннее представление назначения в минутах от полуночи
type placedService struct {
	serviceID int64
	staffID   int64
	startMin  int
	endMin    int
}

func toAssignment(p placedService) Assignment {
	start, _ := types.NewTimeStringFromMinutes(p.startMin)
	end, _ := types.NewTimeStringFromMinutes(p.endMin)
	return Assignment{
		ServiceID: p.serviceID,
		StaffID:   p.staffID,
		StartTime: start,
		EndTime:   end,
	}
}

func toSlotCandidate(startMin int, placed []placedService) SlotCandidate {
	start, _ := types.NewTimeStringFromMinutes(startMin)
	assignments := make([]Assignment, len(placed))
	for i, p := range placed {
		assignments[i] = toAssignment(p)
	}
	return SlotCandidate{StartTime: start, Assignments: assignments}
}
