package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Границы периодов дня в минутах от полуночи
const (
	morningEndMin   = 12 * 60 // до 12:00 - утро
	afternoonEndMin = 17 * 60 // до 17:00 - день, дальше вечер
)

const (
	periodMorning   = "morning"
	periodAfternoon = "afternoon"
	periodEvening   = "evening"
)

// filterByNotice отсекает слоты ближе минимального уведомления.
// Фильтр действует только для сегодняшней даты: на будущие дни
// все слоты проходят как есть.
func filterByNotice(slots []scheduling.SlotCandidate, requestDate, now time.Time, noticeMinutes int) []Slot {
	earliestMin := -1
	if isSameDay(requestDate, now) {
		currentTime := types.NewTimeString(now)
		nowMin, err := currentTime.Minutes()
		if err == nil {
			earliestMin = nowMin + noticeMinutes
		}
	}

	out := make([]Slot, 0, len(slots))
	for _, candidate := range slots {
		startMin, err := candidate.StartTime.Minutes()
		if err != nil {
			continue
		}
		if earliestMin >= 0 && startMin < earliestMin {
			continue
		}

		last := candidate.Assignments[len(candidate.Assignments)-1]
		out = append(out, Slot{
			StartTime: candidate.StartTime,
			EndTime:   last.EndTime,
			StaffID:   candidate.Assignments[0].StaffID,
		})
	}

	return out
}

// groupByPeriod раскладывает слоты по периодам дня.
// Пустые периоды в ответ не попадают; порядок утро-день-вечер фиксирован.
func groupByPeriod(slots []Slot) []PeriodGroup {
	var morning, afternoon, evening []Slot

	for _, slot := range slots {
		startMin, err := slot.StartTime.Minutes()
		if err != nil {
			continue
		}
		switch {
		case startMin < morningEndMin:
			morning = append(morning, slot)
		case startMin < afternoonEndMin:
			afternoon = append(afternoon, slot)
		default:
			evening = append(evening, slot)
		}
	}

	groups := make([]PeriodGroup, 0, 3)
	if len(morning) > 0 {
		groups = append(groups, PeriodGroup{Period: periodMorning, Slots: morning})
	}
	if len(afternoon) > 0 {
		groups = append(groups, PeriodGroup{Period: periodAfternoon, Slots: afternoon})
	}
	if len(evening) > 0 {
		groups = append(groups, PeriodGroup{Period: periodEvening, Slots: evening})
	}

	return groups
}
