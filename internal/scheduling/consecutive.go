package scheduling

import (
	"sort"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// FindConsecutiveSlots ищет слоты для N услуг подряд (возможно с разрывами)
// в рамках одного дня, с разными мастерами на разные услуги.
//
// Перебор идет по перестановкам списка услуг: конфликты мастеров не
// симметричны по порядку - мастер, свободный в начале дня, может быть занят
// через полчаса и снова свободен позже, поэтому фиксированный входной порядок
// теряет выполнимые размещения. Перестановки перебираются в лексикографическом
// порядке над отсортированным по ID списком, поэтому результат детерминирован
// для зафиксированного снимка.
//
// Для каждого кандидата сетки берется первая успешная перестановка; слоты
// с одинаковым фактическим временем начала дедуплицируются с сохранением
// первого найденного.
func FindConsecutiveSlots(snap *Snapshot, services []*domain.Service, opts Options) Result {
	var res Result

	res.UnassignableServiceIDs = unassignableServices(snap, services, &opts)
	if !res.Feasible() {
		return res
	}

	ordered := make([]*domain.Service, len(services))
	copy(ordered, services)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	// Сверх лимита полный перебор перестановок взрывается факториально;
	// ищем только канонический порядок и честно помечаем результат.
	fullSearch := len(ordered) <= opts.permutationCap()
	if !fullSearch {
		res.Truncated = true
	}

	total := 0
	for _, svc := range ordered {
		total += svc.TotalMinutes()
	}

	_, closeMin, ok := snap.openCloseMinutes()
	if !ok {
		return res
	}

	seenStarts := make(map[int]struct{})

	for _, anchor := range snap.grid(total) {
		perm := newPermutationIterator(len(ordered), fullSearch)
		for idx, more := perm.next(); more; idx, more = perm.next() {
			if opts.expired() {
				res.Truncated = true
				return res
			}

			placed, ok := placeSequence(snap, ordered, idx, anchor, closeMin, false, &opts)
			if !ok {
				continue
			}

			startMin := placed[0].startMin
			if _, dup := seenStarts[startMin]; !dup {
				seenStarts[startMin] = struct{}{}
				res.Slots = append(res.Slots, toSlotCandidate(startMin, placed))
			}
			break
		}
	}

	sort.Slice(res.Slots, func(i, j int) bool {
		return res.Slots[i].StartTime.IsBefore(res.Slots[j].StartTime)
	})

	return res
}

// placeSequence жадно размещает услуги в порядке order (индексы в services).
// Услуга i ставится в самую раннюю точку >= конца услуги i-1 (или якоря для
// первой), где найдется свободный кандидат-мастер. Первая услуга двигается
// по шагу сетки от якоря; при exactFirst она обязана стоять ровно на якоре.
func placeSequence(
	snap *Snapshot,
	services []*domain.Service,
	order []int,
	anchor int,
	closeMin int,
	exactFirst bool,
	opts *Options,
) ([]placedService, bool) {
	placed := make([]placedService, 0, len(services))
	cur := anchor

	for i, svcIdx := range order {
		svc := services[svcIdx]
		total := svc.TotalMinutes()

		step := 1
		if i == 0 {
			step = snap.StepMinutes
		}

		found := false
		for t := cur; t+total <= closeMin; t += step {
			staffID, ok := freeStaffFor(snap, svc, t, t+total, opts)
			if ok {
				placed = append(placed, placedService{
					serviceID: svc.ID,
					staffID:   staffID,
					startMin:  t,
					endMin:    t + total,
				})
				cur = t + total
				found = true
				break
			}
			if exactFirst && i == 0 {
				break
			}
		}
		if !found {
			return nil, false
		}
	}

	return placed, true
}

// freeStaffFor возвращает первого свободного кандидата для услуги на интервале
func freeStaffFor(snap *Snapshot, svc *domain.Service, startMin, endMin int, opts *Options) (int64, bool) {
	for _, staffID := range snap.candidateStaff(svc.ID, opts) {
		if snap.StaffFree(staffID, startMin, endMin) {
			return staffID, true
		}
	}
	return 0, false
}

// permutationIterator перебирает перестановки [0..n) в лексикографическом
// порядке. В ограниченном режиме выдает только тождественную перестановку.
type permutationIterator struct {
	current []int
	full    bool
	done    bool
	first   bool
}

func newPermutationIterator(n int, full bool) *permutationIterator {
	current := make([]int, n)
	for i := range current {
		current[i] = i
	}
	return &permutationIterator{current: current, full: full, first: true}
}

// next возвращает следующую перестановку. Возвращаемый слайс валиден до
// следующего вызова.
func (p *permutationIterator) next() ([]int, bool) {
	if p.done {
		return nil, false
	}
	if p.first {
		p.first = false
		return p.current, true
	}
	if !p.full || !nextPermutation(p.current) {
		p.done = true
		return nil, false
	}
	return p.current, true
}

// nextPermutation переводит s в следующую лексикографическую перестановку.
// Возвращает false, когда s уже последняя.
func nextPermutation(s []int) bool {
	i := len(s) - 2
	for i >= 0 && s[i] >= s[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(s) - 1
	for s[j] <= s[i] {
		j--
	}
	s[i], s[j] = s[j], s[i]
	for l, r := i+1, len(s)-1; l < r; l, r = l+1, r-1 {
		s[l], s[r] = s[r], s[l]
	}
	return true
}
