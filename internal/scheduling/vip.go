package scheduling

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// FindVipComboSlots ищет слоты одновременного режима: два разных мастера
// выполняют две услуги, начиная в один и тот же момент. Времена окончания
// могут отличаться - длительности услуг разные.
//
// Инварианты результата: в каждом слоте ровно два назначения,
// staffID назначений различны, startTime назначений совпадает.
// Пожелание клиента (selectedServiceId + selectedTechnicianId) пинит одну
// сторону пары; вторая подбирается свободно среди квалифицированных.
func FindVipComboSlots(snap *Snapshot, serviceA, serviceB *domain.Service, opts Options) Result {
	var res Result

	res.UnassignableServiceIDs = unassignableServices(snap, []*domain.Service{serviceA, serviceB}, &opts)
	if !res.Feasible() {
		return res
	}

	totalA := serviceA.TotalMinutes()
	totalB := serviceB.TotalMinutes()
	required := totalA
	if totalB > required {
		required = totalB
	}

	candidatesA := snap.candidateStaff(serviceA.ID, &opts)
	candidatesB := snap.candidateStaff(serviceB.ID, &opts)

	for _, startMin := range snap.grid(required) {
		if opts.expired() {
			res.Truncated = true
			return res
		}

		pair, ok := pickDistinctPair(snap, candidatesA, candidatesB, startMin, totalA, totalB)
		if !ok {
			continue
		}

		res.Slots = append(res.Slots, toSlotCandidate(startMin, []placedService{
			{serviceID: serviceA.ID, staffID: pair[0], startMin: startMin, endMin: startMin + totalA},
			{serviceID: serviceB.ID, staffID: pair[1], startMin: startMin, endMin: startMin + totalB},
		}))
	}

	return res
}

// pickDistinctPair подбирает первую по порядку пару разных свободных мастеров.
// Перебираются все пары, а не только первый свободный для A: единственный
// мастер, годный для B, мог бы оказаться выбранным для A.
func pickDistinctPair(snap *Snapshot, candidatesA, candidatesB []int64, startMin, totalA, totalB int) ([2]int64, bool) {
	for _, a := range candidatesA {
		if !snap.StaffFree(a, startMin, startMin+totalA) {
			continue
		}
		for _, b := range candidatesB {
			if b == a {
				continue
			}
			if snap.StaffFree(b, startMin, startMin+totalB) {
				return [2]int64{a, b}, true
			}
		}
	}
	return [2]int64{}, false
}
