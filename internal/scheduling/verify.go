package scheduling

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// VerifyStart проверяет один конкретный кандидат начала: существует ли
// перестановка услуг и назначение мастеров, при которых визит начинается
// ровно в startTime. Используется перед подтверждением выбранного клиентом
// слота - снимок мог устареть с момента выдачи списка.
func VerifyStart(snap *Snapshot, services []*domain.Service, startTime types.TimeString, opts Options) (Result, error) {
	var res Result

	startMin, err := startTime.Minutes()
	if err != nil {
		return res, fmt.Errorf("scheduling: invalid start time: %w", err)
	}

	res.UnassignableServiceIDs = unassignableServices(snap, services, &opts)
	if !res.Feasible() {
		return res, nil
	}

	openMin, closeMin, ok := snap.openCloseMinutes()
	if !ok || startMin < openMin || startMin >= closeMin {
		return res, nil
	}

	ordered := make([]*domain.Service, len(services))
	copy(ordered, services)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	fullSearch := len(ordered) <= opts.permutationCap()
	if !fullSearch {
		res.Truncated = true
	}

	perm := newPermutationIterator(len(ordered), fullSearch)
	for idx, more := perm.next(); more; idx, more = perm.next() {
		if opts.expired() {
			res.Truncated = true
			return res, nil
		}

		placed, ok := placeSequence(snap, ordered, idx, startMin, closeMin, true, &opts)
		if !ok {
			continue
		}

		res.Slots = append(res.Slots, toSlotCandidate(startMin, placed))
		return res, nil
	}

	return res, nil
}
