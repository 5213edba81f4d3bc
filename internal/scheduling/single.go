package scheduling

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// FindSingleServiceSlots ищет слоты для одной услуги.
// Слот доступен, если хотя бы один квалифицированный мастер свободен весь
// интервал длительность+buffer. Выбор мастера детерминирован: предпочтение
// клиента, если он свободен, иначе первый свободный в порядке возрастания ID.
func FindSingleServiceSlots(snap *Snapshot, service *domain.Service, opts Options) Result {
	var res Result

	res.UnassignableServiceIDs = unassignableServices(snap, []*domain.Service{service}, &opts)
	if !res.Feasible() {
		return res
	}

	total := service.TotalMinutes()
	candidates := snap.candidateStaff(service.ID, &opts)

	for _, startMin := range snap.grid(total) {
		if opts.expired() {
			res.Truncated = true
			return res
		}

		for _, staffID := range candidates {
			if !snap.StaffFree(staffID, startMin, startMin+total) {
				continue
			}
			res.Slots = append(res.Slots, toSlotCandidate(startMin, []placedService{{
				serviceID: service.ID,
				staffID:   staffID,
				startMin:  startMin,
				endMin:    startMin + total,
			}}))
			break
		}
	}

	return res
}
