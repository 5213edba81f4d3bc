package scheduling

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrServiceUnknown возвращается, когда ID услуги отсутствует в каталоге
	ErrServiceUnknown = errors.New("scheduling: unknown service id")

	// ErrNestedCombo возвращается, когда комбо-услуга ссылается на другое комбо.
	// Вложенные комбо - нарушение инварианта каталога, а не пользовательская ошибка.
	ErrNestedCombo = errors.New("scheduling: combo service references another combo")
)

// Expand раскрывает комбо-услуги в элементарные.
// Для каждого ID: комбо заменяется своими составными услугами на месте,
// обычная услуга остается как есть. Результат дедуплицирован с сохранением
// порядка первого вхождения. Чистая функция над каталогом - тестируется
// без хранилища.
func Expand(serviceIDs []int64, catalog map[int64]*domain.Service) ([]int64, error) {
	result := make([]int64, 0, len(serviceIDs))
	seen := make(map[int64]struct{}, len(serviceIDs))

	appendOnce := func(id int64) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}

	for _, id := range serviceIDs {
		svc, ok := catalog[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrServiceUnknown, id)
		}

		if !svc.IsCombo() {
			appendOnce(id)
			continue
		}

		for _, memberID := range svc.AssociatedServiceIDs {
			member, ok := catalog[memberID]
			if !ok {
				return nil, fmt.Errorf("%w: %d (member of combo %d)", ErrServiceUnknown, memberID, id)
			}
			if member.IsCombo() {
				return nil, fmt.Errorf("%w: combo %d contains combo %d", ErrNestedCombo, id, memberID)
			}
			appendOnce(memberID)
		}
	}

	return result, nil
}

// resolveServices возвращает услуги снимка по раскрытым ID
func resolveServices(snap *Snapshot, serviceIDs []int64) ([]*domain.Service, error) {
	services := make([]*domain.Service, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		svc, ok := snap.Service(id)
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrServiceUnknown, id)
		}
		services = append(services, svc)
	}
	return services, nil
}

// unassignableServices возвращает ID услуг без единого кандидата-мастера.
// Пустой список кандидатов - нормальное (не ошибочное) состояние: запрос
// остается частично отчитываемым, решение остается за вызывающим.
func unassignableServices(snap *Snapshot, services []*domain.Service, opts *Options) []int64 {
	var unassignable []int64
	for _, svc := range services {
		if len(snap.candidateStaff(svc.ID, opts)) == 0 {
			unassignable = append(unassignable, svc.ID)
		}
	}
	return unassignable
}
