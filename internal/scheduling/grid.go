package scheduling

// grid генерирует кандидатов времени начала в минутах от полуночи:
// от открытия до закрытия с фиксированным шагом. Кандидат отбрасывается,
// если requiredMinutes не помещается до закрытия. Если день не вмещает
// ни одного кандидата, возвращается пустой список - это не ошибка.
func (s *Snapshot) grid(requiredMinutes int) []int {
	openMin, closeMin, ok := s.openCloseMinutes()
	if !ok {
		return nil
	}

	step := s.StepMinutes
	if step <= 0 {
		return nil
	}

	candidates := make([]int, 0, (closeMin-openMin)/step+1)
	for t := openMin; t+requiredMinutes <= closeMin; t += step {
		candidates = append(candidates, t)
	}
	return candidates
}
