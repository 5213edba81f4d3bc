package domain

// ComboEligibleRule rule suggesting a combo upsell for an exact set of services.
// Matching is exact-set equality against the customer's selection, order
// independent; subsets and supersets do not match.
type ComboEligibleRule struct {
	ID                      int64
	ServiceIDs              []int64
	ExtraPrice              float64
	SuggestedComboServiceID *int64
	IsActive                bool
}

// MatchesExactly проверяет точное совпадение множеств ID услуг.
// Вход должен быть дедуплицирован вызывающей стороной.
func (r *ComboEligibleRule) MatchesExactly(selected []int64) bool {
	if len(r.ServiceIDs) != len(selected) {
		return false
	}
	set := make(map[int64]struct{}, len(r.ServiceIDs))
	for _, id := range r.ServiceIDs {
		set[id] = struct{}{}
	}
	for _, id := range selected {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}
