package models

// Request модели

// CheckComboEligibleRequest запрос на проверку точного совпадения набора услуг
// с правилом комбо-апсейла
type CheckComboEligibleRequest struct {
	ServiceIDs []int64 `json:"serviceIds"`
}

// CheckIncompatibilitiesRequest запрос на проверку совместимости категорий
type CheckIncompatibilitiesRequest struct {
	CategoryIDs []int64 `json:"categoryIds"`
}

// CheckRequiresRemovalRequest запрос на проверку необходимости шага снятия
type CheckRequiresRemovalRequest struct {
	CategoryIDs []int64 `json:"categoryIds"`
}

// Response модели

// MatchedRule сработавшее правило комбо-апсейла
type MatchedRule struct {
	RuleID     int64   `json:"ruleId"`
	ServiceIDs []int64 `json:"serviceIds"`
	ExtraPrice float64 `json:"extraPrice"`
}

// SuggestedCombo предлагаемая комбо-услуга из каталога
type SuggestedCombo struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           *float64 `json:"price,omitempty"`
}

// CheckComboEligibleResponse результат проверки комбо-апсейла
type CheckComboEligibleResponse struct {
	IsEligible     bool            `json:"isEligible"`
	MatchedRule    *MatchedRule    `json:"matchedRule,omitempty"`
	SuggestedCombo *SuggestedCombo `json:"suggestedCombo,omitempty"`
}

// IncompatiblePair направленная пара несовместимых категорий
type IncompatiblePair struct {
	CategoryID             int64 `json:"categoryId"`
	IncompatibleCategoryID int64 `json:"incompatibleCategoryId"`
}

// CheckIncompatibilitiesResponse результат проверки совместимости.
// Проверка рекомендательная: запись не блокируется, клиента предупреждают.
type CheckIncompatibilitiesResponse struct {
	Incompatible bool               `json:"incompatible"`
	Pairs        []IncompatiblePair `json:"pairs"`
}

// RemovalService услуга снятия, которую нужно добавить перед основной
type RemovalService struct {
	CategoryID       int64  `json:"categoryId"`
	RemovalServiceID *int64 `json:"removalServiceId,omitempty"`
	CategoryName     string `json:"categoryName"`
}

// CheckRequiresRemovalResponse результат проверки необходимости шага снятия
type CheckRequiresRemovalResponse struct {
	RequiresRemoval bool             `json:"requiresRemoval"`
	Services        []RemovalService `json:"services"`
}
