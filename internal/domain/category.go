package domain

// Category represents a service category (e.g. gel nails, pedicure)
type Category struct {
	ID   int64
	Name string

	// RequiresRemoval означает, что перед услугами категории обязателен
	// подготовительный шаг снятия (например, снятие старого покрытия)
	RequiresRemoval  bool
	RemovalServiceID *int64
}

// CategoryIncompatibility направленная пара несовместимых категорий.
// Симметрия не подразумевается: для взаимного исключения храним обе записи.
type CategoryIncompatibility struct {
	CategoryID             int64
	IncompatibleCategoryID int64
}
