package domain

// Service represents a bookable salon service
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	BufferMinutes   int // уборка/подготовка после услуги
	CategoryID      int64
	Price           *float64
	IsActive        bool

	// AssociatedServiceIDs непустой только для комбо-услуг: одна позиция
	// в каталоге, раскрывающаяся в несколько элементарных услуг
	AssociatedServiceIDs []int64
}

// IsCombo returns true if the service is a combo wrapping other services
func (s *Service) IsCombo() bool {
	return len(s.AssociatedServiceIDs) > 0
}

// TotalMinutes returns the staff time the service occupies, buffer included
func (s *Service) TotalMinutes() int {
	return s.DurationMinutes + s.BufferMinutes
}
