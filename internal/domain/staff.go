package domain

// StaffStatus статус мастера
type StaffStatus string

const (
	StaffActive   StaffStatus = "active"
	StaffInactive StaffStatus = "inactive"
)

// Staff represents a salon technician
type Staff struct {
	ID         int64
	Name       string
	Status     StaffStatus
	IsBookable bool

	// ServiceIDs услуги, которые мастер умеет выполнять (many-to-many)
	ServiceIDs []int64
}

// IsSchedulable returns true if the staff member participates in scheduling
func (s *Staff) IsSchedulable() bool {
	return s.Status == StaffActive && s.IsBookable
}

// IsQualifiedFor returns true if the staff member can perform the service
func (s *Staff) IsQualifiedFor(serviceID int64) bool {
	for _, id := range s.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}
