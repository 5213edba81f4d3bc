package scheduling

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Preference пожелание клиента по мастеру.
// Если указан ServiceID, пара мастер-услуга пинится жестко: услуга либо
// достается этому мастеру, либо не назначается вовсе. Без ServiceID
// предпочтение мягкое: мастер ставится первым кандидатом для всех услуг,
// которые он умеет выполнять.
type Preference struct {
	StaffID   int64
	ServiceID *int64
}

// Options параметры поиска
type Options struct {
	// PermutationCap максимум элементарных услуг, для которых перебираются
	// все перестановки. Сверх него ищется только канонический порядок,
	// а результат помечается Truncated.
	PermutationCap int

	// Deadline бюджет поиска. Проверяется между перестановками через Now,
	// при превышении возвращается частичный результат с Truncated.
	Deadline time.Time
	Now      func() time.Time

	// StaffFallback аварийный режим совместимости: услуга без
	// квалифицированных мастеров получает в кандидаты всех доступных.
	// По умолчанию выключен - такая услуга считается неназначаемой.
	StaffFallback bool

	Preference *Preference
}

// DefaultOptions возвращает параметры поиска по умолчанию
func DefaultOptions(now time.Time) Options {
	return Options{
		PermutationCap: domain.MaxPermutationServices,
		Deadline:       now.Add(domain.DefaultSearchBudget),
		Now:            time.Now,
	}
}

func (o *Options) clock() func() time.Time {
	if o.Now != nil {
		return o.Now
	}
	return time.Now
}

func (o *Options) expired() bool {
	if o.Deadline.IsZero() {
		return false
	}
	return o.clock()().After(o.Deadline)
}

func (o *Options) permutationCap() int {
	if o.PermutationCap <= 0 {
		return domain.MaxPermutationServices
	}
	return o.PermutationCap
}

// pinnedStaff возвращает ID мастера, жестко закрепленного за услугой
func (o *Options) pinnedStaff(serviceID int64) (int64, bool) {
	if o.Preference == nil || o.Preference.ServiceID == nil {
		return 0, false
	}
	if *o.Preference.ServiceID != serviceID {
		return 0, false
	}
	return o.Preference.StaffID, true
}

// softPreferred возвращает ID мастера мягкого предпочтения
func (o *Options) softPreferred() (int64, bool) {
	if o.Preference == nil || o.Preference.ServiceID != nil {
		return 0, false
	}
	return o.Preference.StaffID, true
}
