package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на получение доступных слотов одной услуги
type Request struct {
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для получения слотов (без времени)
	StaffID   *int64    // Предпочитаемый мастер (опционально, мягкое предпочтение)
}

// Settings параметры поиска, приходящие из конфигурации приложения
type Settings struct {
	SearchBudget  time.Duration
	StaffFallback bool
}

// Response модель ответа со слотами, сгруппированными по периодам дня.
// Невыполнимость - значение, не ошибка: при пустом списке квалифицированных
// мастеров Periods пуст, а UnassignableServiceIDs перечисляет услуги,
// которые некому выполнять.
type Response struct {
	Date                   time.Time     // Дата, на которую запрашивались слоты
	ServiceID              int64         // ID услуги
	Periods                []PeriodGroup // Слоты по периодам: утро, день, вечер
	Truncated              bool          // Поиск обрезан бюджетом, список может быть неполным
	UnassignableServiceIDs []int64       // Услуги без квалифицированных мастеров
}

// PeriodGroup группа слотов одного периода дня
type PeriodGroup struct {
	Period string // "morning", "afternoon", "evening"
	Slots  []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString // Время начала (например, "10:00")
	EndTime   types.TimeString // Конец занятости мастера с учетом buffer
	StaffID   int64            // Назначенный мастер
}
