package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func TestGrid(t *testing.T) {
	tests := []struct {
		name     string
		day      func(*testing.T) domain.DaySchedule
		step     int
		required int
		want     []int
	}{
		{
			name:     "full day with 30 minute step",
			day:      func(t *testing.T) domain.DaySchedule { return openDay(t, "09:00", "11:00") },
			step:     30,
			required: 30,
			want:     []int{540, 570, 600, 630},
		},
		{
			name:     "candidate dropped when service does not fit before close",
			day:      func(t *testing.T) domain.DaySchedule { return openDay(t, "09:00", "11:00") },
			step:     30,
			required: 45,
			want:     []int{540, 570, 600},
		},
		{
			name:     "empty when required exceeds the whole day",
			day:      func(t *testing.T) domain.DaySchedule { return openDay(t, "09:00", "10:00") },
			step:     30,
			required: 90,
			want:     []int{},
		},
		{
			name:     "closed day yields no candidates",
			day:      func(t *testing.T) domain.DaySchedule { return domain.DaySchedule{IsOpen: false} },
			step:     30,
			required: 30,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := NewSnapshot(testDate, tt.day(t), tt.step, nil, nil, nil)
			got := snap.grid(tt.required)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
