package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func comboCatalog() map[int64]*domain.Service {
	manicure := svc(1, 30, 10)
	pedicure := svc(2, 45, 10)
	design := svc(3, 20, 0)

	combo := svc(10, 0, 0)
	combo.AssociatedServiceIDs = []int64{1, 2}

	return map[int64]*domain.Service{
		1:  manicure,
		2:  pedicure,
		3:  design,
		10: combo,
	}
}

func TestExpand(t *testing.T) {
	catalog := comboCatalog()

	tests := []struct {
		name    string
		input   []int64
		want    []int64
		wantErr error
	}{
		{
			name:  "plain services pass through",
			input: []int64{1, 3},
			want:  []int64{1, 3},
		},
		{
			name:  "combo is substituted in place",
			input: []int64{10},
			want:  []int64{1, 2},
		},
		{
			name:  "combo members are deduplicated against explicit selection",
			input: []int64{1, 10, 3},
			want:  []int64{1, 2, 3},
		},
		{
			name:    "unknown service id",
			input:   []int64{1, 99},
			wantErr: ErrServiceUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.input, catalog)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandRejectsNestedCombo(t *testing.T) {
	catalog := comboCatalog()

	outer := svc(20, 0, 0)
	outer.AssociatedServiceIDs = []int64{10, 3}
	catalog[20] = outer

	_, err := Expand([]int64{20}, catalog)
	require.ErrorIs(t, err, ErrNestedCombo)
}
