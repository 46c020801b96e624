package postgresql

import (
	"testing"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePreferences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *employee.Preferences
	}{
		{name: "empty", raw: "", want: nil},
		{name: "json null", raw: "null", want: nil},
		{name: "malformed", raw: `{"available_days": "monday"`, want: nil},
		{name: "wrong shape", raw: `{"available_days": "monday"}`, want: nil},
		{
			name: "valid",
			raw:  `{"preferred_shift_types":["morning"],"available_days":[1,2]}`,
			want: &employee.Preferences{
				PreferredShiftTypes: []shift.ShiftType{shift.ShiftTypeMorning},
				AvailableDays:       []int{1, 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodePreferences("e1", []byte(tt.raw)))
		})
	}
}

func TestDecodePreferences_MalformedKeepsPermissiveProfile(t *testing.T) {
	emp := employee.Employee{ID: "e1", Preferences: decodePreferences("e1", []byte("{not json"))}
	require.Nil(t, emp.Preferences)

	p := emp.Profile()
	assert.Equal(t, [7]bool{true, true, true, true, true, true, true}, p.AvailableDays)
	assert.Len(t, p.ShiftTypes, 2)
}
