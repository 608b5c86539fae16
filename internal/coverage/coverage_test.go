package coverage

import (
	"testing"

	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredStaff(t *testing.T) {
	tests := []struct {
		headcount int
		want      int
	}{
		{0, 0},
		{1, 1},
		{7, 1},
		{8, 1},
		{9, 2},
		{16, 2},
		{17, 3},
		{400, 50},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RequiredStaff(tt.headcount, 8), "headcount %d", tt.headcount)
	}
}

func TestRequiredStaff_MatchesCeil(t *testing.T) {
	for h := 0; h <= 200; h++ {
		want := h / 8
		if h%8 != 0 {
			want++
		}
		require.Equal(t, want, RequiredStaff(h, 8))
	}
}

func TestRequiredStaff_FallsBackToDefaultCapacity(t *testing.T) {
	assert.Equal(t, 2, RequiredStaff(9, 0))
	assert.Equal(t, 0, RequiredStaff(-5, 8))
}

func TestEvaluate(t *testing.T) {
	assert.Equal(t, Red, Evaluate(3, 10))
	assert.Equal(t, Orange, Evaluate(5, 10))
	assert.Equal(t, Orange, Evaluate(9, 10))
	assert.Equal(t, Green, Evaluate(10, 10))
	assert.Equal(t, Green, Evaluate(12, 10))
	// нечетный порог: 1 < 3/2 в вещественной арифметике
	assert.Equal(t, Red, Evaluate(1, 3))
	assert.Equal(t, Orange, Evaluate(2, 3))
	// ровно половина уже не красная
	assert.Equal(t, Red, Evaluate(2, 5))
	assert.Equal(t, Orange, Evaluate(3, 5))
}

func TestEvaluate_ZeroRequiredIsGreen(t *testing.T) {
	for _, assigned := range []int{0, 1, 5} {
		assert.Equal(t, Green, Evaluate(assigned, 0))
	}
}

func TestReport_IsDeterministic(t *testing.T) {
	calc := NewCalculator(8)
	zones := []models.Zone{{ID: "north", Name: "North"}}
	shifts := []models.ShiftAssignment{
		{ID: "sh1", ZoneID: "north", Type: models.ShiftRed, AssignedStaffIDs: []string{"s1", "s2"}},
	}
	headcounts := map[string]int{"north": 40}
	types := []models.ShiftType{models.ShiftRed, models.ShiftGreen}

	first := calc.Report(zones, shifts, headcounts, types)
	second := calc.Report(zones, shifts, headcounts, types)
	require.Equal(t, first, second)
	require.Len(t, first, 2)

	assert.Equal(t, 5, first[0].Required)
	assert.Equal(t, 2, first[0].Assigned)
	assert.Equal(t, Red, first[0].Level)

	assert.Equal(t, models.ShiftGreen, first[1].ShiftType)
	assert.Equal(t, 0, first[1].Assigned)
	assert.Empty(t, first[1].ShiftID)
}
