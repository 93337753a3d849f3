package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLetterGrade(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		want       string
	}{
		{"exactly 90 is A", 90, "A"},
		{"just below 90 is B", 89.99, "B"},
		{"exactly 80 is B", 80, "B"},
		{"just below 80 is C", 79.99, "C"},
		{"exactly 70 is C", 70, "C"},
		{"exactly 60 is D", 60, "D"},
		{"just below 60 is F", 59.99, "F"},
		{"zero is F", 0, "F"},
		{"full marks is A", 100, "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LetterGrade(tt.percentage))
		})
	}
}

func TestComputePercentage(t *testing.T) {
	assert.InDelta(t, 85.0, ComputePercentage(85, 100), 0.0001)
	assert.InDelta(t, 50.0, ComputePercentage(10, 20), 0.0001)
	assert.Equal(t, 0.0, ComputePercentage(10, 0))
	assert.Equal(t, 0.0, ComputePercentage(10, -5))
}

func TestGradeRecalculate(t *testing.T) {
	g := &Grade{PointsEarned: 85, PointsPossible: 100}
	g.Recalculate()

	assert.InDelta(t, 85.0, g.Percentage, 0.0001)
	assert.Equal(t, "B", g.LetterGrade)

	g.PointsEarned = 90
	g.Recalculate()
	assert.Equal(t, "A", g.LetterGrade)
}
