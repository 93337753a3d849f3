package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttendancePercentage(t *testing.T) {
	assert.Equal(t, 0.0, AttendancePercentage(0, 0))
	assert.InDelta(t, 100.0, AttendancePercentage(10, 10), 0.0001)
	assert.InDelta(t, 75.0, AttendancePercentage(3, 4), 0.0001)
}

func TestCountsAsAttended(t *testing.T) {
	assert.True(t, AttendancePresent.CountsAsAttended())
	assert.True(t, AttendanceLate.CountsAsAttended())
	assert.False(t, AttendanceAbsent.CountsAsAttended())
	assert.False(t, AttendanceExcused.CountsAsAttended())
}
