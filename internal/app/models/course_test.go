package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseAvailableSlots(t *testing.T) {
	c := &Course{MaxStudents: 30, EnrolledCount: 12}
	assert.Equal(t, 18, c.AvailableSlots())

	c.EnrolledCount = 30
	assert.Equal(t, 0, c.AvailableSlots())

	// Overflow past capacity still reports zero
	c.EnrolledCount = 35
	assert.Equal(t, 0, c.AvailableSlots())
}
