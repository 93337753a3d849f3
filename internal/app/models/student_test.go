package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStudentAge(t *testing.T) {
	tests := []struct {
		name string
		dob  time.Time
		now  time.Time
		want int
	}{
		{"day before birthday", date(2000, time.June, 15), date(2024, time.June, 14), 23},
		{"on birthday", date(2000, time.June, 15), date(2024, time.June, 15), 24},
		{"day after birthday", date(2000, time.June, 15), date(2024, time.June, 16), 24},
		{"earlier month", date(2000, time.June, 15), date(2024, time.March, 1), 23},
		{"later month", date(2000, time.June, 15), date(2024, time.November, 1), 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Student{DateOfBirth: tt.dob}
			assert.Equal(t, tt.want, s.Age(tt.now))
		})
	}
}

func TestStudentFullName(t *testing.T) {
	s := &Student{FirstName: "Ada", LastName: "Lovelace"}
	assert.Equal(t, "Ada Lovelace", s.FullName())
}
