package models

import "time"

// AttendanceStatus represents a daily attendance outcome
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceExcused AttendanceStatus = "EXCUSED"
)

// Attendance records one student's attendance for one class day.
// At most one record exists per (enrollment, date).
type Attendance struct {
	ID           int64            `json:"id" db:"id"`
	EnrollmentID int64            `json:"enrollmentId" db:"enrollment_id"`
	Date         time.Time        `json:"date" db:"date"`
	Status       AttendanceStatus `json:"status" db:"status"`
	Notes        *string          `json:"notes,omitempty" db:"notes"`
	MarkedByID   *int64           `json:"markedById,omitempty" db:"marked_by_id"`
	CreatedAt    time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time        `json:"updatedAt" db:"updated_at"`

	Enrollment *Enrollment `json:"enrollment,omitempty"` // Relation, no db tag
	MarkedBy   *Teacher    `json:"markedBy,omitempty"`   // Relation, no db tag
}

// CountsAsAttended reports whether the status counts toward attendance
// percentage (present and late both count).
func (s AttendanceStatus) CountsAsAttended() bool {
	return s == AttendancePresent || s == AttendanceLate
}

// AttendancePercentage computes attended/total as a percentage.
// Returns 0 when no records exist.
func AttendancePercentage(attended, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(attended) / float64(total) * 100
}
