package models

import "time"

// AssessmentType represents the kind of graded assessment
type AssessmentType string

const (
	AssessmentQuiz         AssessmentType = "QUIZ"
	AssessmentAssignment   AssessmentType = "ASSIGNMENT"
	AssessmentMidterm      AssessmentType = "MIDTERM"
	AssessmentFinal        AssessmentType = "FINAL"
	AssessmentProject      AssessmentType = "PROJECT"
	AssessmentPresentation AssessmentType = "PRESENTATION"
)

// Grade represents a single scored assessment within an enrollment.
// Percentage and letter grade are stored values recomputed on every write.
type Grade struct {
	ID             int64          `json:"id" db:"id"`
	EnrollmentID   int64          `json:"enrollmentId" db:"enrollment_id"`
	AssessmentType AssessmentType `json:"assessmentType" db:"assessment_type"`
	AssessmentName string         `json:"assessmentName" db:"assessment_name"`
	PointsEarned   float64        `json:"pointsEarned" db:"points_earned"`
	PointsPossible float64        `json:"pointsPossible" db:"points_possible"`
	Percentage     float64        `json:"percentage" db:"percentage"`
	LetterGrade    string         `json:"letterGrade" db:"letter_grade"`
	AssessmentDate time.Time      `json:"assessmentDate" db:"assessment_date"`
	Comments       *string        `json:"comments,omitempty" db:"comments"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`

	Enrollment *Enrollment `json:"enrollment,omitempty"` // Relation, no db tag
}

// ComputePercentage returns earned/possible as a percentage.
// Returns 0 when possible is not positive.
func ComputePercentage(earned, possible float64) float64 {
	if possible <= 0 {
		return 0
	}
	return earned / possible * 100
}

// LetterGrade maps a percentage to a letter using fixed thresholds.
func LetterGrade(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "F"
	}
}

// Recalculate refreshes the stored percentage and letter grade from the
// current points. Call before every insert or update.
func (g *Grade) Recalculate() {
	g.Percentage = ComputePercentage(g.PointsEarned, g.PointsPossible)
	g.LetterGrade = LetterGrade(g.Percentage)
}
