package auth

import (
	"github.com/campusadmin/api/internal/pkg/apperrors"
)

// Action is something a principal tries to do
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ResourceKind identifies the entity an action targets
type ResourceKind string

const (
	ResourceDepartment ResourceKind = "department"
	ResourceTeacher    ResourceKind = "teacher"
	ResourceStudent    ResourceKind = "student"
	ResourceCourse     ResourceKind = "course"
	ResourceEnrollment ResourceKind = "enrollment"
	ResourceGrade      ResourceKind = "grade"
	ResourceAttendance ResourceKind = "attendance"
	ResourceAnalytics  ResourceKind = "analytics"
)

// Resource describes the target of an action. DepartmentID is the owning
// department when known; CourseTeacherID is the teacher of record for
// grade and attendance objects.
type Resource struct {
	Kind            ResourceKind
	DepartmentID    int64
	CourseTeacherID int64
}

// PrincipalKind tags the Principal variant
type PrincipalKind string

const (
	PrincipalAnonymous PrincipalKind = "anonymous"
	PrincipalSuperuser PrincipalKind = "superuser"
	PrincipalTeacher   PrincipalKind = "teacher"
	PrincipalStudent   PrincipalKind = "student"
)

// Principal is the authenticated caller. Exactly one variant applies;
// the ID fields are meaningful only for the teacher and student kinds.
type Principal struct {
	Kind         PrincipalKind
	UserID       int64
	TeacherID    int64
	DepartmentID int64
	StudentID    int64
}

// Anonymous returns the unauthenticated principal
func Anonymous() Principal {
	return Principal{Kind: PrincipalAnonymous}
}

// Superuser returns a superuser principal
func Superuser(userID int64) Principal {
	return Principal{Kind: PrincipalSuperuser, UserID: userID}
}

// TeacherPrincipal returns a teacher principal scoped to a department
func TeacherPrincipal(userID, teacherID, departmentID int64) Principal {
	return Principal{Kind: PrincipalTeacher, UserID: userID, TeacherID: teacherID, DepartmentID: departmentID}
}

// StudentPrincipal returns a student principal
func StudentPrincipal(userID, studentID int64) Principal {
	return Principal{Kind: PrincipalStudent, UserID: userID, StudentID: studentID}
}

// Authorize decides whether the principal may perform the action on the
// resource. It consults nothing but its arguments.
//
// Rules:
//   - reads are open to any authenticated principal
//   - writes require a superuser or a teacher
//   - grade and attendance writes additionally require the acting teacher
//     to be the teacher of record on the target course
//   - department-scoped writes require the acting teacher to belong to
//     the resource's department
func Authorize(p Principal, action Action, res Resource) error {
	if p.Kind == PrincipalAnonymous {
		return apperrors.ErrPermissionDenied
	}

	if action == ActionRead {
		return nil
	}

	switch p.Kind {
	case PrincipalSuperuser:
		return nil

	case PrincipalTeacher:
		switch res.Kind {
		case ResourceGrade, ResourceAttendance:
			if res.CourseTeacherID != 0 && res.CourseTeacherID != p.TeacherID {
				return apperrors.NewForbiddenError("only the course teacher can modify this record")
			}
			return nil
		default:
			if res.DepartmentID != 0 && res.DepartmentID != p.DepartmentID {
				return apperrors.NewForbiddenError("teachers can only modify records in their own department")
			}
			return nil
		}

	default:
		return apperrors.NewForbiddenError("students cannot modify records")
	}
}
