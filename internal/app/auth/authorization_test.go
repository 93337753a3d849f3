package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusadmin/api/internal/pkg/apperrors"
)

func TestAuthorize(t *testing.T) {
	superuser := Superuser(1)
	teacher := TeacherPrincipal(2, 10, 100)
	student := StudentPrincipal(3, 20)
	anon := Anonymous()

	tests := []struct {
		name      string
		principal Principal
		action    Action
		resource  Resource
		wantErr   bool
	}{
		{"anonymous read denied", anon, ActionRead, Resource{Kind: ResourceCourse}, true},
		{"student read allowed", student, ActionRead, Resource{Kind: ResourceCourse}, false},
		{"teacher read allowed", teacher, ActionRead, Resource{Kind: ResourceGrade}, false},

		{"student write denied", student, ActionCreate, Resource{Kind: ResourceEnrollment}, true},
		{"superuser write allowed", superuser, ActionDelete, Resource{Kind: ResourceDepartment, DepartmentID: 999}, false},

		{"teacher writes own department course", teacher, ActionUpdate, Resource{Kind: ResourceCourse, DepartmentID: 100}, false},
		{"teacher writes other department course", teacher, ActionUpdate, Resource{Kind: ResourceCourse, DepartmentID: 200}, true},
		{"teacher writes student in own department", teacher, ActionCreate, Resource{Kind: ResourceStudent, DepartmentID: 100}, false},

		{"course teacher marks grade", teacher, ActionCreate, Resource{Kind: ResourceGrade, CourseTeacherID: 10}, false},
		{"other teacher marks grade", teacher, ActionCreate, Resource{Kind: ResourceGrade, CourseTeacherID: 11}, true},
		{"course teacher marks attendance", teacher, ActionUpdate, Resource{Kind: ResourceAttendance, CourseTeacherID: 10}, false},
		{"other teacher marks attendance", teacher, ActionUpdate, Resource{Kind: ResourceAttendance, CourseTeacherID: 11}, true},
		{"superuser marks grade on any course", superuser, ActionCreate, Resource{Kind: ResourceGrade, CourseTeacherID: 11}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.principal, tt.action, tt.resource)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
