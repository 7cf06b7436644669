package dto

import "github.com/yit/registration/internal/app/models"

// CreateCourseRequest is the faculty payload for creating a course.
type CreateCourseRequest struct {
	CourseCode  string          `json:"courseCode" binding:"required"`
	CourseName  string          `json:"courseName" binding:"required"`
	Department  string          `json:"department" binding:"required"`
	Credits     int             `json:"credits" binding:"required,min=1,max=6"`
	Semester    int             `json:"semester" binding:"required,min=1,max=8"`
	TotalSeats  int             `json:"totalSeats" binding:"required,min=1"`
	Slot        string          `json:"slot" binding:"required"`
	Schedule    models.Schedule `json:"schedule"`
	Description string          `json:"description"`
}

// UpdateCourseRequest carries the editable course fields. Pointer fields
// distinguish "absent" from zero values so partial edits work.
type UpdateCourseRequest struct {
	CourseCode  *string          `json:"courseCode"`
	CourseName  *string          `json:"courseName"`
	Department  *string          `json:"department"`
	Credits     *int             `json:"credits" binding:"omitempty,min=1,max=6"`
	Semester    *int             `json:"semester" binding:"omitempty,min=1,max=8"`
	TotalSeats  *int             `json:"totalSeats" binding:"omitempty,min=1"`
	Slot        *string          `json:"slot"`
	Schedule    *models.Schedule `json:"schedule"`
	Description *string          `json:"description"`
}

// CourseFilter narrows the public catalog listing. Search matches course
// name, course code, or faculty name case-insensitively.
type CourseFilter struct {
	Semester   *int
	Department string
	Slot       string
	Search     string
}

// FacultyRef is the populated faculty reference embedded in a course view.
type FacultyRef struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	Designation string `json:"designation,omitempty"`
}

// CourseResponse is a course with its faculty reference populated.
type CourseResponse struct {
	models.Course
	FacultyInfo *FacultyRef `json:"facultyInfo,omitempty"`
}
