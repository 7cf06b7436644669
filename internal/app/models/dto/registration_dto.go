package dto

import "github.com/yit/registration/internal/app/models"

// RegistrationActionRequest is the body of register and drop calls.
type RegistrationActionRequest struct {
	CourseID string `json:"courseId" binding:"required"`
}

// StudentSummary is the denormalized student half of a populated registration.
type StudentSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StudentID string `json:"studentId"`
	Email     string `json:"email,omitempty"`
}

// CourseSummary is the denormalized course half of a populated registration.
type CourseSummary struct {
	ID             string          `json:"id"`
	CourseCode     string          `json:"courseCode"`
	CourseName     string          `json:"courseName"`
	Department     string          `json:"department"`
	Credits        int             `json:"credits"`
	Semester       int             `json:"semester"`
	Faculty        string          `json:"faculty"`
	FacultyName    string          `json:"facultyName"`
	TotalSeats     int             `json:"totalSeats"`
	AvailableSeats int             `json:"availableSeats"`
	Slot           string          `json:"slot"`
	Schedule       models.Schedule `json:"schedule"`
	Description    string          `json:"description"`
}

// PopulatedRegistration is a registration enriched with student and course
// summaries for client display.
type PopulatedRegistration struct {
	ID               string                    `json:"id"`
	Student          *StudentSummary           `json:"student"`
	Course           *CourseSummary            `json:"course"`
	Semester         int                       `json:"semester"`
	RegistrationDate string                    `json:"registrationDate"`
	Status           models.RegistrationStatus `json:"status"`
	CreatedAt        string                    `json:"createdAt,omitempty"`
	UpdatedAt        string                    `json:"updatedAt,omitempty"`
}

// NewCourseSummary builds the course half of a populated view.
func NewCourseSummary(course *models.Course) *CourseSummary {
	if course == nil {
		return nil
	}
	return &CourseSummary{
		ID:             course.ID,
		CourseCode:     course.CourseCode,
		CourseName:     course.CourseName,
		Department:     course.Department,
		Credits:        course.Credits,
		Semester:       course.Semester,
		Faculty:        course.Faculty,
		FacultyName:    course.FacultyName,
		TotalSeats:     course.TotalSeats,
		AvailableSeats: course.AvailableSeats,
		Slot:           course.Slot,
		Schedule:       course.Schedule,
		Description:    course.Description,
	}
}

// NewStudentSummary builds the student half of a populated view.
func NewStudentSummary(student *models.Student) *StudentSummary {
	if student == nil {
		return nil
	}
	return &StudentSummary{
		ID:        student.ID,
		Name:      student.Name,
		StudentID: student.StudentID,
	}
}
