package models

// Student is a student account. RegisteredCourses is a denormalized cache of
// the course ids with an active registration; the registration log is the
// source of truth.
type Student struct {
	ID                string   `json:"id"`
	StudentID         string   `json:"studentId"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Password          string   `json:"password,omitempty"` // bcrypt hash, stripped from responses
	Department        string   `json:"department"`
	Semester          int      `json:"semester"`
	Phone             string   `json:"phone,omitempty"`
	RegisteredCourses []string `json:"registeredCourses"`
	CreatedAt         string   `json:"createdAt,omitempty"`
	UpdatedAt         string   `json:"updatedAt,omitempty"`
}
