package models

// Faculty is a faculty account. Courses caches the ids of courses this
// faculty owns.
type Faculty struct {
	ID          string   `json:"id"`
	FacultyID   string   `json:"facultyId"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Password    string   `json:"password,omitempty"` // bcrypt hash, stripped from responses
	Department  string   `json:"department"`
	Designation string   `json:"designation"`
	Phone       string   `json:"phone,omitempty"`
	Courses     []string `json:"courses"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}
