package models

// Schedule describes when a course meets.
type Schedule struct {
	Days []string `json:"days"`
	Time string   `json:"time"`
}

// Course represents a course offering. AvailableSeats is derived state: it
// always equals TotalSeats minus the number of active registrations, and only
// the registration engine may move it.
type Course struct {
	ID             string   `json:"id"`
	CourseCode     string   `json:"courseCode"`
	CourseName     string   `json:"courseName"`
	Department     string   `json:"department"`
	Credits        int      `json:"credits"`
	Semester       int      `json:"semester"`
	Faculty        string   `json:"faculty"` // owning faculty record id
	FacultyName    string   `json:"facultyName"`
	TotalSeats     int      `json:"totalSeats"`
	AvailableSeats int      `json:"availableSeats"`
	Slot           string   `json:"slot"`
	Schedule       Schedule `json:"schedule"`
	Description    string   `json:"description"`
	CreatedAt      string   `json:"createdAt,omitempty"`
	UpdatedAt      string   `json:"updatedAt,omitempty"`
}
