package dto

// UpdateStudentProfileRequest carries the editable student profile fields.
// A non-empty password is re-hashed before persisting.
type UpdateStudentProfileRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=2,max=100"`
	Department *string `json:"department"`
	Semester   *int    `json:"semester" binding:"omitempty,min=1,max=8"`
	Phone      *string `json:"phone"`
	Password   *string `json:"password" binding:"omitempty,min=8"`
}

// UpdateFacultyProfileRequest carries the editable faculty profile fields.
type UpdateFacultyProfileRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Department  *string `json:"department"`
	Designation *string `json:"designation"`
	Phone       *string `json:"phone"`
	Password    *string `json:"password" binding:"omitempty,min=8"`
}
