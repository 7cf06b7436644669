package dto

// RegisterStudentRequest is the student sign-up payload.
type RegisterStudentRequest struct {
	StudentID  string `json:"studentId" binding:"required"`
	Name       string `json:"name" binding:"required,min=2,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Department string `json:"department" binding:"required"`
	Semester   int    `json:"semester" binding:"required,min=1,max=8"`
	Phone      string `json:"phone"`
}

// RegisterFacultyRequest is the faculty sign-up payload.
type RegisterFacultyRequest struct {
	FacultyID   string `json:"facultyId" binding:"required"`
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Department  string `json:"department" binding:"required"`
	Designation string `json:"designation"`
	Phone       string `json:"phone"`
}

// LoginRequest authenticates an existing account. Role selects which
// collection the email is looked up in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=student faculty"`
}

// AuthUser is the account summary returned alongside a token.
type AuthUser struct {
	ID        string `json:"id"`
	StudentID string `json:"studentId,omitempty"`
	FacultyID string `json:"facultyId,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// AuthResponse is returned by login and both register endpoints.
type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}
