package models

// Role identifies the kind of authenticated account.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
)

// Valid reports whether the role is one the application knows.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleFaculty
}
