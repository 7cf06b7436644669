package models

// RegistrationStatus is the lifecycle state of a registration record.
type RegistrationStatus string

const (
	StatusRegistered RegistrationStatus = "registered"
	StatusDropped    RegistrationStatus = "dropped"
)

// Registration records one enrollment of a student in a course. Records are
// never deleted; dropping flips Status to dropped and a later re-registration
// creates a fresh record, giving an append-only enrollment log.
type Registration struct {
	ID               string             `json:"id"`
	Student          string             `json:"student"` // student record id
	Course           string             `json:"course"`  // course record id
	Semester         int                `json:"semester"`
	RegistrationDate string             `json:"registrationDate"`
	Status           RegistrationStatus `json:"status"`
	CreatedAt        string             `json:"createdAt,omitempty"`
	UpdatedAt        string             `json:"updatedAt,omitempty"`
}

// Active reports whether the registration currently holds a seat.
func (r *Registration) Active() bool {
	return r.Status == StatusRegistered
}
