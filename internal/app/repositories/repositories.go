package repositories

import "github.com/yit/registration/internal/store"

// Repositories bundles every repository for dependency injection.
type Repositories struct {
	StudentRepository      *StudentRepository
	FacultyRepository      *FacultyRepository
	CourseRepository       *CourseRepository
	RegistrationRepository *RegistrationRepository
}

// NewRepositories creates all repositories over one store.
func NewRepositories(s store.Store) *Repositories {
	return &Repositories{
		StudentRepository:      NewStudentRepository(s),
		FacultyRepository:      NewFacultyRepository(s),
		CourseRepository:       NewCourseRepository(s),
		RegistrationRepository: NewRegistrationRepository(s),
	}
}
