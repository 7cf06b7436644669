package services

import (
	"context"
	"fmt"

	"github.com/yit/registration/internal/app/models"
	"github.com/yit/registration/internal/app/models/dto"
	"github.com/yit/registration/internal/app/repositories"
	"github.com/yit/registration/internal/pkg/apperrors"
	"github.com/yit/registration/internal/pkg/auth"
	"github.com/yit/registration/internal/store"
)

// StudentService handles student listing and profile management.
type StudentService struct {
	studentRepo *repositories.StudentRepository
}

// NewStudentService creates a new student service.
func NewStudentService(studentRepo *repositories.StudentRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo}
}

// GetAll returns every student with password hashes stripped.
func (s *StudentService) GetAll(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	for _, student := range students {
		student.Password = ""
	}
	return students, nil
}

// GetByID returns one student with the password hash stripped.
func (s *StudentService) GetByID(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}
	student.Password = ""
	return student, nil
}

// UpdateProfile applies the editable profile fields for the student. A new
// password is re-hashed before persisting.
func (s *StudentService) UpdateProfile(ctx context.Context, id string, req *dto.UpdateStudentProfileRequest) (*models.Student, error) {
	patch := store.Record{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Department != nil {
		patch["department"] = *req.Department
	}
	if req.Semester != nil {
		patch["semester"] = *req.Semester
	}
	if req.Phone != nil {
		patch["phone"] = *req.Phone
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		patch["password"] = hash
	}

	student, err := s.studentRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("error updating student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}
	student.Password = ""
	return student, nil
}
