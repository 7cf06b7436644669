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

// FacultyService handles faculty listing and profile management.
type FacultyService struct {
	facultyRepo *repositories.FacultyRepository
	courseRepo  *repositories.CourseRepository
}

// NewFacultyService creates a new faculty service.
func NewFacultyService(facultyRepo *repositories.FacultyRepository, courseRepo *repositories.CourseRepository) *FacultyService {
	return &FacultyService{
		facultyRepo: facultyRepo,
		courseRepo:  courseRepo,
	}
}

// GetAll returns every faculty member with password hashes stripped.
func (s *FacultyService) GetAll(ctx context.Context) ([]*models.Faculty, error) {
	faculty, err := s.facultyRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing faculty: %w", err)
	}
	for _, f := range faculty {
		f.Password = ""
	}
	return faculty, nil
}

// GetByID returns one faculty member with the password hash stripped.
func (s *FacultyService) GetByID(ctx context.Context, id string) (*models.Faculty, error) {
	faculty, err := s.facultyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving faculty: %w", err)
	}
	if faculty == nil {
		return nil, apperrors.ErrFacultyNotFound
	}
	faculty.Password = ""
	return faculty, nil
}

// ListCourses returns the courses owned by the given faculty member, read
// from the course collection rather than the owned-course cache.
func (s *FacultyService) ListCourses(ctx context.Context, facultyID string) ([]*models.Course, error) {
	courses, err := s.courseRepo.ListByFaculty(ctx, facultyID)
	if err != nil {
		return nil, fmt.Errorf("error listing faculty courses: %w", err)
	}
	return courses, nil
}

// UpdateProfile applies the editable profile fields for the faculty member.
// A new password is re-hashed before persisting.
func (s *FacultyService) UpdateProfile(ctx context.Context, id string, req *dto.UpdateFacultyProfileRequest) (*models.Faculty, error) {
	patch := store.Record{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Department != nil {
		patch["department"] = *req.Department
	}
	if req.Designation != nil {
		patch["designation"] = *req.Designation
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

	faculty, err := s.facultyRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("error updating faculty: %w", err)
	}
	if faculty == nil {
		return nil, apperrors.ErrFacultyNotFound
	}
	faculty.Password = ""
	return faculty, nil
}
