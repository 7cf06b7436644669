package services

import (
	"context"
	"fmt"

	"github.com/yit/registration/internal/app/models"
	"github.com/yit/registration/internal/app/models/dto"
	"github.com/yit/registration/internal/app/repositories"
	"github.com/yit/registration/internal/pkg/apperrors"
	"github.com/yit/registration/internal/pkg/validation"
	"github.com/yit/registration/internal/store"
)

// CourseService handles the course catalog and faculty course management.
type CourseService struct {
	courseRepo       *repositories.CourseRepository
	facultyRepo      *repositories.FacultyRepository
	registrationRepo *repositories.RegistrationRepository
}

// NewCourseService creates a new course service.
func NewCourseService(
	courseRepo *repositories.CourseRepository,
	facultyRepo *repositories.FacultyRepository,
	registrationRepo *repositories.RegistrationRepository,
) *CourseService {
	return &CourseService{
		courseRepo:       courseRepo,
		facultyRepo:      facultyRepo,
		registrationRepo: registrationRepo,
	}
}

// List returns catalog courses matching the filter, each with its faculty
// reference populated.
func (s *CourseService) List(ctx context.Context, filter dto.CourseFilter) ([]*dto.CourseResponse, error) {
	courses, err := s.courseRepo.List(ctx, repositories.CourseFilter{
		Semester:   filter.Semester,
		Department: filter.Department,
		Slot:       filter.Slot,
		Search:     filter.Search,
	})
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	out := make([]*dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		resp := &dto.CourseResponse{Course: *course}
		if ref, err := s.facultyRef(ctx, course.Faculty, false); err == nil {
			resp.FacultyInfo = ref
		} else {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// GetByID retrieves one course with its faculty reference populated,
// including the designation.
func (s *CourseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	resp := &dto.CourseResponse{Course: *course}
	ref, err := s.facultyRef(ctx, course.Faculty, true)
	if err != nil {
		return nil, err
	}
	resp.FacultyInfo = ref
	return resp, nil
}

func (s *CourseService) facultyRef(ctx context.Context, facultyID string, withDesignation bool) (*dto.FacultyRef, error) {
	if facultyID == "" {
		return nil, nil
	}
	faculty, err := s.facultyRepo.GetByID(ctx, facultyID)
	if err != nil {
		return nil, fmt.Errorf("error resolving faculty: %w", err)
	}
	if faculty == nil {
		return nil, nil
	}
	ref := &dto.FacultyRef{
		Name:       faculty.Name,
		Email:      faculty.Email,
		Department: faculty.Department,
	}
	if withDesignation {
		ref.Designation = faculty.Designation
	}
	return ref, nil
}

// Create stores a new course owned by the given faculty member. Available
// seats start at the configured total; the course id is appended to the
// owner's course cache.
func (s *CourseService) Create(ctx context.Context, facultyUserID string, req *dto.CreateCourseRequest) (*models.Course, error) {
	if !validation.IsValidSlot(req.Slot) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "slot must be a single letter A-F")
	}

	faculty, err := s.facultyRepo.GetByID(ctx, facultyUserID)
	if err != nil {
		return nil, fmt.Errorf("error resolving faculty: %w", err)
	}
	if faculty == nil {
		return nil, apperrors.ErrFacultyNotFound
	}

	course, err := s.courseRepo.Create(ctx, &models.Course{
		CourseCode:     req.CourseCode,
		CourseName:     req.CourseName,
		Department:     req.Department,
		Credits:        req.Credits,
		Semester:       req.Semester,
		Faculty:        faculty.ID,
		FacultyName:    faculty.Name,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: req.TotalSeats,
		Slot:           req.Slot,
		Schedule:       req.Schedule,
		Description:    req.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	courses := append(append([]string{}, faculty.Courses...), course.ID)
	if err := s.facultyRepo.SetCourses(ctx, faculty.ID, courses); err != nil {
		return nil, fmt.Errorf("error updating faculty course cache: %w", err)
	}

	return course, nil
}

// Update edits a course. Only the owning faculty member may edit it. When
// totalSeats changes, availableSeats is re-derived from the active
// registration count so the seat invariant holds rather than trusting the
// previous cached value.
func (s *CourseService) Update(ctx context.Context, facultyUserID, courseID string, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}
	if course.Faculty != facultyUserID {
		return nil, apperrors.NewForbiddenError("not authorized to update this course")
	}

	patch := store.Record{}
	if req.CourseCode != nil {
		patch["courseCode"] = *req.CourseCode
	}
	if req.CourseName != nil {
		patch["courseName"] = *req.CourseName
	}
	if req.Department != nil {
		patch["department"] = *req.Department
	}
	if req.Credits != nil {
		patch["credits"] = *req.Credits
	}
	if req.Semester != nil {
		patch["semester"] = *req.Semester
	}
	if req.Slot != nil {
		if !validation.IsValidSlot(*req.Slot) {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "slot must be a single letter A-F")
		}
		patch["slot"] = *req.Slot
	}
	if req.Schedule != nil {
		patch["schedule"] = *req.Schedule
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.TotalSeats != nil && *req.TotalSeats != course.TotalSeats {
		activeCount, err := s.registrationRepo.CountActiveByCourse(ctx, courseID)
		if err != nil {
			return nil, fmt.Errorf("error counting registrations: %w", err)
		}
		available := *req.TotalSeats - activeCount
		if available < 0 {
			available = 0
		}
		patch["totalSeats"] = *req.TotalSeats
		patch["availableSeats"] = available
	}

	updated, err := s.courseRepo.Update(ctx, courseID, patch)
	if err != nil {
		return nil, fmt.Errorf("error updating course: %w", err)
	}
	if updated == nil {
		return nil, apperrors.ErrCourseNotFound
	}
	return updated, nil
}

// Delete removes a course. Only the owning faculty member may delete it; the
// course id is also removed from the owner's course cache.
func (s *CourseService) Delete(ctx context.Context, facultyUserID, courseID string) error {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return fmt.Errorf("error retrieving course: %w", err)
	}
	if course == nil {
		return apperrors.ErrCourseNotFound
	}
	if course.Faculty != facultyUserID {
		return apperrors.NewForbiddenError("not authorized to delete this course")
	}

	if _, err := s.courseRepo.Delete(ctx, courseID); err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	faculty, err := s.facultyRepo.GetByID(ctx, course.Faculty)
	if err != nil {
		return fmt.Errorf("error resolving faculty: %w", err)
	}
	if faculty != nil {
		courses := make([]string, 0, len(faculty.Courses))
		for _, id := range faculty.Courses {
			if id != courseID {
				courses = append(courses, id)
			}
		}
		if err := s.facultyRepo.SetCourses(ctx, faculty.ID, courses); err != nil {
			return fmt.Errorf("error updating faculty course cache: %w", err)
		}
	}
	return nil
}
