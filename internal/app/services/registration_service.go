package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yit/registration/internal/app/models"
	"github.com/yit/registration/internal/app/models/dto"
	"github.com/yit/registration/internal/app/repositories"
	"github.com/yit/registration/internal/pkg/apperrors"
)

// defaultOperationTimeout bounds a register/drop operation when the caller
// supplied no deadline of its own.
const defaultOperationTimeout = 10 * time.Second

// RegistrationService is the registration engine. It is the sole writer of
// cross-entity consistency: the course seat counter, the registration log,
// and the student's registered-course cache only change here.
//
// A per-course mutex serializes register/drop for one course, so the seat
// availability check and the seat decrement form a single unit even under
// concurrent requests. Operations on different courses proceed in parallel.
type RegistrationService struct {
	registrationRepo *repositories.RegistrationRepository
	courseRepo       *repositories.CourseRepository
	studentRepo      *repositories.StudentRepository
	logger           zerolog.Logger

	mu          sync.Mutex
	courseLocks map[string]*sync.Mutex
}

// NewRegistrationService creates the registration engine.
func NewRegistrationService(
	registrationRepo *repositories.RegistrationRepository,
	courseRepo *repositories.CourseRepository,
	studentRepo *repositories.StudentRepository,
	logger zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		registrationRepo: registrationRepo,
		courseRepo:       courseRepo,
		studentRepo:      studentRepo,
		logger:           logger,
		courseLocks:      make(map[string]*sync.Mutex),
	}
}

// lockCourse returns the mutex serializing operations for one course id.
func (s *RegistrationService) lockCourse(courseID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.courseLocks[courseID]
	if !ok {
		lock = &sync.Mutex{}
		s.courseLocks[courseID] = lock
	}
	return lock
}

func withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, defaultOperationTimeout)
}

// Register enrolls a student in a course. It fails with a not-found error
// when either party is missing and with a conflict error when the course is
// full, the student already holds an active registration for it, or another
// active registration occupies the same slot in the same semester.
func (s *RegistrationService) Register(ctx context.Context, studentID, courseID string) (*dto.PopulatedRegistration, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()

	lock := s.lockCourse(courseID)
	lock.Lock()
	defer lock.Unlock()

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error resolving student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error resolving course: %w", err)
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	if course.AvailableSeats <= 0 {
		return nil, apperrors.ErrNoSeatsAvailable
	}

	existing, err := s.registrationRepo.FindActive(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing registration: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrAlreadyRegistered
	}

	if err := s.checkSlotConflict(ctx, studentID, course); err != nil {
		return nil, err
	}

	registration, err := s.registrationRepo.Create(ctx, &models.Registration{
		Student:          studentID,
		Course:           courseID,
		Semester:         course.Semester,
		RegistrationDate: time.Now().UTC().Format(time.RFC3339),
		Status:           models.StatusRegistered,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating registration: %w", err)
	}

	course.AvailableSeats--
	if err := s.courseRepo.SetAvailableSeats(ctx, courseID, course.AvailableSeats); err != nil {
		return nil, fmt.Errorf("error updating course seats: %w", err)
	}

	if err := s.addToStudentCache(ctx, student, courseID); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("studentId", studentID).
		Str("courseId", courseID).
		Str("registrationId", registration.ID).
		Msg("Student registered for course")

	return s.populate(registration, student, course), nil
}

// checkSlotConflict fails when any of the student's active registrations
// resolves to a course sharing (slot, semester) with the target course. The
// comparison uses the target course's semester, not the student's profile
// semester.
func (s *RegistrationService) checkSlotConflict(ctx context.Context, studentID string, target *models.Course) error {
	active, err := s.registrationRepo.ListActiveByStudent(ctx, studentID)
	if err != nil {
		return fmt.Errorf("error loading student registrations: %w", err)
	}

	for _, reg := range active {
		regCourse, err := s.courseRepo.GetByID(ctx, reg.Course)
		if err != nil {
			return fmt.Errorf("error resolving registered course: %w", err)
		}
		if regCourse == nil {
			continue
		}
		if regCourse.Slot == target.Slot && regCourse.Semester == target.Semester {
			return apperrors.ErrSlotConflict
		}
	}
	return nil
}

func (s *RegistrationService) addToStudentCache(ctx context.Context, student *models.Student, courseID string) error {
	for _, id := range student.RegisteredCourses {
		if id == courseID {
			return nil
		}
	}
	courses := append(append([]string{}, student.RegisteredCourses...), courseID)
	if err := s.studentRepo.SetRegisteredCourses(ctx, student.ID, courses); err != nil {
		return fmt.Errorf("error updating student course cache: %w", err)
	}
	return nil
}

// Drop releases the student's seat in a course. The registration record is
// retained with its status flipped to dropped; the freed seat is returned to
// the course, clamped so availableSeats never exceeds totalSeats.
func (s *RegistrationService) Drop(ctx context.Context, studentID, courseID string) error {
	ctx, cancel := withDeadline(ctx)
	defer cancel()

	lock := s.lockCourse(courseID)
	lock.Lock()
	defer lock.Unlock()

	registration, err := s.registrationRepo.FindActive(ctx, studentID, courseID)
	if err != nil {
		return fmt.Errorf("error finding registration: %w", err)
	}
	if registration == nil {
		return apperrors.ErrRegistrationNotFound
	}

	if _, err := s.registrationRepo.SetStatus(ctx, registration.ID, models.StatusDropped); err != nil {
		return fmt.Errorf("error updating registration status: %w", err)
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return fmt.Errorf("error resolving course: %w", err)
	}
	if course != nil {
		seats := course.AvailableSeats + 1
		if seats > course.TotalSeats {
			seats = course.TotalSeats
		}
		if err := s.courseRepo.SetAvailableSeats(ctx, courseID, seats); err != nil {
			return fmt.Errorf("error updating course seats: %w", err)
		}
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return fmt.Errorf("error resolving student: %w", err)
	}
	if student != nil {
		courses := make([]string, 0, len(student.RegisteredCourses))
		for _, id := range student.RegisteredCourses {
			if id != courseID {
				courses = append(courses, id)
			}
		}
		if err := s.studentRepo.SetRegisteredCourses(ctx, student.ID, courses); err != nil {
			return fmt.Errorf("error updating student course cache: %w", err)
		}
	}

	s.logger.Info().
		Str("studentId", studentID).
		Str("courseId", courseID).
		Str("registrationId", registration.ID).
		Msg("Student dropped course")

	return nil
}

// ListActiveForStudent returns the student's active registrations as
// populated views, derived from the registration log rather than the
// student's cached course list. Registrations whose course no longer exists
// are silently skipped.
func (s *RegistrationService) ListActiveForStudent(ctx context.Context, studentID string) ([]*dto.PopulatedRegistration, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error resolving student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	active, err := s.registrationRepo.ListActiveByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error loading registrations: %w", err)
	}

	out := make([]*dto.PopulatedRegistration, 0, len(active))
	for _, reg := range active {
		course, err := s.courseRepo.GetByID(ctx, reg.Course)
		if err != nil {
			return nil, fmt.Errorf("error resolving course: %w", err)
		}
		if course == nil {
			// Dangling reference: the course was deleted after registration.
			continue
		}
		out = append(out, s.populate(reg, student, course))
	}
	return out, nil
}

// ListAllActive returns every active registration system-wide with student
// and course summaries resolved. The student summary here includes the email
// for administrative display.
func (s *RegistrationService) ListAllActive(ctx context.Context) ([]*dto.PopulatedRegistration, error) {
	active, err := s.registrationRepo.ListAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading registrations: %w", err)
	}

	out := make([]*dto.PopulatedRegistration, 0, len(active))
	for _, reg := range active {
		course, err := s.courseRepo.GetByID(ctx, reg.Course)
		if err != nil {
			return nil, fmt.Errorf("error resolving course: %w", err)
		}
		student, err := s.studentRepo.GetByID(ctx, reg.Student)
		if err != nil {
			return nil, fmt.Errorf("error resolving student: %w", err)
		}

		view := s.populate(reg, student, course)
		if view.Student != nil && student != nil {
			view.Student.Email = student.Email
		}
		out = append(out, view)
	}
	return out, nil
}

func (s *RegistrationService) populate(reg *models.Registration, student *models.Student, course *models.Course) *dto.PopulatedRegistration {
	return &dto.PopulatedRegistration{
		ID:               reg.ID,
		Student:          dto.NewStudentSummary(student),
		Course:           dto.NewCourseSummary(course),
		Semester:         reg.Semester,
		RegistrationDate: reg.RegistrationDate,
		Status:           reg.Status,
		CreatedAt:        reg.CreatedAt,
		UpdatedAt:        reg.UpdatedAt,
	}
}
