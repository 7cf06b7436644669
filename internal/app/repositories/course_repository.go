package repositories

import (
	"context"

	"github.com/yit/registration/internal/app/models"
	"github.com/yit/registration/internal/store"
)

// CourseFilter narrows course listings. Search is applied as a
// case-insensitive pattern over course name, course code, and faculty name.
type CourseFilter struct {
	Semester   *int
	Department string
	Slot       string
	Search     string
}

// CourseRepository handles store operations for courses.
type CourseRepository struct {
	col store.Collection
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(s store.Store) *CourseRepository {
	return &CourseRepository{col: s.Collection(store.CollectionCourses)}
}

// GetByID retrieves a course by record id, or nil when absent.
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	rec, err := r.col.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return decode[models.Course](rec)
}

// List retrieves courses matching the filter.
func (r *CourseRepository) List(ctx context.Context, filter CourseFilter) ([]*models.Course, error) {
	q := store.NewQuery()
	if filter.Semester != nil {
		q.Eq("semester", *filter.Semester)
	}
	if filter.Department != "" {
		q.Eq("department", filter.Department)
	}
	if filter.Slot != "" {
		q.Eq("slot", filter.Slot)
	}
	if filter.Search != "" {
		q.Or(
			store.NewQuery().Regex("courseName", filter.Search, true),
			store.NewQuery().Regex("courseCode", filter.Search, true),
			store.NewQuery().Regex("facultyName", filter.Search, true),
		)
	}

	recs, err := r.col.FindAll(ctx, q)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Course](recs)
}

// ListByFaculty retrieves every course owned by the given faculty member.
func (r *CourseRepository) ListByFaculty(ctx context.Context, facultyID string) ([]*models.Course, error) {
	recs, err := r.col.FindAll(ctx, store.NewQuery().Eq("faculty", facultyID))
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Course](recs)
}

// Create stores a new course and fills in its generated id.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	fields, err := toRecord(course)
	if err != nil {
		return nil, err
	}
	rec, err := r.col.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	return decode[models.Course](rec)
}

// Update applies a field patch to a course, returning nil when absent.
func (r *CourseRepository) Update(ctx context.Context, id string, patch store.Record) (*models.Course, error) {
	rec, err := r.col.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return decode[models.Course](rec)
}

// SetAvailableSeats persists a new seat count for a course.
func (r *CourseRepository) SetAvailableSeats(ctx context.Context, id string, seats int) error {
	_, err := r.col.Update(ctx, id, store.Record{"availableSeats": seats})
	return err
}

// Delete removes a course and reports whether one was removed.
func (r *CourseRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.col.Delete(ctx, id)
}
