package repositories

import (
	"context"

	"github.com/yit/registration/internal/app/models"
	"github.com/yit/registration/internal/store"
)

// StudentRepository handles store operations for students.
type StudentRepository struct {
	col store.Collection
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(s store.Store) *StudentRepository {
	return &StudentRepository{col: s.Collection(store.CollectionStudents)}
}

// GetByID retrieves a student by record id, or nil when absent.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	rec, err := r.col.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return decode[models.Student](rec)
}

// GetByEmail retrieves a student by email, or nil when absent.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	rec, err := r.col.FindOne(ctx, store.NewQuery().Eq("email", email))
	if err != nil {
		return nil, err
	}
	return decode[models.Student](rec)
}

// FindByEmailOrStudentID retrieves a student matching either identity field,
// or nil. Used for duplicate-account checks at sign-up.
func (r *StudentRepository) FindByEmailOrStudentID(ctx context.Context, email, studentID string) (*models.Student, error) {
	q := store.NewQuery().Or(
		store.NewQuery().Eq("email", email),
		store.NewQuery().Eq("studentId", studentID),
	)
	rec, err := r.col.FindOne(ctx, q)
	if err != nil {
		return nil, err
	}
	return decode[models.Student](rec)
}

// GetAll retrieves every student.
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	recs, err := r.col.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Student](recs)
}

// Create stores a new student and fills in its generated id.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	fields, err := toRecord(student)
	if err != nil {
		return nil, err
	}
	rec, err := r.col.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	return decode[models.Student](rec)
}

// Update applies a field patch to a student, returning nil when absent.
func (r *StudentRepository) Update(ctx context.Context, id string, patch store.Record) (*models.Student, error) {
	rec, err := r.col.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return decode[models.Student](rec)
}

// SetRegisteredCourses replaces the denormalized registered-course cache.
func (r *StudentRepository) SetRegisteredCourses(ctx context.Context, id string, courseIDs []string) error {
	if courseIDs == nil {
		courseIDs = []string{}
	}
	_, err := r.col.Update(ctx, id, store.Record{"registeredCourses": courseIDs})
	return err
}
