package repositories

import (
	"context"

	"github.com/yit/registration/internal/app/models"
	"github.com/yit/registration/internal/store"
)

// FacultyRepository handles store operations for faculty accounts.
type FacultyRepository struct {
	col store.Collection
}

// NewFacultyRepository creates a new faculty repository.
func NewFacultyRepository(s store.Store) *FacultyRepository {
	return &FacultyRepository{col: s.Collection(store.CollectionFaculty)}
}

// GetByID retrieves a faculty member by record id, or nil when absent.
func (r *FacultyRepository) GetByID(ctx context.Context, id string) (*models.Faculty, error) {
	rec, err := r.col.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return decode[models.Faculty](rec)
}

// GetByEmail retrieves a faculty member by email, or nil when absent.
func (r *FacultyRepository) GetByEmail(ctx context.Context, email string) (*models.Faculty, error) {
	rec, err := r.col.FindOne(ctx, store.NewQuery().Eq("email", email))
	if err != nil {
		return nil, err
	}
	return decode[models.Faculty](rec)
}

// FindByEmailOrFacultyID retrieves a faculty member matching either identity
// field, or nil. Used for duplicate-account checks at sign-up.
func (r *FacultyRepository) FindByEmailOrFacultyID(ctx context.Context, email, facultyID string) (*models.Faculty, error) {
	q := store.NewQuery().Or(
		store.NewQuery().Eq("email", email),
		store.NewQuery().Eq("facultyId", facultyID),
	)
	rec, err := r.col.FindOne(ctx, q)
	if err != nil {
		return nil, err
	}
	return decode[models.Faculty](rec)
}

// GetAll retrieves every faculty member.
func (r *FacultyRepository) GetAll(ctx context.Context) ([]*models.Faculty, error) {
	recs, err := r.col.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Faculty](recs)
}

// Create stores a new faculty member and fills in its generated id.
func (r *FacultyRepository) Create(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	fields, err := toRecord(faculty)
	if err != nil {
		return nil, err
	}
	rec, err := r.col.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	return decode[models.Faculty](rec)
}

// Update applies a field patch to a faculty member, returning nil when absent.
func (r *FacultyRepository) Update(ctx context.Context, id string, patch store.Record) (*models.Faculty, error) {
	rec, err := r.col.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return decode[models.Faculty](rec)
}

// SetCourses replaces the owned-course id cache.
func (r *FacultyRepository) SetCourses(ctx context.Context, id string, courseIDs []string) error {
	if courseIDs == nil {
		courseIDs = []string{}
	}
	_, err := r.col.Update(ctx, id, store.Record{"courses": courseIDs})
	return err
}
