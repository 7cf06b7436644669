package repositories

import (
	"context"

	"github.com/yit/registration/internal/app/models"
	"github.com/yit/registration/internal/store"
)

// RegistrationRepository handles store operations for the registration log.
// Registration records are append-only: they are created and have their
// status flipped, never deleted.
type RegistrationRepository struct {
	col store.Collection
}

// NewRegistrationRepository creates a new registration repository.
func NewRegistrationRepository(s store.Store) *RegistrationRepository {
	return &RegistrationRepository{col: s.Collection(store.CollectionRegistrations)}
}

// Create appends a registration record and fills in its generated id.
func (r *RegistrationRepository) Create(ctx context.Context, registration *models.Registration) (*models.Registration, error) {
	fields, err := toRecord(registration)
	if err != nil {
		return nil, err
	}
	rec, err := r.col.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	return decode[models.Registration](rec)
}

// FindActive retrieves the active registration for a (student, course) pair,
// or nil. The engine guarantees at most one exists.
func (r *RegistrationRepository) FindActive(ctx context.Context, studentID, courseID string) (*models.Registration, error) {
	q := store.NewQuery().
		Eq("student", studentID).
		Eq("course", courseID).
		Eq("status", string(models.StatusRegistered))
	rec, err := r.col.FindOne(ctx, q)
	if err != nil {
		return nil, err
	}
	return decode[models.Registration](rec)
}

// ListActiveByStudent retrieves every active registration held by a student.
func (r *RegistrationRepository) ListActiveByStudent(ctx context.Context, studentID string) ([]*models.Registration, error) {
	q := store.NewQuery().
		Eq("student", studentID).
		Eq("status", string(models.StatusRegistered))
	recs, err := r.col.FindAll(ctx, q)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Registration](recs)
}

// ListAllActive retrieves every active registration system-wide.
func (r *RegistrationRepository) ListAllActive(ctx context.Context) ([]*models.Registration, error) {
	q := store.NewQuery().Eq("status", string(models.StatusRegistered))
	recs, err := r.col.FindAll(ctx, q)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Registration](recs)
}

// CountActiveByCourse returns how many active registrations a course holds.
func (r *RegistrationRepository) CountActiveByCourse(ctx context.Context, courseID string) (int, error) {
	q := store.NewQuery().
		Eq("course", courseID).
		Eq("status", string(models.StatusRegistered))
	return r.col.Count(ctx, q)
}

// SetStatus flips a registration's lifecycle status.
func (r *RegistrationRepository) SetStatus(ctx context.Context, id string, status models.RegistrationStatus) (*models.Registration, error) {
	rec, err := r.col.Update(ctx, id, store.Record{"status": string(status)})
	if err != nil {
		return nil, err
	}
	return decode[models.Registration](rec)
}
