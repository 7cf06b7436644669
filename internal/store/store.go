package store

import (
	"context"
	"math/rand"
	"strconv"
	"time"
)

// Collection names used by the application.
const (
	CollectionStudents      = "students"
	CollectionFaculty       = "faculty"
	CollectionCourses       = "courses"
	CollectionRegistrations = "registrations"
)

// Record is a flat document held by a collection. Nested values are allowed
// but queries address top-level fields only.
type Record = map[string]interface{}

// Reserved record fields maintained by the store itself.
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Collection is a per-entity record set with filter-based querying. Absent
// records are reported as nil results, not errors; errors are reserved for
// backend I/O failures and broken queries.
type Collection interface {
	// FindAll returns every record matching the query, in insertion order.
	FindAll(ctx context.Context, q *Query) ([]Record, error)
	// FindOne returns the first record matching the query, or nil.
	FindOne(ctx context.Context, q *Query) (Record, error)
	// FindByID returns the record with the given id, or nil.
	FindByID(ctx context.Context, id string) (Record, error)
	// Create stores a new record with a generated id and timestamps and
	// returns the stored form.
	Create(ctx context.Context, fields Record) (Record, error)
	// Update merges the patch into the record with the given id and returns
	// the updated record, or nil when no such record exists.
	Update(ctx context.Context, id string, patch Record) (Record, error)
	// Delete removes the record with the given id and reports whether a
	// record was removed.
	Delete(ctx context.Context, id string) (bool, error)
	// DeleteMany removes every record matching the query and returns the
	// number removed.
	DeleteMany(ctx context.Context, q *Query) (int, error)
	// Count returns the number of records matching the query.
	Count(ctx context.Context, q *Query) (int, error)
}

// Store hands out named collections.
type Store interface {
	Collection(name string) Collection
	Close() error
}

// generateID builds a process-unique record id from a millisecond timestamp
// and a random suffix, both base36. Uniqueness is all callers may rely on.
func generateID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + strconv.FormatInt(rand.Int63n(1<<48), 36)
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// newRecord stamps a fresh record from caller fields. The caller's id field,
// if any, is replaced.
func newRecord(fields Record) Record {
	rec := make(Record, len(fields)+3)
	for k, v := range fields {
		rec[k] = v
	}
	rec[FieldID] = generateID()
	now := timestamp()
	rec[FieldCreatedAt] = now
	rec[FieldUpdatedAt] = now
	return rec
}

// applyPatch merges patch fields over base, preserving the record id and
// refreshing the updatedAt stamp.
func applyPatch(base, patch Record) Record {
	merged := make(Record, len(base)+len(patch))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	merged[FieldID] = base[FieldID]
	merged[FieldUpdatedAt] = timestamp()
	return merged
}
