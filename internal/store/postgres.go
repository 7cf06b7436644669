package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var collectionNamePattern = regexp.MustCompile(`^[a-z_]+$`)

// PostgresStore keeps each collection in its own jsonb table. Records stay
// schemaless; queries are evaluated in Go over the fetched documents so all
// three backends share the same predicate semantics.
type PostgresStore struct {
	pool *pgxpool.Pool

	mu          sync.Mutex
	collections map[string]*postgresCollection
}

// NewPostgresStore wraps an existing connection pool. The store owns the
// pool from this point on and Close releases it.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		pool:        pool,
		collections: make(map[string]*postgresCollection),
	}
}

// Collection returns the named collection, creating its table on first use.
// Collection names are code-defined constants; anything else panics rather
// than reaching the SQL layer.
func (s *PostgresStore) Collection(name string) Collection {
	if !collectionNamePattern.MatchString(name) {
		panic(fmt.Sprintf("invalid collection name %q", name))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.collections[name]
	if !ok {
		col = &postgresCollection{pool: s.pool, table: "records_" + name}
		s.collections[name] = col
	}
	return col
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections = make(map[string]*postgresCollection)
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// EnsureCollections creates the backing table for each named collection.
func (s *PostgresStore) EnsureCollections(ctx context.Context, names ...string) error {
	for _, name := range names {
		col, ok := s.Collection(name).(*postgresCollection)
		if !ok {
			continue
		}
		query := fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				doc JSONB NOT NULL
			)
		`, col.table)
		if _, err := s.pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to create table for collection %s: %w", name, err)
		}
	}
	return nil
}

type postgresCollection struct {
	pool  *pgxpool.Pool
	table string
}

func (c *postgresCollection) loadAll(ctx context.Context) ([]Record, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s ORDER BY doc->>'createdAt', id`, c.table)

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error reading collection: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var rec Record
		if err := json.Unmarshal(doc, &rec); err != nil {
			return nil, fmt.Errorf("error decoding record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *postgresCollection) FindAll(ctx context.Context, q *Query) ([]Record, error) {
	if err := q.Err(); err != nil {
		return nil, err
	}
	records, err := c.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	var out []Record
	for _, rec := range records {
		if q.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (c *postgresCollection) FindOne(ctx context.Context, q *Query) (Record, error) {
	matches, err := c.FindAll(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (c *postgresCollection) FindByID(ctx context.Context, id string) (Record, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, c.table)

	var doc []byte
	err := c.pool.QueryRow(ctx, query, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(doc, &rec); err != nil {
		return nil, fmt.Errorf("error decoding record: %w", err)
	}
	return rec, nil
}

func (c *postgresCollection) Create(ctx context.Context, fields Record) (Record, error) {
	rec := newRecord(fields)
	doc, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("error encoding record: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2)`, c.table)
	if _, err := c.pool.Exec(ctx, query, rec[FieldID], doc); err != nil {
		return nil, fmt.Errorf("error creating record: %w", err)
	}
	return rec, nil
}

func (c *postgresCollection) Update(ctx context.Context, id string, patch Record) (Record, error) {
	existing, err := c.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	updated := applyPatch(existing, patch)
	doc, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("error encoding record: %w", err)
	}

	query := fmt.Sprintf(`UPDATE %s SET doc = $2 WHERE id = $1`, c.table)
	if _, err := c.pool.Exec(ctx, query, id, doc); err != nil {
		return nil, fmt.Errorf("error updating record: %w", err)
	}
	return updated, nil
}

func (c *postgresCollection) Delete(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, c.table)

	tag, err := c.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("error deleting record: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (c *postgresCollection) DeleteMany(ctx context.Context, q *Query) (int, error) {
	matches, err := c.FindAll(ctx, q)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, rec := range matches {
		id, _ := rec[FieldID].(string)
		ok, err := c.Delete(ctx, id)
		if err != nil {
			return removed, err
		}
		if ok {
			removed++
		}
	}
	return removed, nil
}

func (c *postgresCollection) Count(ctx context.Context, q *Query) (int, error) {
	matches, err := c.FindAll(ctx, q)
	if err != nil {
		return 0, err
	}
	return len(matches), nil
}
