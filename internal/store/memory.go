package store

import (
	"context"
	"sync"
)

// MemoryStore keeps every collection in process memory. It backs tests and
// doubles as a zero-setup demo mode.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]*memoryCollection
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]*memoryCollection),
	}
}

// Collection returns the named collection, creating it on first use.
func (s *MemoryStore) Collection(name string) Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.collections[name]
	if !ok {
		col = &memoryCollection{}
		s.collections[name] = col
	}
	return col
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

type memoryCollection struct {
	mu      sync.RWMutex
	records []Record
}

func (c *memoryCollection) FindAll(ctx context.Context, q *Query) ([]Record, error) {
	if err := q.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Record
	for _, rec := range c.records {
		if q.Matches(rec) {
			out = append(out, cloneRecord(rec))
		}
	}
	return out, nil
}

func (c *memoryCollection) FindOne(ctx context.Context, q *Query) (Record, error) {
	if err := q.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, rec := range c.records {
		if q.Matches(rec) {
			return cloneRecord(rec), nil
		}
	}
	return nil, nil
}

func (c *memoryCollection) FindByID(ctx context.Context, id string) (Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return cloneRecord(c.records[i]), nil
	}
	return nil, nil
}

func (c *memoryCollection) Create(ctx context.Context, fields Record) (Record, error) {
	rec := newRecord(cloneRecord(fields))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, rec)
	return cloneRecord(rec), nil
}

func (c *memoryCollection) Update(ctx context.Context, id string, patch Record) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	c.records[i] = applyPatch(c.records[i], cloneRecord(patch))
	return cloneRecord(c.records[i]), nil
}

func (c *memoryCollection) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false, nil
	}
	c.records = append(c.records[:i], c.records[i+1:]...)
	return true, nil
}

func (c *memoryCollection) DeleteMany(ctx context.Context, q *Query) (int, error) {
	if err := q.Err(); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.records[:0]
	removed := 0
	for _, rec := range c.records {
		if q.Matches(rec) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	c.records = kept
	return removed, nil
}

func (c *memoryCollection) Count(ctx context.Context, q *Query) (int, error) {
	if err := q.Err(); err != nil {
		return 0, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, rec := range c.records {
		if q.Matches(rec) {
			n++
		}
	}
	return n, nil
}

// indexOf must be called with the lock held.
func (c *memoryCollection) indexOf(id string) int {
	for i, rec := range c.records {
		if recID, _ := rec[FieldID].(string); recID == id {
			return i
		}
	}
	return -1
}

// cloneRecord deep-copies a record so callers never share mutable state with
// the collection.
func cloneRecord(rec Record) Record {
	if rec == nil {
		return nil
	}
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}
