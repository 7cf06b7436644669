package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists each collection as a JSON array in its own file under a
// data directory. Every operation reads the file, applies the change, and
// writes it back; a mutex per collection serializes access within the process.
type FileStore struct {
	dir string

	mu          sync.Mutex
	collections map[string]*fileCollection
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory when missing.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{
		dir:         dir,
		collections: make(map[string]*fileCollection),
	}, nil
}

// Collection returns the named collection, creating its file lazily.
func (s *FileStore) Collection(name string) Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.collections[name]
	if !ok {
		col = &fileCollection{path: filepath.Join(s.dir, name+".json")}
		s.collections[name] = col
	}
	return col
}

// Close is a no-op: every write is flushed before its call returns.
func (s *FileStore) Close() error {
	return nil
}

type fileCollection struct {
	mu   sync.Mutex
	path string
}

// load must be called with the lock held. A missing or unreadable file is
// treated as an empty collection, matching the store's recovery posture.
func (c *fileCollection) load() []Record {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil
	}
	return records
}

// save must be called with the lock held.
func (c *fileCollection) save(records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write collection file: %w", err)
	}
	return nil
}

func (c *fileCollection) FindAll(ctx context.Context, q *Query) ([]Record, error) {
	if err := q.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []Record
	for _, rec := range c.load() {
		if q.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (c *fileCollection) FindOne(ctx context.Context, q *Query) (Record, error) {
	if err := q.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, rec := range c.load() {
		if q.Matches(rec) {
			return rec, nil
		}
	}
	return nil, nil
}

func (c *fileCollection) FindByID(ctx context.Context, id string) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, rec := range c.load() {
		if recID, _ := rec[FieldID].(string); recID == id {
			return rec, nil
		}
	}
	return nil, nil
}

func (c *fileCollection) Create(ctx context.Context, fields Record) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.load()
	rec := newRecord(fields)
	records = append(records, rec)
	if err := c.save(records); err != nil {
		return nil, err
	}
	return rec, nil
}

func (c *fileCollection) Update(ctx context.Context, id string, patch Record) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.load()
	for i, rec := range records {
		if recID, _ := rec[FieldID].(string); recID == id {
			records[i] = applyPatch(rec, patch)
			if err := c.save(records); err != nil {
				return nil, err
			}
			return records[i], nil
		}
	}
	return nil, nil
}

func (c *fileCollection) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.load()
	for i, rec := range records {
		if recID, _ := rec[FieldID].(string); recID == id {
			records = append(records[:i], records[i+1:]...)
			if err := c.save(records); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (c *fileCollection) DeleteMany(ctx context.Context, q *Query) (int, error) {
	if err := q.Err(); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.load()
	kept := records[:0]
	removed := 0
	for _, rec := range records {
		if q.Matches(rec) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	if removed > 0 {
		if err := c.save(kept); err != nil {
			return 0, err
		}
	}
	return removed, nil
}

func (c *fileCollection) Count(ctx context.Context, q *Query) (int, error) {
	if err := q.Err(); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, rec := range c.load() {
		if q.Matches(rec) {
			n++
		}
	}
	return n, nil
}
