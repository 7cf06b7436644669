package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends that can run without external services
func testStores(t *testing.T) map[string]Store {
	t.Helper()

	fileStore, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fileStore,
	}
}

func TestCollectionCreateAssignsIdentityAndTimestamps(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			col := st.Collection(CollectionCourses)

			rec, err := col.Create(ctx, Record{"courseCode": "CS101-S1"})
			require.NoError(t, err)

			assert.NotEmpty(t, rec[FieldID])
			assert.NotEmpty(t, rec[FieldCreatedAt])
			assert.Equal(t, rec[FieldCreatedAt], rec[FieldUpdatedAt])
			assert.Equal(t, "CS101-S1", rec["courseCode"])
		})
	}
}

func TestCollectionCreateIgnoresCallerID(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			col := st.Collection(CollectionCourses)

			rec, err := col.Create(ctx, Record{FieldID: "forged"})
			require.NoError(t, err)
			assert.NotEqual(t, "forged", rec[FieldID])
		})
	}
}

func TestCollectionFindByID(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			col := st.Collection(CollectionStudents)

			created, err := col.Create(ctx, Record{"name": "Rahul Verma"})
			require.NoError(t, err)

			found, err := col.FindByID(ctx, created[FieldID].(string))
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "Rahul Verma", found["name"])

			missing, err := col.FindByID(ctx, "no-such-id")
			require.NoError(t, err)
			assert.Nil(t, missing)
		})
	}
}

func TestCollectionFindAllPreservesInsertionOrder(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			col := st.Collection(CollectionCourses)

			for _, code := range []string{"CS101", "CS201", "CS301"} {
				_, err := col.Create(ctx, Record{"courseCode": code})
				require.NoError(t, err)
			}

			all, err := col.FindAll(ctx, NewQuery())
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "CS101", all[0]["courseCode"])
			assert.Equal(t, "CS201", all[1]["courseCode"])
			assert.Equal(t, "CS301", all[2]["courseCode"])
		})
	}
}

func TestCollectionFindAllFilters(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			col := st.Collection(CollectionCourses)

			_, err := col.Create(ctx, Record{"slot": "A", "semester": 1})
			require.NoError(t, err)
			_, err = col.Create(ctx, Record{"slot": "B", "semester": 1})
			require.NoError(t, err)
			_, err = col.Create(ctx, Record{"slot": "A", "semester": 2})
			require.NoError(t, err)

			matched, err := col.FindAll(ctx, NewQuery().Eq("slot", "A"))
			require.NoError(t, err)
			assert.Len(t, matched, 2)

			matched, err = col.FindAll(ctx, NewQuery().Eq("slot", "A").Eq("semester", 2))
			require.NoError(t, err)
			assert.Len(t, matched, 1)
		})
	}
}

func TestCollectionFindOne(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			col := st.Collection(CollectionStudents)

			_, err := col.Create(ctx, Record{"email": "a@yituniversity.edu"})
			require.NoError(t, err)

			found, err := col.FindOne(ctx, NewQuery().Eq("email", "a@yituniversity.edu"))
			require.NoError(t, err)
			require.NotNil(t, found)

			missing, err := col.FindOne(ctx, NewQuery().Eq("email", "b@yituniversity.edu"))
			require.NoError(t, err)
			assert.Nil(t, missing)
		})
	}
}

func TestCollectionUpdateMergesPatch(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			col := st.Collection(CollectionCourses)

			created, err := col.Create(ctx, Record{"courseName": "Thermodynamics", "availableSeats": 30})
			require.NoError(t, err)
			id := created[FieldID].(string)

			updated, err := col.Update(ctx, id, Record{"availableSeats": 29})
			require.NoError(t, err)
			require.NotNil(t, updated)

			// Patched field changes, others survive, id is immutable
			assert.Equal(t, id, updated[FieldID])
			assert.Equal(t, "Thermodynamics", updated["courseName"])
			assert.True(t, NewQuery().Eq("availableSeats", 29).Matches(updated))

			missing, err := col.Update(ctx, "no-such-id", Record{"availableSeats": 1})
			require.NoError(t, err)
			assert.Nil(t, missing)
		})
	}
}

func TestCollectionDelete(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			col := st.Collection(CollectionStudents)

			created, err := col.Create(ctx, Record{"name": "x"})
			require.NoError(t, err)
			id := created[FieldID].(string)

			removed, err := col.Delete(ctx, id)
			require.NoError(t, err)
			assert.True(t, removed)

			removed, err = col.Delete(ctx, id)
			require.NoError(t, err)
			assert.False(t, removed)
		})
	}
}

func TestCollectionDeleteMany(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			col := st.Collection(CollectionRegistrations)

			for i := 0; i < 3; i++ {
				_, err := col.Create(ctx, Record{"status": "registered"})
				require.NoError(t, err)
			}
			_, err := col.Create(ctx, Record{"status": "dropped"})
			require.NoError(t, err)

			n, err := col.DeleteMany(ctx, NewQuery().Eq("status", "registered"))
			require.NoError(t, err)
			assert.Equal(t, 3, n)

			count, err := col.Count(ctx, NewQuery())
			require.NoError(t, err)
			assert.Equal(t, 1, count)
		})
	}
}

func TestCollectionRejectsBrokenQuery(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			col := st.Collection(CollectionCourses)

			_, err := col.FindAll(ctx, NewQuery().Regex("name", "(unclosed", false))
			assert.Error(t, err)
		})
	}
}

func TestMemoryStoreIsolatesReturnedRecords(t *testing.T) {
	ctx := context.Background()
	col := NewMemoryStore().Collection(CollectionCourses)

	created, err := col.Create(ctx, Record{"schedule": map[string]interface{}{"time": "9:00 AM - 10:00 AM"}})
	require.NoError(t, err)

	// Mutating the returned record must not change the stored copy
	created["schedule"].(map[string]interface{})["time"] = "tampered"

	found, err := col.FindByID(ctx, created[FieldID].(string))
	require.NoError(t, err)
	assert.Equal(t, "9:00 AM - 10:00 AM", found["schedule"].(map[string]interface{})["time"])
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFileStore(dir)
	require.NoError(t, err)
	created, err := first.Collection(CollectionStudents).Create(ctx, Record{"name": "Sneha Gupta"})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewFileStore(dir)
	require.NoError(t, err)
	found, err := second.Collection(CollectionStudents).FindByID(ctx, created[FieldID].(string))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Sneha Gupta", found["name"])
}

func TestFileStoreTreatsCorruptFileAsEmpty(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	path := filepath.Join(dir, CollectionCourses+".json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	st, err := NewFileStore(dir)
	require.NoError(t, err)

	all, err := st.Collection(CollectionCourses).FindAll(ctx, NewQuery())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGenerateIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := generateID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}
