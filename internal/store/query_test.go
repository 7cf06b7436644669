package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryEmptyMatchesEverything(t *testing.T) {
	rec := Record{"name": "Data Structures"}

	assert.True(t, NewQuery().Matches(rec))
	assert.True(t, (*Query)(nil).Matches(rec))
}

func TestQueryEqStrings(t *testing.T) {
	rec := Record{"department": "Computer Science"}

	assert.True(t, NewQuery().Eq("department", "Computer Science").Matches(rec))
	assert.False(t, NewQuery().Eq("department", "computer science").Matches(rec))
	assert.False(t, NewQuery().Eq("department", "Electronics").Matches(rec))
}

func TestQueryEqNumericCoercion(t *testing.T) {
	// JSON decoding hands back float64, callers often hold ints or strings
	rec := Record{"semester": float64(5)}

	assert.True(t, NewQuery().Eq("semester", 5).Matches(rec))
	assert.True(t, NewQuery().Eq("semester", "5").Matches(rec))
	assert.True(t, NewQuery().Eq("semester", 5.0).Matches(rec))
	assert.False(t, NewQuery().Eq("semester", 6).Matches(rec))

	stringRec := Record{"semester": "5"}
	assert.True(t, NewQuery().Eq("semester", 5).Matches(stringRec))
}

func TestQueryEqBooleans(t *testing.T) {
	rec := Record{"active": true}

	assert.True(t, NewQuery().Eq("active", true).Matches(rec))
	assert.False(t, NewQuery().Eq("active", false).Matches(rec))
	// A bool never equals a non-bool, not even "true"
	assert.False(t, NewQuery().Eq("active", "true").Matches(rec))
}

func TestQueryEqAbsentField(t *testing.T) {
	rec := Record{"name": "Thermodynamics"}

	assert.False(t, NewQuery().Eq("slot", "A").Matches(rec))
	assert.False(t, NewQuery().Eq("slot", nil).Matches(rec))
}

func TestQueryEqNil(t *testing.T) {
	rec := Record{"phone": nil}

	assert.True(t, NewQuery().Eq("phone", nil).Matches(rec))
	assert.False(t, NewQuery().Eq("phone", "x").Matches(rec))
}

func TestQueryRegex(t *testing.T) {
	rec := Record{"courseName": "Introduction to Programming"}

	assert.True(t, NewQuery().Regex("courseName", "Programming", false).Matches(rec))
	assert.False(t, NewQuery().Regex("courseName", "programming", false).Matches(rec))
	assert.True(t, NewQuery().Regex("courseName", "programming", true).Matches(rec))
	assert.False(t, NewQuery().Regex("courseName", "Databases", true).Matches(rec))
}

func TestQueryRegexAgainstNumber(t *testing.T) {
	rec := Record{"semester": float64(5)}

	assert.True(t, NewQuery().Regex("semester", "^5$", false).Matches(rec))
}

func TestQueryRegexInvalidPattern(t *testing.T) {
	q := NewQuery().Regex("name", "(unclosed", false)

	require.Error(t, q.Err())
}

func TestQueryOr(t *testing.T) {
	rec := Record{"email": "student1@yituniversity.edu", "studentId": "YIT2024001"}

	q := NewQuery().Or(
		NewQuery().Eq("email", "student1@yituniversity.edu"),
		NewQuery().Eq("studentId", "OTHER"),
	)
	assert.True(t, q.Matches(rec))

	q = NewQuery().Or(
		NewQuery().Eq("email", "nobody@yituniversity.edu"),
		NewQuery().Eq("studentId", "OTHER"),
	)
	assert.False(t, q.Matches(rec))
}

func TestQueryOrEmptyMatchesNothing(t *testing.T) {
	rec := Record{"name": "x"}

	assert.False(t, NewQuery().Or().Matches(rec))
}

func TestQueryConjunction(t *testing.T) {
	rec := Record{"department": "Computer Science", "semester": float64(5)}

	assert.True(t, NewQuery().Eq("department", "Computer Science").Eq("semester", 5).Matches(rec))
	assert.False(t, NewQuery().Eq("department", "Computer Science").Eq("semester", 6).Matches(rec))
}
