package store

import (
	"regexp"
	"strconv"
)

// Query is a conjunction of field clauses evaluated against a record. A nil or
// empty query matches every record. Clauses are typed rather than free-form maps
// so that coercion rules live in one place.
type Query struct {
	clauses []clause
	err     error
}

type clause interface {
	matches(rec Record) bool
}

// NewQuery creates an empty query.
func NewQuery() *Query {
	return &Query{}
}

// Eq adds a loose-equality clause for field.
func (q *Query) Eq(field string, value interface{}) *Query {
	q.clauses = append(q.clauses, eqClause{field: field, value: value})
	return q
}

// Regex adds a pattern-match clause for field. The record value is rendered to
// its string form before matching.
func (q *Query) Regex(field, expr string, caseInsensitive bool) *Query {
	if caseInsensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		if q.err == nil {
			q.err = err
		}
		return q
	}
	q.clauses = append(q.clauses, regexClause{field: field, re: re})
	return q
}

// Or adds a disjunction clause: the record must match at least one of the given
// sub-queries. With no sub-queries the clause matches nothing.
func (q *Query) Or(alternatives ...*Query) *Query {
	for _, alt := range alternatives {
		if alt != nil && alt.err != nil && q.err == nil {
			q.err = alt.err
		}
	}
	q.clauses = append(q.clauses, orClause{alternatives: alternatives})
	return q
}

// Err reports the first error accumulated while building the query, such as an
// invalid regex pattern. Backends must refuse to evaluate a broken query.
func (q *Query) Err() error {
	if q == nil {
		return nil
	}
	return q.err
}

// Matches reports whether the record satisfies every clause of the query.
func (q *Query) Matches(rec Record) bool {
	if q == nil {
		return true
	}
	for _, c := range q.clauses {
		if !c.matches(rec) {
			return false
		}
	}
	return true
}

type eqClause struct {
	field string
	value interface{}
}

func (c eqClause) matches(rec Record) bool {
	got, ok := rec[c.field]
	if !ok {
		// A term naming a field absent on the record is a non-match.
		return false
	}
	return looseEqual(got, c.value)
}

type regexClause struct {
	field string
	re    *regexp.Regexp
}

func (c regexClause) matches(rec Record) bool {
	got, ok := rec[c.field]
	if !ok {
		return false
	}
	return c.re.MatchString(stringify(got))
}

type orClause struct {
	alternatives []*Query
}

func (c orClause) matches(rec Record) bool {
	for _, alt := range c.alternatives {
		if alt.Matches(rec) {
			return true
		}
	}
	return false
}

// looseEqual compares two values the way the store's query language defines
// equality: numbers compare numerically, a numeric string compares numerically
// against a number, everything else compares by string form. JSON decoding
// hands back float64 for every number, so a record's numeric id must still
// match a caller's string id and vice versa. This coercion is intentional.
func looseEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ab, aIsBool := a.(bool)
	bb, bIsBool := b.(bool)
	if aIsBool || bIsBool {
		return aIsBool && bIsBool && ab == bb
	}

	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum && bNum {
		return af == bf
	}

	return stringify(a) == stringify(b)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func stringify(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	case nil:
		return ""
	default:
		return ""
	}
}
