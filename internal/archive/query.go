package archive

import (
	"strings"
)

// QueryBuilder rewrites queries written with ? placeholders for the active
// dialect. Question marks inside single-quoted literals are left alone.
type QueryBuilder struct {
	dialect Dialect
}

func NewQueryBuilder(dialect Dialect) *QueryBuilder {
	return &QueryBuilder{dialect: dialect}
}

// Build renumbers placeholders:
//
//	"SELECT id FROM maps WHERE seed = ? AND algorithm = ?"
//	postgres: "SELECT id FROM maps WHERE seed = $1 AND algorithm = $2"
func (qb *QueryBuilder) Build(query string) string {
	if qb.dialect.Placeholder(1) == "?" || !strings.Contains(query, "?") {
		return query
	}

	var out strings.Builder
	out.Grow(len(query) + 8)
	n := 0
	quoted := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			quoted = !quoted
		case ch == '?' && !quoted:
			n++
			out.WriteString(qb.dialect.Placeholder(n))
			continue
		}
		out.WriteByte(ch)
	}
	return out.String()
}

// BuildWithReturning is Build plus the dialect's RETURNING clause for
// inserts whose generated column must be read back.
func (qb *QueryBuilder) BuildWithReturning(query string, column string) string {
	q := qb.Build(query)
	if qb.dialect.SupportsLastInsertID() {
		return q
	}
	return q + qb.dialect.ReturningClause(column)
}
