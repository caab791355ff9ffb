package archive

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestNewDialect(t *testing.T) {
	tests := []struct {
		dialectType DialectType
		want        string
	}{
		{DialectSQLite, "sqlite"},
		{DialectPostgres, "postgres"},
		{"unknown", "sqlite"},
	}
	for _, tt := range tests {
		t.Run(string(tt.dialectType), func(t *testing.T) {
			if got := NewDialect(tt.dialectType).DriverName(); got != tt.want {
				t.Errorf("NewDialect(%q).DriverName() = %q, want %q", tt.dialectType, got, tt.want)
			}
		})
	}
}

func TestPlaceholders(t *testing.T) {
	sqlite, pg := &SQLiteDialect{}, &PostgresDialect{}
	for _, pos := range []int{1, 2, 10} {
		if got := sqlite.Placeholder(pos); got != "?" {
			t.Errorf("SQLite Placeholder(%d) = %q, want ?", pos, got)
		}
		if got, want := pg.Placeholder(pos), fmt.Sprintf("$%d", pos); got != want {
			t.Errorf("Postgres Placeholder(%d) = %q, want %q", pos, got, want)
		}
	}
}

func TestReturningClause(t *testing.T) {
	if got := (&SQLiteDialect{}).ReturningClause("id"); got != "" {
		t.Errorf("SQLite ReturningClause() = %q, want empty", got)
	}
	if got := (&PostgresDialect{}).ReturningClause("id"); got != " RETURNING id" {
		t.Errorf("Postgres ReturningClause() = %q, want %q", got, " RETURNING id")
	}
}

func TestSQLiteDialect_IsDuplicateKeyError(t *testing.T) {
	d := &SQLiteDialect{}
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("some random error"), false},
		{errors.New("UNIQUE constraint failed: maps.checksum"), true},
		{errors.New("NOT NULL constraint failed: maps.grid"), false},
	}
	for _, tt := range tests {
		if got := d.IsDuplicateKeyError(tt.err); got != tt.want {
			t.Errorf("IsDuplicateKeyError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestPostgresDialect_IsDuplicateKeyError(t *testing.T) {
	d := &PostgresDialect{}
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("duplicate key value"), false},
		{"unique violation", &pq.Error{Code: "23505"}, true},
		{"wrapped unique violation", fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), true},
		{"foreign key violation", &pq.Error{Code: "23503"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.IsDuplicateKeyError(tt.err); got != tt.want {
				t.Errorf("IsDuplicateKeyError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueryBuilder(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		query   string
		want    string
		wantRet string
	}{
		{
			name:    "sqlite unchanged",
			dialect: &SQLiteDialect{},
			query:   "INSERT INTO maps (seed, algorithm) VALUES (?, ?)",
			want:    "INSERT INTO maps (seed, algorithm) VALUES (?, ?)",
			wantRet: "INSERT INTO maps (seed, algorithm) VALUES (?, ?)",
		},
		{
			name:    "postgres numbered",
			dialect: &PostgresDialect{},
			query:   "INSERT INTO maps (seed, algorithm) VALUES (?, ?)",
			want:    "INSERT INTO maps (seed, algorithm) VALUES ($1, $2)",
			wantRet: "INSERT INTO maps (seed, algorithm) VALUES ($1, $2) RETURNING id",
		},
		{
			name:    "quoted question mark",
			dialect: &PostgresDialect{},
			query:   "UPDATE maps SET grid = '?' WHERE id = ?",
			want:    "UPDATE maps SET grid = '?' WHERE id = $1",
			wantRet: "UPDATE maps SET grid = '?' WHERE id = $1 RETURNING id",
		},
		{
			name:    "no placeholders",
			dialect: &PostgresDialect{},
			query:   "SELECT COUNT(*) FROM maps",
			want:    "SELECT COUNT(*) FROM maps",
			wantRet: "SELECT COUNT(*) FROM maps RETURNING id",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qb := NewQueryBuilder(tt.dialect)
			if got := qb.Build(tt.query); got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
			if got := qb.BuildWithReturning(tt.query, "id"); got != tt.wantRet {
				t.Errorf("BuildWithReturning() = %q, want %q", got, tt.wantRet)
			}
		})
	}
}
