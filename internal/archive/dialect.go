package archive

// Dialect covers the SQL differences between the two archive backends.
type Dialect interface {
	// DriverName is the database/sql driver: "sqlite" or "postgres".
	DriverName() string

	// Placeholder renders the 1-indexed bind parameter n.
	Placeholder(n int) string

	// SupportsLastInsertID is false when inserted ids must come back
	// through a RETURNING clause.
	SupportsLastInsertID() bool
	ReturningClause(column string) string

	// PrimaryKey is the column definition of the maps id.
	PrimaryKey() string

	// InitStatements run once per Open, before migration.
	InitStatements() []string

	IsDuplicateKeyError(err error) bool
}

type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// NewDialect returns the dialect for t. Anything but postgres is SQLite.
func NewDialect(t DialectType) Dialect {
	if t == DialectPostgres {
		return &PostgresDialect{}
	}
	return &SQLiteDialect{}
}
