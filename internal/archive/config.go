package archive

import (
	"time"

	"github.com/lawnchairsociety/dungeonforge/internal/config"
)

// Config holds database connection configuration.
type Config struct {
	// Driver specifies which database to use: "sqlite" or "postgres"
	Driver string

	SQLitePath string

	Postgres PostgresConfig
}

// PostgresConfig holds PostgreSQL-specific configuration.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns a Config for an SQLite file.
func DefaultConfig(sqlitePath string) Config {
	return Config{
		Driver:     "sqlite",
		SQLitePath: sqlitePath,
	}
}

// DefaultPostgresConfig returns PostgresConfig with recommended pool settings.
func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host:            "localhost",
		Port:            5432,
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// FromLevelConfig converts the archive block of a level file.
func FromLevelConfig(c config.ArchiveConfig) Config {
	pg := DefaultPostgresConfig()
	if c.Postgres.Host != "" {
		pg.Host = c.Postgres.Host
	}
	if c.Postgres.Port != 0 {
		pg.Port = c.Postgres.Port
	}
	if c.Postgres.SSLMode != "" {
		pg.SSLMode = c.Postgres.SSLMode
	}
	pg.User = c.Postgres.User
	pg.Password = c.Postgres.Password
	pg.Database = c.Postgres.Database

	return Config{
		Driver:     c.Driver,
		SQLitePath: c.SQLitePath,
		Postgres:   pg,
	}
}
