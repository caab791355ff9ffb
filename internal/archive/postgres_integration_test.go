package archive

import (
	"errors"
	"os"
	"strconv"
	"testing"
	"time"
)

// getPostgresTestConfig returns PostgreSQL config if available, nil otherwise.
// Set these environment variables to run PostgreSQL tests:
//
//	DUNGEONFORGE_TEST_POSTGRES (any value enables the tests)
//	DUNGEONFORGE_TEST_POSTGRES_HOST (default: localhost)
//	DUNGEONFORGE_TEST_POSTGRES_PORT (default: 5432)
//	DUNGEONFORGE_TEST_POSTGRES_USER (default: dungeonforge)
//	DUNGEONFORGE_TEST_POSTGRES_PASSWORD (default: dungeonforge)
//	DUNGEONFORGE_TEST_POSTGRES_DATABASE (default: dungeonforge_test)
func getPostgresTestConfig() *Config {
	if os.Getenv("DUNGEONFORGE_TEST_POSTGRES") == "" {
		return nil
	}

	env := func(key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return def
	}

	port, err := strconv.Atoi(env("DUNGEONFORGE_TEST_POSTGRES_PORT", "5432"))
	if err != nil {
		port = 5432
	}

	return &Config{
		Driver: "postgres",
		Postgres: PostgresConfig{
			Host:            env("DUNGEONFORGE_TEST_POSTGRES_HOST", "localhost"),
			Port:            port,
			User:            env("DUNGEONFORGE_TEST_POSTGRES_USER", "dungeonforge"),
			Password:        env("DUNGEONFORGE_TEST_POSTGRES_PASSWORD", "dungeonforge"),
			Database:        env("DUNGEONFORGE_TEST_POSTGRES_DATABASE", "dungeonforge_test"),
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: time.Minute,
		},
	}
}

// setupPostgresTestArchive skips the test unless PostgreSQL is configured and
// returns an archive with an empty maps table.
func setupPostgresTestArchive(t *testing.T) *Archive {
	cfg := getPostgresTestConfig()
	if cfg == nil {
		t.Skip("Skipping PostgreSQL test: DUNGEONFORGE_TEST_POSTGRES not set")
	}

	a, err := OpenWithConfig(*cfg)
	if err != nil {
		t.Fatalf("Failed to open PostgreSQL archive: %v", err)
	}
	if _, err := a.db.Exec("DELETE FROM maps"); err != nil {
		t.Logf("Note: could not clean maps table: %v", err)
	}
	t.Cleanup(func() {
		a.db.Exec("DELETE FROM maps")
		a.Close()
	})
	return a
}

func TestPostgres_SaveLoadVerify(t *testing.T) {
	a := setupPostgresTestArchive(t)
	if _, ok := a.Dialect().(*PostgresDialect); !ok {
		t.Fatalf("Dialect() = %T, want *PostgresDialect", a.Dialect())
	}

	cfg, res := buildLevel(t, "feature_rooms", 77)
	id, err := a.SaveMap(cfg, res)
	if err != nil {
		t.Fatalf("SaveMap() failed: %v", err)
	}

	rec, err := a.LoadMap(id)
	if err != nil {
		t.Fatalf("LoadMap() failed: %v", err)
	}
	if rec.Checksum != Checksum(res.Raw()) {
		t.Error("stored checksum does not match the grid")
	}

	result, err := a.Verify(id)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if !result.Match {
		t.Error("regenerated map differs from the archived one")
	}
}

func TestPostgres_Duplicate(t *testing.T) {
	a := setupPostgresTestArchive(t)
	cfg, res := buildLevel(t, "cellular_automata", 78)
	if _, err := a.SaveMap(cfg, res); err != nil {
		t.Fatal(err)
	}
	if _, err := a.SaveMap(cfg, res); !errors.Is(err, ErrDuplicateMap) {
		t.Errorf("second SaveMap() = %v, want ErrDuplicateMap", err)
	}
}
