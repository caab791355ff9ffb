package archive

import (
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/dungeonforge/internal/config"
	"github.com/lawnchairsociety/dungeonforge/internal/dungeon"
	"github.com/lawnchairsociety/dungeonforge/internal/levelbuilder"
	"github.com/lawnchairsociety/dungeonforge/internal/logger"
)

var (
	ErrNotFound      = errors.New("archive: map not found")
	ErrDuplicateMap  = errors.New("archive: map already archived")
	ErrCorruptRecord = errors.New("archive: stored grid does not match its checksum")
)

// Record is one archived map.
type Record struct {
	ID        int64
	Seed      int64
	Algorithm string
	Width     int
	Height    int
	Config    string // level configuration YAML
	Rows      []string
	Checksum  string
	Rooms     int
	Shrines   int
	CreatedAt time.Time
}

// Checksum returns the hex blake2b-256 digest of a grid.
func Checksum(rows []string) string {
	sum := blake2b.Sum256([]byte(strings.Join(rows, "\n")))
	return hex.EncodeToString(sum[:])
}

const recordColumns = "id, seed, algorithm, width, height, config, grid, checksum, rooms, shrines, created_at"

// SaveMap stores a finished level together with the configuration that
// produced it and returns the new record ID. Archive credentials are not
// stored.
func (a *Archive) SaveMap(cfg *config.LevelConfig, res *dungeon.Result) (int64, error) {
	stored := *cfg
	stored.Archive = config.ArchiveConfig{}
	cfgYAML, err := stored.Marshal()
	if err != nil {
		return 0, fmt.Errorf("failed to encode config: %w", err)
	}
	rows := res.Raw()
	checksum := Checksum(rows)

	query := a.qb.BuildWithReturning(
		"INSERT INTO maps (seed, algorithm, width, height, config, grid, checksum, rooms, shrines) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		"id",
	)
	args := []any{cfg.Seed, res.Algorithm, res.Map.Width, res.Map.Height, string(cfgYAML),
		strings.Join(rows, "\n"), checksum, len(res.Rooms), len(res.Shrines)}

	var id int64
	if a.dialect.SupportsLastInsertID() {
		result, execErr := a.db.Exec(query, args...)
		if execErr == nil {
			id, execErr = result.LastInsertId()
		}
		err = execErr
	} else {
		err = a.db.QueryRow(query, args...).Scan(&id)
	}
	if err != nil {
		if a.dialect.IsDuplicateKeyError(err) {
			return 0, fmt.Errorf("%w: checksum %s", ErrDuplicateMap, checksum[:12])
		}
		return 0, fmt.Errorf("failed to save map: %w", err)
	}

	logger.Always("Archived map", "id", id, "algorithm", res.Algorithm, "seed", cfg.Seed, "checksum", checksum[:12])
	return id, nil
}

// LoadMap returns the record with the given ID.
func (a *Archive) LoadMap(id int64) (*Record, error) {
	row := a.db.QueryRow(a.qb.Build("SELECT "+recordColumns+" FROM maps WHERE id = ?"), id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load map: %w", err)
	}
	return rec, nil
}

// FindBySeed returns every map generated from seed by algorithm, oldest first.
func (a *Archive) FindBySeed(seed int64, algorithm string) ([]*Record, error) {
	return a.query(
		"SELECT "+recordColumns+" FROM maps WHERE seed = ? AND algorithm = ? ORDER BY id",
		seed, algorithm,
	)
}

// List returns up to limit maps, newest first.
func (a *Archive) List(limit int) ([]*Record, error) {
	return a.query("SELECT "+recordColumns+" FROM maps ORDER BY id DESC LIMIT ?", limit)
}

// Delete removes a map.
func (a *Archive) Delete(id int64) error {
	res, err := a.db.Exec(a.qb.Build("DELETE FROM maps WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete map: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

// VerifyResult describes a regeneration audit.
type VerifyResult struct {
	Record   *Record
	Checksum string // checksum of the regenerated grid
	Match    bool
}

// Verify regenerates an archived map from its stored configuration and
// compares checksums. A stored grid that no longer hashes to its own
// checksum is reported as ErrCorruptRecord.
func (a *Archive) Verify(id int64) (*VerifyResult, error) {
	rec, err := a.LoadMap(id)
	if err != nil {
		return nil, err
	}
	if Checksum(rec.Rows) != rec.Checksum {
		return nil, fmt.Errorf("%w: id %d", ErrCorruptRecord, id)
	}

	cfg := config.DefaultConfig()
	if err := yaml.Unmarshal([]byte(rec.Config), cfg); err != nil {
		return nil, fmt.Errorf("failed to decode stored config: %w", err)
	}

	b := levelbuilder.New()
	if err := b.Build(cfg); err != nil {
		return nil, fmt.Errorf("failed to regenerate map %d: %w", id, err)
	}
	rows, err := b.MapRaw()
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{Record: rec, Checksum: Checksum(rows)}
	result.Match = result.Checksum == rec.Checksum
	logger.Always("Verified map", "id", id, "match", result.Match)
	return result, nil
}

func (a *Archive) query(query string, args ...any) ([]*Record, error) {
	rows, err := a.db.Query(a.qb.Build(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query maps: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan map: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*Record, error) {
	var rec Record
	var grid string
	var createdAt sql.NullTime
	if err := s.Scan(&rec.ID, &rec.Seed, &rec.Algorithm, &rec.Width, &rec.Height,
		&rec.Config, &grid, &rec.Checksum, &rec.Rooms, &rec.Shrines, &createdAt); err != nil {
		return nil, err
	}
	rec.Rows = strings.Split(grid, "\n")
	if createdAt.Valid {
		rec.CreatedAt = createdAt.Time
	}
	return &rec, nil
}
