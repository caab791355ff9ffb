package main

import (
	"path/filepath"
	"testing"

	"github.com/lawnchairsociety/dungeonforge/internal/archive"
	"github.com/lawnchairsociety/dungeonforge/internal/config"
	"github.com/lawnchairsociety/dungeonforge/internal/levelbuilder"
)

func TestArchiveMap(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Algorithm = "tunneler_backtracking"
	cfg.Seed = 17
	cfg.Map.Width = 30
	cfg.Map.Height = 20
	cfg.Archive.Driver = "sqlite"
	cfg.Archive.SQLitePath = filepath.Join(t.TempDir(), "maps.db")

	b := levelbuilder.New()
	if err := b.Build(cfg); err != nil {
		t.Fatal(err)
	}
	res, err := b.Result()
	if err != nil {
		t.Fatal(err)
	}

	if code := archiveMap(cfg, res); code != 0 {
		t.Fatalf("archiveMap() = %d, want 0", code)
	}
	// The same grid again is a duplicate.
	if code := archiveMap(cfg, res); code != 1 {
		t.Errorf("second archiveMap() = %d, want 1", code)
	}

	// The archive was closed on both paths, so it opens cleanly here.
	a, err := archive.Open(cfg.Archive.SQLitePath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	recs, err := a.FindBySeed(17, "tunneler_backtracking")
	a.Close()
	if err != nil {
		t.Fatalf("FindBySeed() failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1", len(recs))
	}
	if recs[0].Checksum != archive.Checksum(res.Raw()) {
		t.Errorf("checksum = %s, want %s", recs[0].Checksum, archive.Checksum(res.Raw()))
	}

	if code := verify(cfg, recs[0].ID); code != 0 {
		t.Errorf("verify() = %d, want 0", code)
	}
}

func TestArchiveMapOpenFailure(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Archive.Driver = "mysql"
	cfg.Archive.SQLitePath = filepath.Join(t.TempDir(), "maps.db")

	b := levelbuilder.New()
	if err := b.Build(cfg); err != nil {
		t.Fatal(err)
	}
	res, err := b.Result()
	if err != nil {
		t.Fatal(err)
	}
	if code := archiveMap(cfg, res); code != 1 {
		t.Errorf("archiveMap() = %d, want 1", code)
	}
}
