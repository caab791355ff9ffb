// mapgen generates a dungeon level and prints it.
//
// Usage:
//
//	go run ./cmd/mapgen -algorithm feature_rooms -seed 42 -width 80 -height 40
//	go run ./cmd/mapgen -config data/level.yaml -format yaml -output level.yaml
//	go run ./cmd/mapgen -config data/level.yaml -archive
//	go run ./cmd/mapgen -config data/level.yaml -verify 3
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gookit/color"
	"golang.org/x/term"

	"github.com/lawnchairsociety/dungeonforge/internal/archive"
	"github.com/lawnchairsociety/dungeonforge/internal/config"
	"github.com/lawnchairsociety/dungeonforge/internal/dungeon"
	"github.com/lawnchairsociety/dungeonforge/internal/levelbuilder"
	"github.com/lawnchairsociety/dungeonforge/internal/logger"
)

func main() {
	configFile := flag.String("config", "", "Path to level config YAML file (empty for defaults)")
	algorithm := flag.String("algorithm", "", "Algorithm: "+strings.Join(levelbuilder.Algorithms(), ", "))
	seed := flag.Int64("seed", 0, "Generation seed")
	width := flag.Int("width", 0, "Map width in cells")
	height := flag.Int("height", 0, "Map height in cells")
	loggingConfig := flag.String("logging", "", "Path to logging config YAML file (default: the level config's logging block)")
	outputFile := flag.String("output", "", "Output file (empty for stdout)")
	format := flag.String("format", "ascii", "Output format: ascii or yaml")
	colorMode := flag.String("color", "auto", "Colorize ascii output: auto, always or never")
	save := flag.Bool("archive", false, "Save the generated map to the archive")
	verifyID := flag.Int64("verify", 0, "Regenerate an archived map by ID and compare checksums")
	showStats := flag.Bool("stats", false, "Print floor ratio, regions, rooms and shrines")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logConfig := cfg.Logging
	if *loggingConfig != "" {
		logConfig, err = logger.LoadConfig(*loggingConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading logging config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := logger.Initialize(logConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	// Flags given on the command line override the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "algorithm":
			cfg.Algorithm = *algorithm
		case "seed":
			cfg.Seed = *seed
		case "width":
			cfg.Map.Width = *width
		case "height":
			cfg.Map.Height = *height
		}
	})

	if *verifyID != 0 {
		os.Exit(verify(cfg, *verifyID))
	}

	b := levelbuilder.New()
	if err := b.Build(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating map: %v\n", err)
		os.Exit(1)
	}
	res, err := b.Result()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading map: %v\n", err)
		os.Exit(1)
	}

	var output string
	switch *format {
	case "ascii":
		colored := useColor(*colorMode, *outputFile == "")
		output = renderASCII(res.Raw(), colored)
	case "yaml":
		data, err := renderYAML(cfg, res)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding YAML: %v\n", err)
			os.Exit(1)
		}
		output = string(data)
	default:
		fmt.Fprintf(os.Stderr, "Unknown format %q (want ascii or yaml)\n", *format)
		os.Exit(1)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Map written to %s\n", *outputFile)
	} else {
		fmt.Print(output)
	}

	if *showStats {
		fmt.Fprint(os.Stderr, computeStats(res).String())
	}

	if *save {
		if code := archiveMap(cfg, res); code != 0 {
			os.Exit(code)
		}
	}
}

// archiveMap saves the generated map and returns the process exit code.
func archiveMap(cfg *config.LevelConfig, res *dungeon.Result) int {
	a, err := archive.OpenWithConfig(archive.FromLevelConfig(cfg.Archive))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening archive: %v\n", err)
		return 1
	}
	defer a.Close()

	id, err := a.SaveMap(cfg, res)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error archiving map: %v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stderr, "Archived as map %d\n", id)
	return 0
}

// verify regenerates archived map id and returns the process exit code.
func verify(cfg *config.LevelConfig, id int64) int {
	a, err := archive.OpenWithConfig(archive.FromLevelConfig(cfg.Archive))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening archive: %v\n", err)
		return 1
	}
	defer a.Close()

	result, err := a.Verify(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error verifying map %d: %v\n", id, err)
		return 1
	}

	rec := result.Record
	fmt.Printf("Map %d (%s, seed %d, %dx%d)\n", rec.ID, rec.Algorithm, rec.Seed, rec.Width, rec.Height)
	fmt.Printf("  archived:    %s\n", rec.Checksum)
	fmt.Printf("  regenerated: %s\n", result.Checksum)
	if !result.Match {
		fmt.Println("MISMATCH")
		return 2
	}
	fmt.Println("OK")
	return 0
}

// useColor resolves the -color mode. Auto colors only a terminal stdout.
func useColor(mode string, toStdout bool) bool {
	switch mode {
	case "always":
		color.ForceOpenColor()
		color.Enable = true
		return true
	case "never":
		color.Enable = false
		return false
	default:
		on := toStdout && term.IsTerminal(int(os.Stdout.Fd()))
		color.Enable = on
		return on
	}
}
