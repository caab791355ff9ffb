package main

import (
	"fmt"
	"strings"

	"github.com/gookit/color"
	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/dungeonforge/internal/archive"
	"github.com/lawnchairsociety/dungeonforge/internal/config"
	"github.com/lawnchairsociety/dungeonforge/internal/dungeon"
	"github.com/lawnchairsociety/dungeonforge/internal/grid"
)

var (
	colorWall   = color.Style{color.FgGray}
	colorFloor  = color.Style{color.FgWhite}
	colorDoor   = color.Style{color.FgYellow, color.OpBold}
	colorShrine = color.Style{color.FgMagenta, color.OpBold}
)

// renderASCII joins the rows, one per line, coloring each run of equal
// symbols when colored is set.
func renderASCII(rows []string, colored bool) string {
	var out strings.Builder
	for _, row := range rows {
		if !colored {
			out.WriteString(row)
			out.WriteByte('\n')
			continue
		}
		for start := 0; start < len(row); {
			end := start + 1
			for end < len(row) && row[end] == row[start] {
				end++
			}
			out.WriteString(styleFor(row[start]).Sprint(row[start:end]))
			start = end
		}
		out.WriteByte('\n')
	}
	return out.String()
}

func styleFor(ch byte) color.Style {
	switch ch {
	case grid.SymbolDoor:
		return colorDoor
	case grid.SymbolShrine:
		return colorShrine
	case grid.SymbolFloor:
		return colorFloor
	default:
		return colorWall
	}
}

type mapDocument struct {
	Algorithm string        `yaml:"algorithm"`
	Seed      int64         `yaml:"seed"`
	Width     int           `yaml:"width"`
	Height    int           `yaml:"height"`
	Checksum  string        `yaml:"checksum"`
	Rows      []string      `yaml:"rows"`
	Rooms     []rectDoc     `yaml:"rooms,omitempty"`
	Doors     []positionDoc `yaml:"doors,omitempty"`
	Shrines   []positionDoc `yaml:"shrines,omitempty"`
}

type rectDoc struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type positionDoc struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// renderYAML encodes a finished level with its metadata.
func renderYAML(cfg *config.LevelConfig, res *dungeon.Result) ([]byte, error) {
	rows := res.Raw()
	doc := mapDocument{
		Algorithm: res.Algorithm,
		Seed:      cfg.Seed,
		Width:     res.Map.Width,
		Height:    res.Map.Height,
		Checksum:  archive.Checksum(rows),
		Rows:      rows,
	}
	for _, r := range res.Rooms {
		doc.Rooms = append(doc.Rooms, rectDoc{X: r.X1, Y: r.Y1, Width: r.Width(), Height: r.Height()})
	}
	for _, p := range res.Doors {
		doc.Doors = append(doc.Doors, positionDoc{X: p.X, Y: p.Y})
	}
	for _, p := range res.Shrines {
		doc.Shrines = append(doc.Shrines, positionDoc{X: p.X, Y: p.Y})
	}
	return yaml.Marshal(doc)
}

type stats struct {
	Algorithm  string
	Cells      int
	Walkable   int
	Components int
	Rooms      int
	Doors      int
	Shrines    int
	Tiles      int
}

func computeStats(res *dungeon.Result) stats {
	m := res.Map
	return stats{
		Algorithm:  res.Algorithm,
		Cells:      m.Width * m.Height,
		Walkable:   len(m.WalkableCells()),
		Components: len(m.MarkAreas()),
		Rooms:      len(res.Rooms),
		Doors:      len(res.Doors),
		Shrines:    len(res.Shrines),
		Tiles:      res.Tiles,
	}
}

// FloorRatio is the walkable share of all cells.
func (s stats) FloorRatio() float64 {
	if s.Cells == 0 {
		return 0
	}
	return float64(s.Walkable) / float64(s.Cells)
}

func (s stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Algorithm:  %s\n", s.Algorithm)
	fmt.Fprintf(&b, "Floor:      %d/%d (%.1f%%)\n", s.Walkable, s.Cells, 100*s.FloorRatio())
	fmt.Fprintf(&b, "Regions:    %d\n", s.Components)
	if s.Rooms > 0 {
		fmt.Fprintf(&b, "Rooms:      %d\n", s.Rooms)
	}
	if s.Doors > 0 {
		fmt.Fprintf(&b, "Doors:      %d\n", s.Doors)
	}
	if s.Shrines > 0 {
		fmt.Fprintf(&b, "Shrines:    %d\n", s.Shrines)
	}
	if s.Tiles > 0 {
		fmt.Fprintf(&b, "Tiles:      %d\n", s.Tiles)
	}
	return b.String()
}
