package layout

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyCatalog = errors.New("layout: catalog has no templates")
	ErrMixedSizes   = errors.New("layout: catalog templates differ in size")
)

// RoomForLevel is a catalog entry: a template and its spawn weight in
// percent. A candidate passes when the shared d100 roll is <= Chance.
type RoomForLevel struct {
	Chance int        `yaml:"chance"`
	Layout RoomLayout `yaml:"layout"`
}

// Catalog is a weighted list of templates sharing one size.
type Catalog struct {
	Name  string         `yaml:"name,omitempty"`
	Rooms []RoomForLevel `yaml:"rooms"`
}

// LoadCatalog reads a catalog YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates catalog YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Marshal encodes the catalog as YAML.
func (c *Catalog) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks that the catalog is non-empty, every template is square,
// all templates share one size and every chance is a percentage.
func (c *Catalog) Validate() error {
	if c == nil || len(c.Rooms) == 0 {
		return ErrEmptyCatalog
	}
	size := c.Rooms[0].Layout.Size()
	for i, room := range c.Rooms {
		if room.Layout.Size() == 0 {
			return fmt.Errorf("room %d: %w", i, ErrInvalidLayout)
		}
		if room.Layout.Size() != size {
			return fmt.Errorf("room %d is %d wide, want %d: %w", i, room.Layout.Size(), size, ErrMixedSizes)
		}
		if room.Chance < 0 || room.Chance > 100 {
			return fmt.Errorf("room %d: chance %d outside [0,100]", i, room.Chance)
		}
	}
	return nil
}

// RoomSize returns the shared template size, or 0 for an empty catalog.
func (c *Catalog) RoomSize() int {
	if c == nil || len(c.Rooms) == 0 {
		return 0
	}
	return c.Rooms[0].Layout.Size()
}

// Layouts returns the templates without their weights.
func (c *Catalog) Layouts() []RoomLayout {
	out := make([]RoomLayout, len(c.Rooms))
	for i, room := range c.Rooms {
		out[i] = room.Layout
	}
	return out
}
