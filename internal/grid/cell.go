package grid

// Map symbols shared by every generator.
const (
	SymbolWall   byte = '#'
	SymbolFloor  byte = '.'
	SymbolDoor   byte = '+'
	SymbolShrine byte = '*'
)

// IsWalkable reports whether a map symbol can be stepped on.
func IsWalkable(ch byte) bool {
	switch ch {
	case SymbolFloor, SymbolDoor, SymbolShrine:
		return true
	default:
		return false
	}
}

// ObjectKind tags the variant held by ObjectHere.
type ObjectKind int

const (
	ObjectNone ObjectKind = iota
	ObjectGameObject
	ObjectItem
)

// String returns the string representation of an ObjectKind
func (k ObjectKind) String() string {
	switch k {
	case ObjectNone:
		return "none"
	case ObjectGameObject:
		return "game_object"
	case ObjectItem:
		return "item"
	default:
		return "unknown"
	}
}

// GameObjectType identifies a static object a placement pass puts on a cell.
type GameObjectType int

const (
	GameObjectShrine GameObjectType = iota + 1
	GameObjectDoor
	GameObjectStairsUp
	GameObjectStairsDown
)

// ItemType identifies an item kind reserved for a placement pass.
type ItemType int

// ObjectHere is a tagged union of nothing, a game object or an item.
type ObjectHere struct {
	kind ObjectKind
	tag  int
}

// NoObject returns an empty ObjectHere.
func NoObject() ObjectHere {
	return ObjectHere{}
}

// GameObject wraps a game object kind.
func GameObject(t GameObjectType) ObjectHere {
	return ObjectHere{kind: ObjectGameObject, tag: int(t)}
}

// Item wraps an item kind.
func Item(t ItemType) ObjectHere {
	return ObjectHere{kind: ObjectItem, tag: int(t)}
}

// Kind returns which variant is held.
func (o ObjectHere) Kind() ObjectKind {
	return o.kind
}

// IsNone reports whether nothing is held.
func (o ObjectHere) IsNone() bool {
	return o.kind == ObjectNone
}

// GameObject returns the held game object kind and whether one is held.
func (o ObjectHere) GameObject() (GameObjectType, bool) {
	if o.kind != ObjectGameObject {
		return 0, false
	}
	return GameObjectType(o.tag), true
}

// Item returns the held item kind and whether one is held.
func (o ObjectHere) Item() (ItemType, bool) {
	if o.kind != ObjectItem {
		return 0, false
	}
	return ItemType(o.tag), true
}

// MapCell is a single grid cell.
type MapCell struct {
	Image       byte
	AreaMarker  int // connected component id, -1 until assigned
	ZoneMarker  int // room purpose tag, -1 when untagged
	Visited     bool
	Coordinates Position
	ObjectHere  ObjectHere
}

// Walkable reports whether the cell's symbol can be stepped on.
func (c *MapCell) Walkable() bool {
	return IsWalkable(c.Image)
}

// RemovalParams tunes dead-end pruning passes.
type RemovalParams struct {
	EmptyCellsAroundMin int `yaml:"empty_cells_around_min"`
	EmptyCellsAroundMax int `yaml:"empty_cells_around_max"`
	Passes              int `yaml:"passes"`
}

// DefaultRemovalParams prunes corridor tips: dead ends with one to three
// floor cells around them, in a single pass.
func DefaultRemovalParams() RemovalParams {
	return RemovalParams{
		EmptyCellsAroundMin: 1,
		EmptyCellsAroundMax: 3,
		Passes:              1,
	}
}
