// Package content defines the polymorphic world-content contracts (tiles,
// actors, biomes), the prototype registries that create and decode them by
// string type tag, and the shared serialization records.
package content

// World is the slice of the world runtime that ticking content is allowed to
// see. The concrete implementation lives in internal/core/world; declaring
// the contract here keeps the dependency pointing one way.
type World interface {
	// ActorsByTag returns every actor with the given type tag in the
	// currently visible chunks.
	ActorsByTag(tag string) []Actor
	// TilesByTag returns every tile with the given type tag in the
	// currently visible chunks.
	TilesByTag(tag string) []Tile
}

// Direction identifies the side an interaction or attack came from.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "unknown"
}

// Spawn is one weighted entry of a biome's actor spawn table.
type Spawn struct {
	Tag    string
	Chance float64
}
