package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gridcore/gridcore/internal/core/geom"
	"github.com/gridcore/gridcore/internal/core/render"
)

// Tile is a static, grid-aligned terrain element. A tile's grid cell is
// implied by its stored position; nothing tracks it separately.
type Tile interface {
	TypeTag() string
	Pos() geom.Vec2
	SetPos(pos geom.Vec2)
	Size() geom.Vec2
	SetSize(size geom.Vec2)

	// MayPass reports whether actors can walk through this tile.
	MayPass() bool

	// Tick runs once per frame while the tile is visible.
	Tick(dt float64, w World)

	// Draw queues the tile at pos into the shared batch.
	Draw(batch *render.Batch, pos geom.Vec2)

	// Interact is called when an actor uses the tile. It reports whether
	// the interaction was consumed.
	Interact(other Actor) bool

	// Clone returns an independent deep copy.
	Clone() Tile
}

// TileRecord is the persisted form of a tile. Any richer per-instance state
// on a concrete tile type is not carried by this record; a decoded tile
// starts from the prototype's defaults with position and size overwritten.
type TileRecord struct {
	Tag  string    `json:"type_tag"`
	Pos  geom.Vec2 `json:"pos"`
	Size geom.Vec2 `json:"size"`
}

// EncodeTile serializes a tile into its compact JSON record.
func EncodeTile(t Tile) ([]byte, error) {
	rec := TileRecord{Tag: t.TypeTag(), Pos: t.Pos(), Size: t.Size()}
	return json.Marshal(rec)
}

// TileRegistry maps a type tag to an owning prototype tile. Creation clones
// the prototype; decoding clones it and overwrites the record fields.
type TileRegistry struct {
	mu         sync.RWMutex
	prototypes map[string]Tile
}

func NewTileRegistry() *TileRegistry {
	return &TileRegistry{prototypes: make(map[string]Tile)}
}

// Register stores t as the prototype for its own type tag. The last
// registration for a tag wins.
func (r *TileRegistry) Register(t Tile) {
	r.mu.Lock()
	r.prototypes[t.TypeTag()] = t
	r.mu.Unlock()
}

// Create clones the prototype registered under tag. The second return is
// false for an unknown tag; callers treat that as skippable, not fatal.
func (r *TileRegistry) Create(tag string) (Tile, bool) {
	r.mu.RLock()
	proto, ok := r.prototypes[tag]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return proto.Clone(), true
}

// Decode reconstructs a tile from its JSON record by cloning the matching
// prototype and overwriting position and size.
func (r *TileRegistry) Decode(data []byte) (Tile, error) {
	var rec TileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: tile: %v", ErrMalformedRecord, err)
	}

	tile, ok := r.Create(rec.Tag)
	if !ok {
		return nil, fmt.Errorf("%w: tile %q", ErrUnknownType, rec.Tag)
	}
	tile.SetPos(rec.Pos)
	tile.SetSize(rec.Size)
	return tile, nil
}
