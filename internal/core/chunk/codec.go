package chunk

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/gridcore/gridcore/internal/core/content"
	"github.com/gridcore/gridcore/internal/core/geom"
)

// record is the persisted form of a chunk: its coordinate plus the encoded
// record of every member, in list order. The checksum covers the member
// payloads so a truncated or hand-edited file is rejected on load.
type record struct {
	Pos      geom.Vec2         `json:"pos"`
	Tiles    []json.RawMessage `json:"tiles"`
	Actors   []json.RawMessage `json:"actors"`
	Checksum uint64            `json:"checksum"`
}

func (r *record) sum() uint64 {
	d := xxhash.New()
	for _, t := range r.Tiles {
		_, _ = d.Write(t)
	}
	for _, a := range r.Actors {
		_, _ = d.Write(a)
	}
	return d.Sum64()
}

// Encode serializes the chunk and all of its members.
func (c *Chunk) Encode() ([]byte, error) {
	rec := record{
		Pos:    geom.V(float64(c.Coord.X), float64(c.Coord.Y)),
		Tiles:  make([]json.RawMessage, 0, len(c.Tiles)),
		Actors: make([]json.RawMessage, 0, len(c.Actors)),
	}

	for _, t := range c.Tiles {
		data, err := content.EncodeTile(t)
		if err != nil {
			return nil, fmt.Errorf("encode tile %q: %w", t.TypeTag(), err)
		}
		rec.Tiles = append(rec.Tiles, data)
	}
	for _, a := range c.Actors {
		data, err := content.EncodeActor(a)
		if err != nil {
			return nil, fmt.Errorf("encode actor %q: %w", a.TypeTag(), err)
		}
		rec.Actors = append(rec.Actors, data)
	}

	rec.Checksum = rec.sum()
	return json.Marshal(rec)
}

// Decode reconstructs a chunk from its serialized form, rebuilding every
// member through the supplied registries. The first member that fails to
// parse fails the whole chunk.
func Decode(data []byte, tiles *content.TileRegistry, actors *content.ActorRegistry) (*Chunk, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: chunk: %v", content.ErrMalformedRecord, err)
	}

	if rec.Checksum != 0 && rec.Checksum != rec.sum() {
		return nil, fmt.Errorf("%w: chunk checksum mismatch", content.ErrMalformedRecord)
	}

	c := New(Coord{X: int(rec.Pos.X), Y: int(rec.Pos.Y)})

	for _, raw := range rec.Tiles {
		tile, err := tiles.Decode(raw)
		if err != nil {
			return nil, err
		}
		c.Tiles = append(c.Tiles, tile)
	}
	for _, raw := range rec.Actors {
		actor, err := actors.Decode(raw)
		if err != nil {
			return nil, err
		}
		c.Actors = append(c.Actors, actor)
	}

	return c, nil
}
