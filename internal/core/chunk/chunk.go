// Package chunk implements the fixed-size spatial partition of the world: a
// dense grid of tiles plus a variable list of actors, with per-frame
// visibility culling and member ticking.
package chunk

import (
	"math"

	"github.com/gridcore/gridcore/internal/core/content"
	"github.com/gridcore/gridcore/internal/core/geom"
	"github.com/gridcore/gridcore/internal/core/render"
)

const (
	// TileSize is the edge length of one tile in world units.
	TileSize = 16.0

	// Side is the number of tiles along one chunk edge.
	Side = 16

	// Pixels is the edge length of one chunk in world units.
	Pixels = TileSize * Side

	// ActivationMargin is the extra distance beyond the viewport within
	// which actors are still ticked and drawn.
	ActivationMargin = 100.0
)

// Coord addresses a chunk in the world's sparse map.
type Coord struct {
	X int
	Y int
}

// CoordAt maps a world-space position to the coordinate of the chunk that
// owns it.
func CoordAt(pos geom.Vec2) Coord {
	return Coord{
		X: int(math.Floor(pos.X / Pixels)),
		Y: int(math.Floor(pos.Y / Pixels)),
	}
}

// Origin returns the world-space position of the chunk's top-left corner.
func (c Coord) Origin() geom.Vec2 {
	return geom.V(float64(c.X)*Pixels, float64(c.Y)*Pixels)
}

// Chunk is a Side×Side tile region plus the actors currently inside it.
// The visible-tile and active-actor index lists are derived every frame and
// never persisted.
type Chunk struct {
	Coord  Coord
	Tiles  []content.Tile
	Actors []content.Actor

	bounds       geom.Rect
	visibleTiles []int
	activeActors []int
}

// New creates an empty chunk at the given coordinate. Bounds are derived
// once here and never change.
func New(coord Coord) *Chunk {
	origin := coord.Origin()
	return &Chunk{
		Coord:  coord,
		Tiles:  make([]content.Tile, 0, Side*Side),
		bounds: geom.RectAt(origin, geom.Splat(Pixels)),
	}
}

// Bounds returns the chunk's static world-space bounding box.
func (c *Chunk) Bounds() geom.Rect { return c.bounds }

// Visible reports whether the chunk's bounding box intersects the viewport
// rectangle centered on camera. Boundary contact counts as visible.
func (c *Chunk) Visible(camera, viewport geom.Vec2) bool {
	return c.bounds.Overlaps(geom.CenteredRect(camera, viewport))
}

// Update ticks the chunk's members for one frame. It is a no-op when the
// chunk is outside the viewport. Active actors tick before visible tiles.
func (c *Chunk) Update(w content.World, camera, viewport geom.Vec2, dt float64) {
	if !c.Visible(camera, viewport) {
		return
	}

	c.refreshActiveActors(camera, viewport)
	c.refreshVisibleTiles(camera, viewport)

	for _, i := range c.activeActors {
		if i < len(c.Actors) {
			c.Actors[i].Tick(dt, w)
		}
	}
	for _, i := range c.visibleTiles {
		if i < len(c.Tiles) {
			c.Tiles[i].Tick(dt, w)
		}
	}
}

// DrawTiles queues every visible tile into the batch. The visible subset is
// recomputed here so DrawTiles works independently of Update.
func (c *Chunk) DrawTiles(camera, viewport geom.Vec2, batch *render.Batch) {
	if !c.Visible(camera, viewport) {
		return
	}

	c.refreshVisibleTiles(camera, viewport)

	for _, i := range c.visibleTiles {
		tile := c.Tiles[i]
		tile.Draw(batch, tile.Pos())
	}
}

// DrawActors queues every active actor into the batch, using the subset
// computed by the last Update.
func (c *Chunk) DrawActors(batch *render.Batch) {
	for _, i := range c.activeActors {
		if i < len(c.Actors) {
			c.Actors[i].Draw(batch)
		}
	}
}

// TilesByTag returns every tile whose type tag matches exactly.
func (c *Chunk) TilesByTag(tag string) []content.Tile {
	var out []content.Tile
	for _, t := range c.Tiles {
		if t.TypeTag() == tag {
			out = append(out, t)
		}
	}
	return out
}

// ActorsByTag returns every actor whose type tag matches exactly.
func (c *Chunk) ActorsByTag(tag string) []content.Actor {
	var out []content.Actor
	for _, a := range c.Actors {
		if a.TypeTag() == tag {
			out = append(out, a)
		}
	}
	return out
}

func (c *Chunk) refreshVisibleTiles(camera, viewport geom.Vec2) {
	c.visibleTiles = c.visibleTiles[:0]
	view := geom.CenteredRect(camera, viewport)

	startX := int(math.Floor((view.Min.X - c.bounds.Min.X) / TileSize))
	endX := int(math.Ceil((view.Max.X - c.bounds.Min.X) / TileSize))
	startY := int(math.Floor((view.Min.Y - c.bounds.Min.Y) / TileSize))
	endY := int(math.Ceil((view.Max.Y - c.bounds.Min.Y) / TileSize))

	startX = clamp(startX, 0, Side-1)
	endX = clamp(endX, 0, Side)
	startY = clamp(startY, 0, Side-1)
	endY = clamp(endY, 0, Side)

	for y := startY; y < endY; y++ {
		for x := startX; x < endX; x++ {
			if idx := y*Side + x; idx < len(c.Tiles) {
				c.visibleTiles = append(c.visibleTiles, idx)
			}
		}
	}
}

func (c *Chunk) refreshActiveActors(camera, viewport geom.Vec2) {
	c.activeActors = c.activeActors[:0]
	zone := geom.CenteredRect(camera, viewport).Expand(ActivationMargin)

	for i, a := range c.Actors {
		if zone.Contains(a.Pos()) {
			c.activeActors = append(c.activeActors, i)
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
