// Package world owns the sparse chunk map, the content registries and the
// per-frame loop: visibility windowing, actor migration across chunk
// boundaries, the global collision pass and member ticking.
package world

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gridcore/gridcore/internal/core/chunk"
	"github.com/gridcore/gridcore/internal/core/content"
	"github.com/gridcore/gridcore/internal/core/geom"
	"github.com/gridcore/gridcore/internal/core/observability/log"
	"github.com/gridcore/gridcore/internal/core/render"
)

// RenderDistance is the radius, in chunks, of the visible window kept around
// the camera.
const RenderDistance = 2

// World is the single-threaded runtime core. The host calls Update then Draw
// once per frame; nothing here blocks or spawns work mid-frame.
type World struct {
	Chunks map[chunk.Coord]*chunk.Chunk

	TileRegistry  *content.TileRegistry
	ActorRegistry *content.ActorRegistry
	BiomeRegistry *content.BiomeRegistry

	visible []chunk.Coord
	batch   *render.Batch
	name    string
	id      uuid.UUID
	logger  *log.Logger
}

var _ content.World = (*World)(nil)

// New creates an empty world. The draw batch starts without a rendering
// sink; attach one with AttachRenderer before calling Draw.
func New(name string, tiles *content.TileRegistry, actors *content.ActorRegistry, biomes *content.BiomeRegistry) *World {
	logger := log.Provide().With(zap.String("world", name))
	logger.Info("creating world")
	return &World{
		Chunks:        make(map[chunk.Coord]*chunk.Chunk),
		TileRegistry:  tiles,
		ActorRegistry: actors,
		BiomeRegistry: biomes,
		batch:         render.NewBatch(nil),
		name:          name,
		id:            uuid.New(),
		logger:        logger,
	}
}

// Name returns the world's display name, used for persistence.
func (w *World) Name() string { return w.name }

// ID returns the world's stable identity, kept across save/load.
func (w *World) ID() uuid.UUID { return w.id }

// AttachRenderer wires the backend that receives flushed draw submissions.
func (w *World) AttachRenderer(sink render.Submitter) {
	w.batch = render.NewBatch(sink)
}

// AddChunk inserts the chunk keyed by its coordinate. Idempotent per key:
// the first chunk added at a coordinate wins.
func (w *World) AddChunk(c *chunk.Chunk) {
	if _, exists := w.Chunks[c.Coord]; exists {
		return
	}
	w.Chunks[c.Coord] = c
}

// VisibleChunks returns the coordinates computed by the last Update.
func (w *World) VisibleChunks() []chunk.Coord { return w.visible }

// Update advances the world by one frame: recompute the visible window,
// migrate actors whose position moved into a different chunk, run the global
// collision pass, then tick every visible chunk.
func (w *World) Update(camera, viewport geom.Vec2, dt float64) {
	w.refreshVisible(chunk.CoordAt(camera))
	w.migrateActors()
	w.resolveCollisions()

	for _, coord := range w.visible {
		ch, ok := w.Chunks[coord]
		if !ok {
			continue
		}
		// The chunk is taken out of the map while it ticks, so a member
		// hook reaching back into the world can never alias it.
		delete(w.Chunks, coord)
		ch.Update(w, camera, viewport, dt)
		w.Chunks[coord] = ch
	}
}

// Draw submits all visible content in two batch passes, tiles first, so
// terrain always renders under actors.
func (w *World) Draw(camera, viewport geom.Vec2) {
	w.batch.Clear()
	for _, coord := range w.visible {
		if ch, ok := w.Chunks[coord]; ok {
			ch.DrawTiles(camera, viewport, w.batch)
		}
	}
	w.batch.Draw()

	w.batch.Clear()
	for _, coord := range w.visible {
		if ch, ok := w.Chunks[coord]; ok {
			ch.DrawActors(w.batch)
		}
	}
	w.batch.Draw()
}

// ActorsByTag returns every matching actor in the visible chunks.
func (w *World) ActorsByTag(tag string) []content.Actor {
	var out []content.Actor
	for _, coord := range w.visible {
		if ch, ok := w.Chunks[coord]; ok {
			out = append(out, ch.ActorsByTag(tag)...)
		}
	}
	return out
}

// TilesByTag returns every matching tile in the visible chunks.
func (w *World) TilesByTag(tag string) []content.Tile {
	var out []content.Tile
	for _, coord := range w.visible {
		if ch, ok := w.Chunks[coord]; ok {
			out = append(out, ch.TilesByTag(tag)...)
		}
	}
	return out
}

func (w *World) refreshVisible(center chunk.Coord) {
	w.visible = w.visible[:0]
	for y := -RenderDistance; y <= RenderDistance; y++ {
		for x := -RenderDistance; x <= RenderDistance; x++ {
			w.visible = append(w.visible, chunk.Coord{X: center.X + x, Y: center.Y + y})
		}
	}
}
