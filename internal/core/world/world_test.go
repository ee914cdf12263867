package world

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridcore/gridcore/internal/core/chunk"
	"github.com/gridcore/gridcore/internal/core/content"
	"github.com/gridcore/gridcore/internal/core/geom"
	"github.com/gridcore/gridcore/internal/core/render"
)

type dirtTile struct {
	content.BaseTile
}

func (d *dirtTile) TypeTag() string { return "dirt" }
func (d *dirtTile) Draw(b *render.Batch, pos geom.Vec2) { b.Add(1, pos, chunk.TileSize, nil) }
func (d *dirtTile) Clone() content.Tile {
	c := *d
	return &c
}

type walker struct {
	content.BaseActor
	collisions int
	onTick     func(w content.World)
}

func (a *walker) TypeTag() string { return "walker" }
func (a *walker) Draw(b *render.Batch) { b.Add(2, a.Pos(), chunk.TileSize, nil) }
func (a *walker) Tick(dt float64, w content.World) {
	if a.onTick != nil {
		a.onTick(w)
	}
	a.BaseActor.Tick(dt, w)
}
func (a *walker) Collide(other content.Actor) {
	a.collisions++
	content.ResolveCollision(a, other)
}
func (a *walker) Clone() content.Actor {
	c := *a
	return &c
}

func newWalker(pos, vel geom.Vec2) *walker {
	a := &walker{}
	a.SetPos(pos)
	a.SetSize(geom.Splat(chunk.TileSize))
	a.SetVelocity(vel)
	return a
}

func testWorld(t *testing.T) *World {
	t.Helper()
	tiles := content.NewTileRegistry()
	tiles.Register(&dirtTile{})
	actors := content.NewActorRegistry()
	actors.Register(&walker{})
	return New("test", tiles, actors, content.NewBiomeRegistry())
}

// center of chunk (0,0); the 5x5 window around it covers (-2,-2)..(2,2).
var camera = geom.V(128, 128)

var viewport = geom.V(256, 256)

func TestAddChunkFirstWriterWins(t *testing.T) {
	w := testWorld(t)

	first := chunk.New(chunk.Coord{X: 0, Y: 0})
	first.Actors = append(first.Actors, newWalker(geom.V(10, 10), geom.Vec2{}))
	w.AddChunk(first)

	w.AddChunk(chunk.New(chunk.Coord{X: 0, Y: 0}))

	require.Len(t, w.Chunks, 1)
	assert.Len(t, w.Chunks[chunk.Coord{X: 0, Y: 0}].Actors, 1)
}

func TestUpdateVisibleWindow(t *testing.T) {
	w := testWorld(t)
	w.Update(camera, viewport, 1.0/60.0)

	vis := w.VisibleChunks()
	require.Len(t, vis, 25)
	assert.Contains(t, vis, chunk.Coord{X: -2, Y: -2})
	assert.Contains(t, vis, chunk.Coord{X: 2, Y: 2})
	assert.NotContains(t, vis, chunk.Coord{X: 3, Y: 0})
}

func TestUpdateMigratesActorToOwningChunk(t *testing.T) {
	w := testWorld(t)
	home := chunk.New(chunk.Coord{X: 0, Y: 0})
	east := chunk.New(chunk.Coord{X: 1, Y: 0})
	w.AddChunk(home)
	w.AddChunk(east)

	// Stored in (0,0) but positioned inside (1,0).
	home.Actors = append(home.Actors, newWalker(geom.V(300, 10), geom.Vec2{}))

	w.Update(camera, viewport, 1.0/60.0)

	assert.Empty(t, home.Actors)
	require.Len(t, east.Actors, 1)
	assert.Equal(t, chunk.Coord{X: 1, Y: 0}, chunk.CoordAt(east.Actors[0].Pos()))
}

func TestMigrationAppliesDescendingIndices(t *testing.T) {
	w := testWorld(t)
	home := chunk.New(chunk.Coord{X: 0, Y: 0})
	east := chunk.New(chunk.Coord{X: 1, Y: 0})
	w.AddChunk(home)
	w.AddChunk(east)

	// Indices 0 and 2 migrate; index 1 stays. Ascending application would
	// remove the wrong actor at index 2 after index 0 shifts the list.
	home.Actors = append(home.Actors,
		newWalker(geom.V(260, 10), geom.Vec2{}),
		newWalker(geom.V(10, 10), geom.Vec2{}),
		newWalker(geom.V(280, 40), geom.Vec2{}),
	)

	w.Update(camera, viewport, 1.0/60.0)

	require.Len(t, home.Actors, 1)
	assert.Equal(t, geom.V(10, 10), home.Actors[0].Pos())
	require.Len(t, east.Actors, 2)

	// Migration invariant: every remaining actor sits in the chunk its
	// position maps to.
	for coord, ch := range w.Chunks {
		for _, a := range ch.Actors {
			assert.Equal(t, coord, chunk.CoordAt(a.Pos()))
		}
	}
}

func TestMigrationToMissingChunkDropsActor(t *testing.T) {
	w := testWorld(t)
	home := chunk.New(chunk.Coord{X: 0, Y: 0})
	w.AddChunk(home)

	home.Actors = append(home.Actors, newWalker(geom.V(300, 10), geom.Vec2{}))

	w.Update(camera, viewport, 1.0/60.0)

	assert.Empty(t, home.Actors)
	require.Len(t, w.Chunks, 1)
}

func TestHeadOnCollisionZeroesApproachAxis(t *testing.T) {
	w := testWorld(t)
	home := chunk.New(chunk.Coord{X: 0, Y: 0})
	w.AddChunk(home)

	// 1x1-tile actors two tiles apart on x, each closing at two tiles per
	// tick, one with a y drift that must survive.
	a := newWalker(geom.V(0, 0), geom.V(32, 5))
	b := newWalker(geom.V(48, 0), geom.V(-32, 0))
	home.Actors = append(home.Actors, a, b)

	w.Update(camera, viewport, 1.0/60.0)

	assert.Equal(t, float64(0), a.Velocity().X)
	assert.Equal(t, float64(5), a.Velocity().Y)
	assert.Equal(t, geom.Vec2{}, b.Velocity())
	assert.Equal(t, 1, a.collisions)
	assert.Equal(t, 1, b.collisions)
}

func TestNoCollisionWhenReceding(t *testing.T) {
	w := testWorld(t)
	home := chunk.New(chunk.Coord{X: 0, Y: 0})
	w.AddChunk(home)

	// Overlapping boxes moving apart: will_collide holds, approaching does
	// not, so neither side gets a callback.
	a := newWalker(geom.V(0, 0), geom.V(-1, 0))
	b := newWalker(geom.V(8, 0), geom.V(1, 0))
	home.Actors = append(home.Actors, a, b)

	w.Update(camera, viewport, 1.0/60.0)

	assert.Zero(t, a.collisions)
	assert.Zero(t, b.collisions)
	assert.Equal(t, geom.V(-1, 0), a.Velocity())
}

func TestNoCollisionWhenApart(t *testing.T) {
	w := testWorld(t)
	home := chunk.New(chunk.Coord{X: 0, Y: 0})
	w.AddChunk(home)

	a := newWalker(geom.V(0, 0), geom.V(1, 0))
	b := newWalker(geom.V(200, 0), geom.V(-1, 0))
	home.Actors = append(home.Actors, a, b)

	w.Update(camera, viewport, 1.0/60.0)

	assert.Zero(t, a.collisions)
	assert.Zero(t, b.collisions)
}

func TestActorTickSeesWorld(t *testing.T) {
	w := testWorld(t)
	home := chunk.New(chunk.Coord{X: 0, Y: 0})
	w.AddChunk(home)

	var seen int
	a := newWalker(geom.V(10, 10), geom.Vec2{})
	a.onTick = func(cw content.World) {
		seen = len(cw.ActorsByTag("walker"))
	}
	home.Actors = append(home.Actors, a, newWalker(geom.V(40, 40), geom.Vec2{}))

	w.Update(camera, viewport, 1.0/60.0)

	// The ticking actor's own chunk is out of the map while it runs; it
	// sees the visible world minus that chunk.
	assert.Zero(t, seen)

	w.Update(camera, viewport, 1.0/60.0)
	assert.Zero(t, seen)
}

func TestLookupsCoverVisibleChunks(t *testing.T) {
	w := testWorld(t)
	near := chunk.New(chunk.Coord{X: 0, Y: 0})
	near.Tiles = append(near.Tiles, &dirtTile{})
	near.Actors = append(near.Actors, newWalker(geom.V(10, 10), geom.Vec2{}))
	far := chunk.New(chunk.Coord{X: 50, Y: 50})
	far.Actors = append(far.Actors, newWalker(geom.V(50*256+10, 50*256+10), geom.Vec2{}))
	w.AddChunk(near)
	w.AddChunk(far)

	w.Update(camera, viewport, 1.0/60.0)

	assert.Len(t, w.ActorsByTag("walker"), 1)
	assert.Len(t, w.TilesByTag("dirt"), 1)
	assert.Empty(t, w.ActorsByTag("slime"))
}

func TestDrawTwoPassOrder(t *testing.T) {
	w := testWorld(t)
	home := chunk.New(chunk.Coord{X: 0, Y: 0})
	home.Tiles = append(home.Tiles, func() content.Tile {
		d := &dirtTile{}
		d.SetPos(geom.V(0, 0))
		d.SetSize(geom.Splat(chunk.TileSize))
		return d
	}())
	home.Actors = append(home.Actors, newWalker(geom.V(10, 10), geom.Vec2{}))
	w.AddChunk(home)

	var order []render.TextureID
	w.AttachRenderer(render.SubmitterFunc(func(tex render.TextureID, _ geom.Vec2, _ float64, _ *geom.Vec2) {
		order = append(order, tex)
	}))

	w.Update(camera, viewport, 1.0/60.0)
	w.Draw(camera, viewport)

	// Tile pass (texture 1) flushes before the actor pass (texture 2).
	require.Equal(t, []render.TextureID{1, 2}, order)
}

func saveTestWorld(t *testing.T) (*World, string) {
	t.Helper()
	w := testWorld(t)
	for x := 0; x < 3; x++ {
		c := chunk.New(chunk.Coord{X: x, Y: 0})
		d := &dirtTile{}
		d.SetPos(c.Coord.Origin())
		d.SetSize(geom.Splat(chunk.TileSize))
		c.Tiles = append(c.Tiles, d)
		c.Actors = append(c.Actors, newWalker(c.Coord.Origin().Add(geom.V(8, 8)), geom.V(1, 0)))
		w.AddChunk(c)
	}

	dir := t.TempDir()
	require.NoError(t, w.Save(dir))
	return w, dir
}

func TestSaveLoadRoundTrip(t *testing.T) {
	orig, dir := saveTestWorld(t)

	tiles := content.NewTileRegistry()
	tiles.Register(&dirtTile{})
	actors := content.NewActorRegistry()
	actors.Register(&walker{})

	loaded, err := Load(dir, tiles, actors, content.NewBiomeRegistry())
	require.NoError(t, err)

	assert.Equal(t, orig.Name(), loaded.Name())
	assert.Equal(t, orig.ID(), loaded.ID())
	require.Len(t, loaded.Chunks, 3)

	got := loaded.Chunks[chunk.Coord{X: 1, Y: 0}]
	require.NotNil(t, got)
	require.Len(t, got.Tiles, 1)
	require.Len(t, got.Actors, 1)
	assert.Equal(t, geom.V(256+8, 8), got.Actors[0].Pos())
	assert.Equal(t, geom.V(1, 0), got.Actors[0].Velocity())
}

func TestLoadSkipsCorruptChunk(t *testing.T) {
	_, dir := saveTestWorld(t)

	victim := filepath.Join(dir, "chunks", "chunk_1_0.json")
	require.NoError(t, os.WriteFile(victim, []byte("{definitely not a chunk"), 0o644))

	tiles := content.NewTileRegistry()
	tiles.Register(&dirtTile{})
	actors := content.NewActorRegistry()
	actors.Register(&walker{})

	loaded, err := Load(dir, tiles, actors, content.NewBiomeRegistry())
	require.NoError(t, err)
	assert.Len(t, loaded.Chunks, 2)
}

func TestLoadMissingMetaFails(t *testing.T) {
	tiles := content.NewTileRegistry()
	actors := content.NewActorRegistry()

	_, err := Load(t.TempDir(), tiles, actors, content.NewBiomeRegistry())
	assert.Error(t, err)
}
