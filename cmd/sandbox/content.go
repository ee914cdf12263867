package main

import (
	"github.com/gridcore/gridcore/internal/core/chunk"
	"github.com/gridcore/gridcore/internal/core/content"
	"github.com/gridcore/gridcore/internal/core/geom"
	"github.com/gridcore/gridcore/internal/core/render"
)

// Texture handles the sandbox pretends to have loaded. A real host would get
// these from its asset loader.
const (
	texGrass render.TextureID = iota + 1
	texWater
	texSlime
)

type grassTile struct {
	content.BaseTile
}

func newGrassTile() *grassTile {
	t := &grassTile{}
	t.Passable = true
	t.SetSize(geom.Splat(chunk.TileSize))
	return t
}

func (g *grassTile) TypeTag() string { return "grass" }

func (g *grassTile) Draw(batch *render.Batch, pos geom.Vec2) {
	batch.Add(texGrass, pos, chunk.TileSize, nil)
}

func (g *grassTile) Clone() content.Tile {
	c := *g
	return &c
}

type waterTile struct {
	content.BaseTile
}

func newWaterTile() *waterTile {
	t := &waterTile{}
	t.SetSize(geom.Splat(chunk.TileSize))
	return t
}

func (w *waterTile) TypeTag() string { return "water" }

func (w *waterTile) Draw(batch *render.Batch, pos geom.Vec2) {
	batch.Add(texWater, pos, chunk.TileSize, nil)
}

func (w *waterTile) Clone() content.Tile {
	c := *w
	return &c
}

// slime wanders: every second it picks a new axis-aligned direction from its
// own position, so movement is deterministic without shared RNG state.
type slime struct {
	content.BaseActor
	wanderTimer float64
}

func newSlime() *slime {
	s := &slime{}
	s.SetSize(geom.Splat(chunk.TileSize))
	return s
}

func (s *slime) TypeTag() string { return "slime" }

func (s *slime) Tick(dt float64, w content.World) {
	s.wanderTimer += dt
	if s.wanderTimer >= 1.0 {
		s.wanderTimer = 0

		cell := int(s.Position.X/chunk.TileSize) + int(s.Position.Y/chunk.TileSize)
		dir := 1.0
		if cell%2 == 0 {
			dir = -1.0
		}
		if cell%4 < 2 {
			s.SetVelocity(geom.V(dir, 0))
		} else {
			s.SetVelocity(geom.V(0, dir))
		}
	}
	s.BaseActor.Tick(dt, w)
}

func (s *slime) Draw(batch *render.Batch) {
	size := s.Size()
	batch.Add(texSlime, s.Pos(), chunk.TileSize, &size)
}

func (s *slime) Collide(other content.Actor) {
	content.ResolveCollision(s, other)
}

func (s *slime) Clone() content.Actor {
	c := *s
	return &c
}

type plainsBiome struct{}

func (plainsBiome) TypeTag() string { return "plains" }

func (plainsBiome) Suitable(height, _, _ float64) bool { return height >= 0.35 }

func (plainsBiome) GroundTile() string { return "grass" }

func (plainsBiome) SpawnTable() []content.Spawn {
	return []content.Spawn{{Tag: "slime", Chance: 0.02}}
}

func (plainsBiome) Clone() content.Biome { return plainsBiome{} }

type lakeBiome struct{}

func (lakeBiome) TypeTag() string { return "lake" }

func (lakeBiome) Suitable(_, _, _ float64) bool { return true }

func (lakeBiome) GroundTile() string { return "water" }

func (lakeBiome) SpawnTable() []content.Spawn { return nil }

func (lakeBiome) Clone() content.Biome { return lakeBiome{} }

func buildRegistries() (*content.TileRegistry, *content.ActorRegistry, *content.BiomeRegistry) {
	tiles := content.NewTileRegistry()
	tiles.Register(newGrassTile())
	tiles.Register(newWaterTile())

	actors := content.NewActorRegistry()
	actors.Register(newSlime())

	biomes := content.NewBiomeRegistry()
	biomes.Register(plainsBiome{})
	biomes.Register(lakeBiome{})

	return tiles, actors, biomes
}
