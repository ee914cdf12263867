// Package worldgen builds chunks from the registered biomes: perlin fields
// classify each cell, the winning biome supplies the ground tile and a
// weighted actor spawn table. Generation is deterministic: the same seed and
// chunk coordinate always produce the same chunk, regardless of the order
// chunks are generated in.
package worldgen

import (
	"math/rand"

	"github.com/aquilax/go-perlin"
	"go.uber.org/zap"

	"github.com/gridcore/gridcore/internal/core/chunk"
	"github.com/gridcore/gridcore/internal/core/content"
	"github.com/gridcore/gridcore/internal/core/geom"
	"github.com/gridcore/gridcore/internal/core/observability/log"
	"github.com/gridcore/gridcore/internal/core/world"
)

const (
	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 3

	// World-space frequency of the climate fields. Low enough that a biome
	// spans many chunks.
	fieldScale = 1.0 / 2048.0
)

// Generator creates chunks for a fixed seed and registry set.
type Generator struct {
	tiles  *content.TileRegistry
	actors *content.ActorRegistry
	biomes *content.BiomeRegistry

	seed        int64
	height      *perlin.Perlin
	moisture    *perlin.Perlin
	temperature *perlin.Perlin

	logger *log.Logger
}

// New builds a generator. The three climate fields use decorrelated seeds
// derived from the world seed.
func New(seed int64, tiles *content.TileRegistry, actors *content.ActorRegistry, biomes *content.BiomeRegistry) *Generator {
	return &Generator{
		tiles:       tiles,
		actors:      actors,
		biomes:      biomes,
		seed:        seed,
		height:      perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed),
		moisture:    perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed+1),
		temperature: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed+2),
		logger:      log.Provide().With(zap.Int64("seed", seed)),
	}
}

// Chunk generates the chunk at coord: a dense ground-tile grid plus any
// actors rolled from the cell biome's spawn table. Cells with no suitable
// biome, and tags missing from the registries, are skipped rather than
// failing the chunk.
func (g *Generator) Chunk(coord chunk.Coord) *chunk.Chunk {
	c := chunk.New(coord)
	origin := coord.Origin()
	rng := rand.New(rand.NewSource(chunkSeed(g.seed, coord)))

	for y := 0; y < chunk.Side; y++ {
		for x := 0; x < chunk.Side; x++ {
			pos := origin.Add(geom.V(float64(x)*chunk.TileSize, float64(y)*chunk.TileSize))

			biome, ok := g.biomes.Find(g.sample(g.height, pos), g.sample(g.moisture, pos), g.sample(g.temperature, pos))
			if !ok {
				continue
			}

			tile, ok := g.tiles.Create(biome.GroundTile())
			if !ok {
				g.logger.Warn("biome references unregistered tile",
					zap.String("biome", biome.TypeTag()),
					zap.String("tile", biome.GroundTile()),
				)
				continue
			}
			tile.SetPos(pos)
			tile.SetSize(geom.Splat(chunk.TileSize))
			c.Tiles = append(c.Tiles, tile)

			for _, spawn := range biome.SpawnTable() {
				if rng.Float64() >= spawn.Chance {
					continue
				}
				actor, ok := g.actors.Create(spawn.Tag)
				if !ok {
					continue
				}
				actor.SetPos(pos)
				if actor.Size() == (geom.Vec2{}) {
					actor.SetSize(geom.Splat(chunk.TileSize))
				}
				c.Actors = append(c.Actors, actor)
			}
		}
	}

	return c
}

// Window generates and adds every missing chunk in a square window of the
// given radius around center. Chunks already present are left alone.
func (g *Generator) Window(w *world.World, center chunk.Coord, radius int) {
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			coord := chunk.Coord{X: center.X + x, Y: center.Y + y}
			if _, ok := w.Chunks[coord]; ok {
				continue
			}
			w.AddChunk(g.Chunk(coord))
		}
	}
}

// sample reads a climate field at a world position, normalised to [0,1].
func (g *Generator) sample(p *perlin.Perlin, pos geom.Vec2) float64 {
	v := (p.Noise2D(pos.X*fieldScale, pos.Y*fieldScale) + 1) / 2
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// chunkSeed mixes the world seed with the chunk coordinate so spawn rolls
// are stable per chunk. Murmur-finalizer style avalanching; large odd
// constants decorrelate the axes.
func chunkSeed(seed int64, coord chunk.Coord) int64 {
	h := uint64(seed)
	h ^= uint64(uint32(coord.X)) * 0x9e3779b1
	h ^= uint64(uint32(coord.Y)) * 0x85ebca6b
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return int64(h)
}
