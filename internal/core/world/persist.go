package world

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gridcore/gridcore/internal/core/chunk"
	"github.com/gridcore/gridcore/internal/core/content"
	"github.com/gridcore/gridcore/internal/core/observability/log"
)

// Meta is the persisted world metadata, stored as <dir>/world.json.
type Meta struct {
	Name string    `json:"name"`
	ID   uuid.UUID `json:"id"`
}

const saveWriters = 4

// Save writes the world metadata plus one file per loaded chunk, named by
// its coordinate. Synchronous from the caller's view; chunk files fan out
// over a bounded worker group.
func (w *World) Save(dir string) error {
	chunksDir := filepath.Join(dir, "chunks")
	if err := os.MkdirAll(chunksDir, 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}

	meta, err := json.Marshal(Meta{Name: w.name, ID: w.id})
	if err != nil {
		return fmt.Errorf("encode world meta: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "world.json"), meta, 0o644); err != nil {
		return fmt.Errorf("write world meta: %w", err)
	}

	var g errgroup.Group
	g.SetLimit(saveWriters)
	for coord, ch := range w.Chunks {
		coord, ch := coord, ch
		g.Go(func() error {
			data, err := ch.Encode()
			if err != nil {
				return fmt.Errorf("encode chunk (%d,%d): %w", coord.X, coord.Y, err)
			}
			name := fmt.Sprintf("chunk_%d_%d.json", coord.X, coord.Y)
			if err := os.WriteFile(filepath.Join(chunksDir, name), data, 0o644); err != nil {
				return fmt.Errorf("write chunk (%d,%d): %w", coord.X, coord.Y, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	w.logger.Info("world saved", zap.String("dir", dir), zap.Int("chunks", len(w.Chunks)))
	return nil
}

// Load reads a world saved by Save. A metadata failure fails the whole load;
// a chunk file that cannot be read or parsed is skipped and the rest of the
// world loads without it.
func Load(dir string, tiles *content.TileRegistry, actors *content.ActorRegistry, biomes *content.BiomeRegistry) (*World, error) {
	data, err := os.ReadFile(filepath.Join(dir, "world.json"))
	if err != nil {
		return nil, fmt.Errorf("read world meta: %w", err)
	}
	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse world meta: %w", err)
	}

	w := New(meta.Name, tiles, actors, biomes)
	if meta.ID != uuid.Nil {
		w.id = meta.ID
	}

	entries, err := os.ReadDir(filepath.Join(dir, "chunks"))
	if err != nil {
		// A world with no chunks directory is just empty.
		return w, nil
	}

	logger := log.Provide()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, "chunks", entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable chunk file", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		ch, err := chunk.Decode(raw, tiles, actors)
		if err != nil {
			logger.Warn("skipping corrupt chunk file", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		w.AddChunk(ch)
	}

	return w, nil
}
