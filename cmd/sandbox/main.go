// The sandbox runs the world core headless: it generates terrain around a
// slowly panning camera, ticks the frame loop at a fixed rate, optionally
// streams snapshots to debug observers, and saves the world on shutdown.
package main

import (
	"context"
	"flag"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/gridcore/gridcore/internal/config"
	"github.com/gridcore/gridcore/internal/core/chunk"
	"github.com/gridcore/gridcore/internal/core/geom"
	"github.com/gridcore/gridcore/internal/core/observability/log"
	"github.com/gridcore/gridcore/internal/core/world"
	"github.com/gridcore/gridcore/internal/core/worldgen"
	"github.com/gridcore/gridcore/internal/server"
)

func main() {
	cfgPath := flag.String("config", "sandbox.yaml", "path to the sandbox config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		os.Stderr.WriteString("sandbox: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := log.New(cfg.LogLevel)
	defer logger.Sync()

	tiles, actors, biomes := buildRegistries()

	w, err := world.Load(cfg.SaveDir, tiles, actors, biomes)
	if err != nil {
		logger.Info("no existing save, starting fresh", zap.Error(err))
		w = world.New(cfg.WorldName, tiles, actors, biomes)
	}

	gen := worldgen.New(cfg.Seed, tiles, actors, biomes)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stopCh
		cancel()
	}()

	var obs *server.Observer
	if cfg.Observer.Enabled {
		obs = server.NewObserver(cfg.Observer.Addr)
		obs.Start()
	}

	run(ctx, cfg, w, gen, obs, logger)

	if obs != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
		if err := obs.Stop(shutdownCtx); err != nil {
			logger.Warn("observer shutdown", zap.Error(err))
		}
		done()
	}

	if err := w.Save(cfg.SaveDir); err != nil {
		logger.Error("saving world failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, w *world.World, gen *worldgen.Generator, obs *server.Observer, logger *log.Logger) {
	dt := 1.0 / float64(cfg.TickRate)
	viewport := geom.V(cfg.Viewport.Width, cfg.Viewport.Height)

	ticker := time.NewTicker(time.Duration(float64(time.Second) * dt))
	defer ticker.Stop()

	var frame uint64
	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down", zap.Uint64("frames", frame))
			return
		case <-ticker.C:
		}

		camera := cameraAt(frame, dt)
		gen.Window(w, chunk.CoordAt(camera), world.RenderDistance)

		w.Update(camera, viewport, dt)
		w.Draw(camera, viewport)

		if obs != nil {
			obs.Publish(server.Snap(w, frame, camera))
		}
		frame++
	}
}

// cameraAt pans the camera along a wide circle so the visible window keeps
// crossing chunk boundaries and exercising generation and migration.
func cameraAt(frame uint64, dt float64) geom.Vec2 {
	t := float64(frame) * dt
	const radius = 3 * chunk.Pixels
	return geom.V(radius*math.Cos(t/30), radius*math.Sin(t/30))
}
