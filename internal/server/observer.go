// Package server exposes a read-only debug observer: a websocket endpoint
// that streams per-frame world snapshots to attached clients. The world core
// never imports this package; the host loop pushes snapshots in.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gridcore/gridcore/internal/core/geom"
	"github.com/gridcore/gridcore/internal/core/observability/log"
	"github.com/gridcore/gridcore/internal/core/world"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Snapshot is one frame's worth of observable world state.
type Snapshot struct {
	Frame         uint64  `json:"frame"`
	Chunks        int     `json:"chunks"`
	VisibleChunks int     `json:"visible_chunks"`
	Actors        int     `json:"actors"`
	CameraX       float64 `json:"camera_x"`
	CameraY       float64 `json:"camera_y"`
}

// Snap summarises the world after an Update. Actor counts cover the visible
// chunks only.
func Snap(w *world.World, frame uint64, camera geom.Vec2) Snapshot {
	actors, visible := 0, 0
	for _, coord := range w.VisibleChunks() {
		if ch, ok := w.Chunks[coord]; ok {
			visible++
			actors += len(ch.Actors)
		}
	}
	return Snapshot{
		Frame:         frame,
		Chunks:        len(w.Chunks),
		VisibleChunks: visible,
		Actors:        actors,
		CameraX:       camera.X,
		CameraY:       camera.Y,
	}
}

// Observer serves /ws and fans published snapshots out to every attached
// client. Clients that stop reading are dropped on the next write error.
type Observer struct {
	addr   string
	srv    *http.Server
	logger *log.Logger

	mu      sync.Mutex
	clients map[uuid.UUID]*websocket.Conn
}

func NewObserver(addr string) *Observer {
	return &Observer{
		addr:    addr,
		clients: make(map[uuid.UUID]*websocket.Conn),
		logger:  log.Provide().With(zap.String("component", "observer")),
	}
}

// Start begins serving in the background. It returns once the listener
// goroutine is launched.
func (o *Observer) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", o.handleWS)
	o.srv = &http.Server{Addr: o.addr, Handler: mux}

	go func() {
		o.logger.Info("observer listening", zap.String("addr", o.addr))
		if err := o.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			o.logger.Error("observer server failed", zap.Error(err))
		}
	}()
}

// Stop closes every client and shuts the listener down.
func (o *Observer) Stop(ctx context.Context) error {
	o.mu.Lock()
	for id, conn := range o.clients {
		_ = conn.Close()
		delete(o.clients, id)
	}
	o.mu.Unlock()

	if o.srv == nil {
		return nil
	}
	return o.srv.Shutdown(ctx)
}

// Publish sends the snapshot to every attached client.
func (o *Observer) Publish(s Snapshot) {
	data, err := json.Marshal(s)
	if err != nil {
		o.logger.Error("encode snapshot", zap.Error(err))
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	for id, conn := range o.clients {
		conn.SetWriteDeadline(time.Now().Add(time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			o.logger.Debug("dropping observer client", zap.String("client", id.String()), zap.Error(err))
			_ = conn.Close()
			delete(o.clients, id)
		}
	}
}

// ClientCount reports the number of attached clients.
func (o *Observer) ClientCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.clients)
}

func (o *Observer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		o.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	id := uuid.New()
	o.mu.Lock()
	o.clients[id] = conn
	o.mu.Unlock()
	o.logger.Info("observer client attached", zap.String("client", id.String()))

	// Drain the read side so pings and close frames are processed; the
	// stream is write-only from our end.
	go func() {
		defer func() {
			o.mu.Lock()
			delete(o.clients, id)
			o.mu.Unlock()
			_ = conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
