package render

import (
	"github.com/gridcore/gridcore/internal/core/geom"
)

// TextureID is an opaque handle to a texture owned by the rendering backend.
// The engine only groups and forwards it; it never decodes image data.
type TextureID uint64

// Submitter receives flushed draw instances. The rendering backend implements
// this; instances arrive grouped by texture so the backend can minimise state
// changes.
type Submitter interface {
	Submit(tex TextureID, pos geom.Vec2, scale float64, destSize *geom.Vec2)
}

// SubmitterFunc adapts a plain function to the Submitter interface.
type SubmitterFunc func(tex TextureID, pos geom.Vec2, scale float64, destSize *geom.Vec2)

func (f SubmitterFunc) Submit(tex TextureID, pos geom.Vec2, scale float64, destSize *geom.Vec2) {
	f(tex, pos, scale, destSize)
}

type instance struct {
	pos      geom.Vec2
	scale    float64
	destSize *geom.Vec2
}

type group struct {
	tex       TextureID
	instances []instance
}

// Batch queues textured draw submissions and groups them by texture handle.
// Insertion order of textures is preserved across a flush.
type Batch struct {
	groups []group
	sink   Submitter
}

// NewBatch creates an empty batch that flushes into sink.
func NewBatch(sink Submitter) *Batch {
	return &Batch{sink: sink}
}

// Add queues one instance of tex. destSize may be nil to let the backend use
// the texture's native size.
func (b *Batch) Add(tex TextureID, pos geom.Vec2, scale float64, destSize *geom.Vec2) {
	for i := range b.groups {
		if b.groups[i].tex == tex {
			b.groups[i].instances = append(b.groups[i].instances, instance{pos, scale, destSize})
			return
		}
	}
	b.groups = append(b.groups, group{tex: tex, instances: []instance{{pos, scale, destSize}}})
}

// Draw flushes every queued instance, grouped by texture, then clears the
// batch. A nil sink just drops the queue.
func (b *Batch) Draw() {
	if b.sink != nil {
		for _, g := range b.groups {
			for _, in := range g.instances {
				b.sink.Submit(g.tex, in.pos, in.scale, in.destSize)
			}
		}
	}
	b.groups = b.groups[:0]
}

// Clear drops all queued instances without submitting them.
func (b *Batch) Clear() {
	b.groups = b.groups[:0]
}

// Len reports the number of queued instances across all texture groups.
func (b *Batch) Len() int {
	n := 0
	for _, g := range b.groups {
		n += len(g.instances)
	}
	return n
}
