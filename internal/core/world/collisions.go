package world

import (
	"github.com/gridcore/gridcore/internal/core/chunk"
	"github.com/gridcore/gridcore/internal/core/content"
	"github.com/gridcore/gridcore/internal/core/geom"
)

// resolveCollisions runs the global O(n²) pair scan over every actor in the
// visible chunks. Actors are drained into one flat list (with their origin
// chunk recorded alongside) and pushed back afterwards, so the scan never
// holds two chunks' lists at once.
func (w *World) resolveCollisions() {
	var actors []content.Actor
	var origins []chunk.Coord

	for _, coord := range w.visible {
		ch, ok := w.Chunks[coord]
		if !ok {
			continue
		}
		for _, a := range ch.Actors {
			actors = append(actors, a)
			origins = append(origins, coord)
		}
		ch.Actors = ch.Actors[:0]
	}

	for i := 0; i < len(actors); i++ {
		for j := i + 1; j < len(actors); j++ {
			a, b := actors[i], actors[j]
			if !willCollide(a, b) || !approaching(a, b) {
				continue
			}
			// Each side must observe the other's pre-collision state, so
			// b collides against a snapshot of a taken before a's handler
			// ran. The two callbacks are simultaneous from the data's
			// perspective.
			before := a.Clone()
			a.Collide(b)
			b.Collide(before)
		}
	}

	for k, a := range actors {
		if ch, ok := w.Chunks[origins[k]]; ok {
			ch.Actors = append(ch.Actors, a)
		}
	}
}

// willCollide sweeps both bounding boxes one tick forward along their
// velocities and reports whether the swept boxes overlap on both axes.
// Boundary contact counts, so a head-on pair meeting exactly edge to edge
// still registers.
func willCollide(a, b content.Actor) bool {
	nextA := geom.RectAt(a.Pos().Add(a.Velocity()), a.Size())
	nextB := geom.RectAt(b.Pos().Add(b.Velocity()), b.Size())
	return nextA.Overlaps(nextB)
}

// approaching reports whether the pair is closing: the dot product of the
// relative velocity and the separation vector from a to b is positive. A
// separating or already receding pair never collides.
func approaching(a, b content.Actor) bool {
	rel := a.Velocity().Sub(b.Velocity())
	dir := b.Pos().Sub(a.Pos())
	return rel.Dot(dir) > 0
}
