package world

import (
	"sort"

	"go.uber.org/zap"

	"github.com/gridcore/gridcore/internal/core/chunk"
)

type pendingMove struct {
	from  chunk.Coord
	to    chunk.Coord
	index int
}

// migrateActors moves every actor whose position now maps to a different
// chunk than the one storing it. Moves are applied per source chunk in
// descending index order: removing element i shifts every later index down,
// so ascending application would act on the wrong actors.
func (w *World) migrateActors() {
	var moves []pendingMove
	for _, coord := range w.visible {
		ch, ok := w.Chunks[coord]
		if !ok {
			continue
		}
		for i, a := range ch.Actors {
			if target := chunk.CoordAt(a.Pos()); target != coord {
				moves = append(moves, pendingMove{from: coord, to: target, index: i})
			}
		}
	}

	sort.SliceStable(moves, func(i, j int) bool {
		if moves[i].from != moves[j].from {
			return false
		}
		return moves[i].index > moves[j].index
	})

	for _, m := range moves {
		ch, ok := w.Chunks[m.from]
		if !ok {
			continue
		}
		if m.index >= len(ch.Actors) {
			// Stale index from an earlier removal in this batch.
			continue
		}
		actor := ch.Actors[m.index]
		ch.Actors = append(ch.Actors[:m.index], ch.Actors[m.index+1:]...)

		dest, ok := w.Chunks[m.to]
		if !ok {
			// No destination chunk is loaded; the actor is discarded
			// rather than auto-creating one.
			w.logger.Debug("actor dropped during migration",
				zap.String("tag", actor.TypeTag()),
				zap.Int("to_x", m.to.X),
				zap.Int("to_y", m.to.Y),
			)
			continue
		}
		dest.Actors = append(dest.Actors, actor)
	}
}
