package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gridcore/gridcore/internal/core/geom"
	"github.com/gridcore/gridcore/internal/core/render"
)

// Actor is a mobile, freely positioned world element. An actor belongs to
// exactly one chunk at any observation point, chosen by floor-dividing its
// position by the chunk size in world units.
type Actor interface {
	TypeTag() string
	Pos() geom.Vec2
	SetPos(pos geom.Vec2)
	Size() geom.Vec2
	SetSize(size geom.Vec2)
	Velocity() geom.Vec2
	SetVelocity(v geom.Vec2)

	// Tick runs once per frame while the actor is active.
	Tick(dt float64, w World)

	// Draw queues the actor into the shared batch.
	Draw(batch *render.Batch)

	Interact(other Actor)
	Hurt(damage int, attackDir Direction)

	// Collide is invoked for each counterpart of a closing, overlapping
	// pair during the world's collision pass. Both sides of the pair see
	// each other's pre-collision state.
	Collide(other Actor)

	// Clone returns an independent deep copy.
	Clone() Actor
}

// ResolveCollision is the stock collision response: project both boxes one
// tick forward along their velocities and zero self's velocity on the axis
// of least penetration, both axes on a tie. Boundary contact counts as a
// zero-depth penetration, so a head-on pair that meets exactly edge to edge
// still stops on the approach axis. Concrete actors call this from their
// Collide hook.
func ResolveCollision(self, other Actor) {
	sb := geom.RectAt(self.Pos().Add(self.Velocity()), self.Size())
	ob := geom.RectAt(other.Pos().Add(other.Velocity()), other.Size())

	if !sb.Overlaps(ob) {
		return
	}

	xOverlap := min(sb.Max.X-ob.Min.X, ob.Max.X-sb.Min.X)
	yOverlap := min(sb.Max.Y-ob.Min.Y, ob.Max.Y-sb.Min.Y)

	v := self.Velocity()
	switch {
	case xOverlap < yOverlap:
		v.X = 0
	case xOverlap > yOverlap:
		v.Y = 0
	default:
		v = geom.Vec2{}
	}
	self.SetVelocity(v)
}

// ActorRecord is the persisted form of an actor. Velocity is carried so a
// moving actor resumes its motion after a load; everything else resets to
// the prototype's defaults.
type ActorRecord struct {
	Tag      string    `json:"type_tag"`
	Pos      geom.Vec2 `json:"pos"`
	Size     geom.Vec2 `json:"size"`
	Velocity geom.Vec2 `json:"velocity"`
}

// EncodeActor serializes an actor into its compact JSON record.
func EncodeActor(a Actor) ([]byte, error) {
	rec := ActorRecord{Tag: a.TypeTag(), Pos: a.Pos(), Size: a.Size(), Velocity: a.Velocity()}
	return json.Marshal(rec)
}

// ActorRegistry maps a type tag to an owning prototype actor.
type ActorRegistry struct {
	mu         sync.RWMutex
	prototypes map[string]Actor
}

func NewActorRegistry() *ActorRegistry {
	return &ActorRegistry{prototypes: make(map[string]Actor)}
}

// Register stores a as the prototype for its own type tag. The last
// registration for a tag wins.
func (r *ActorRegistry) Register(a Actor) {
	r.mu.Lock()
	r.prototypes[a.TypeTag()] = a
	r.mu.Unlock()
}

// Create clones the prototype registered under tag. The second return is
// false for an unknown tag.
func (r *ActorRegistry) Create(tag string) (Actor, bool) {
	r.mu.RLock()
	proto, ok := r.prototypes[tag]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return proto.Clone(), true
}

// Decode reconstructs an actor from its JSON record by cloning the matching
// prototype and overwriting position, size and velocity.
func (r *ActorRegistry) Decode(data []byte) (Actor, error) {
	var rec ActorRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: actor: %v", ErrMalformedRecord, err)
	}

	actor, ok := r.Create(rec.Tag)
	if !ok {
		return nil, fmt.Errorf("%w: actor %q", ErrUnknownType, rec.Tag)
	}
	actor.SetPos(rec.Pos)
	actor.SetSize(rec.Size)
	actor.SetVelocity(rec.Velocity)
	return actor, nil
}
