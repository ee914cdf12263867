package content

import "github.com/gridcore/gridcore/internal/core/geom"

// BaseTile carries the positional state every tile needs and stubs the
// optional hooks. Concrete tiles embed it and implement TypeTag, Draw and
// Clone themselves.
type BaseTile struct {
	Position   geom.Vec2
	Dimensions geom.Vec2
	Passable   bool
}

func (b *BaseTile) Pos() geom.Vec2 { return b.Position }
func (b *BaseTile) SetPos(pos geom.Vec2) { b.Position = pos }
func (b *BaseTile) Size() geom.Vec2 { return b.Dimensions }
func (b *BaseTile) SetSize(size geom.Vec2) { b.Dimensions = size }
func (b *BaseTile) MayPass() bool { return b.Passable }
func (b *BaseTile) Tick(_ float64, _ World) {}
func (b *BaseTile) Interact(_ Actor) bool { return false }

// BaseActor carries the positional state every actor needs. Its Tick
// advances position by velocity once per frame; actors with their own
// movement override it.
type BaseActor struct {
	Position   geom.Vec2
	Dimensions geom.Vec2
	Speed      geom.Vec2
}

func (b *BaseActor) Pos() geom.Vec2 { return b.Position }
func (b *BaseActor) SetPos(pos geom.Vec2) { b.Position = pos }
func (b *BaseActor) Size() geom.Vec2 { return b.Dimensions }
func (b *BaseActor) SetSize(size geom.Vec2) { b.Dimensions = size }
func (b *BaseActor) Velocity() geom.Vec2 { return b.Speed }
func (b *BaseActor) SetVelocity(v geom.Vec2) { b.Speed = v }
func (b *BaseActor) Tick(_ float64, _ World) { b.Position = b.Position.Add(b.Speed) }
func (b *BaseActor) Interact(_ Actor) {}
func (b *BaseActor) Hurt(_ int, _ Direction) {}
