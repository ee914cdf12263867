package geom

// Vec2 is a 2D world-space vector.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Splat returns a vector with both components set to v.
func Splat(v float64) Vec2 { return Vec2{X: v, Y: v} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{X: v.X * o.X, Y: v.Y * o.Y} }

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Rect is an axis-aligned rectangle spanning [Min, Max].
type Rect struct {
	Min Vec2
	Max Vec2
}

// RectAt builds a rectangle from an origin and a size.
func RectAt(pos, size Vec2) Rect {
	return Rect{Min: pos, Max: pos.Add(size)}
}

// CenteredRect builds a rectangle centered on c with half-extent size/2.
func CenteredRect(c, size Vec2) Rect {
	half := size.Scale(0.5)
	return Rect{Min: c.Sub(half), Max: c.Add(half)}
}

// Overlaps reports whether r and o intersect. Boundary contact counts as an
// overlap; rectangles are only disjoint when strictly outside one another.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.Max.X < o.Min.X || r.Min.X > o.Max.X ||
		r.Max.Y < o.Min.Y || r.Min.Y > o.Max.Y)
}

// Contains reports whether p lies inside r, boundary included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Expand grows the rectangle outward by m on all four sides.
func (r Rect) Expand(m float64) Rect {
	return Rect{Min: r.Min.Sub(Splat(m)), Max: r.Max.Add(Splat(m))}
}
