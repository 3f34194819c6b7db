package models

// ImmutablePoint is the read-only view of a point.
type ImmutablePoint interface {
	GetX() int
	GetY() int
}

// Point is a plain value. Passing a Point copies it; pass *Point to share one.
type Point struct {
	X int
	Y int
}

func (p Point) GetX() int { return p.X }
func (p Point) GetY() int { return p.Y }

// Translated returns p moved by (dx, dy). p itself is not modified.
func (p Point) Translated(dx, dy int) Point {
	p.X += dx
	p.Y += dy
	return p
}

// Translate moves the point the caller holds.
func (p *Point) Translate(dx, dy int) {
	p.X += dx
	p.Y += dy
}
