package mono

import "fmt"

// Point is an integer coordinate. The origin 0,0 is the upper left
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns the point offset by o
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Rectangle is an axis-aligned rectangle with inclusive bounds: both
// the top-left and bottom-right points are inside the rectangle. A
// single pixel is the rectangle with TL == BR
type Rectangle struct {
	TL Point
	BR Point
}

// NewRectangle returns the rectangle spanning tl to br inclusive
func NewRectangle(tl Point, br Point) Rectangle {
	return Rectangle{TL: tl, BR: br}
}

func (r Rectangle) String() string {
	return fmt.Sprintf("[%s-%s]", r.TL, r.BR)
}

// IntersectsPoint reports whether p lies within the rectangle,
// boundary included
func (r Rectangle) IntersectsPoint(p Point) bool {
	return p.X >= r.TL.X && p.X <= r.BR.X &&
		p.Y >= r.TL.Y && p.Y <= r.BR.Y
}

// Width is the number of columns the rectangle spans
func (r Rectangle) Width() int {
	return 1 + r.BR.X - r.TL.X
}

// Height is the number of rows the rectangle spans
func (r Rectangle) Height() int {
	return 1 + r.BR.Y - r.TL.Y
}

// Area is the number of pixels the rectangle covers
func (r Rectangle) Area() int {
	return r.Width() * r.Height()
}

// Translate returns the rectangle offset by o
func (r Rectangle) Translate(o Point) Rectangle {
	return Rectangle{TL: r.TL.Add(o), BR: r.BR.Add(o)}
}
