// package common contains common types that are used throughout this module. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Point is a 2D position in pixels.
type Point struct {
	X, Y float32
}

// Sub returns the component-wise difference p - o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Rect is an axis-aligned on-screen rectangle, the equivalent of an element's bounding client rect.
type Rect struct {
	// Left and Top are the coordinates of the rectangle's origin.
	Left, Top float32
	// Right and Bottom are the coordinates of the far corner.
	Right, Bottom float32
}

// Width returns Right - Left.
func (r Rect) Width() float32 {
	return r.Right - r.Left
}

// Height returns Bottom - Top.
func (r Rect) Height() float32 {
	return r.Bottom - r.Top
}

// Size is a backing-buffer resolution in pixels.
type Size struct {
	Width, Height float32
}
