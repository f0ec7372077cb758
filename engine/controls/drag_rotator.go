package controls

import (
	"math"

	"github.com/Carmen-Shannon/oxy-tutorials/common"
)

// RotationHandler receives the accumulated rotation after every drag step.
// The vertical drag accumulation is passed first and the horizontal one second.
type RotationHandler func(first, second common.Radians)

// DragRotator turns pointer drags over a rectangular surface into accumulated rotation angles.
// A full drag across the surface width (or height) is one full turn.
//
// The rotator has two states, idle and dragging. It is driven by pointer events delivered one at a
// time on the thread that owns the surface and does no locking of its own.
type DragRotator interface {
	// DragStart enters the dragging state and records p as the reference point.
	// Calling it while already dragging resets the reference point to p.
	//
	// Parameters:
	//   - p: pointer position in surface backing-buffer pixels
	DragStart(p common.Point)

	// DragMove adds the rotation for the movement from the reference point to p, moves the
	// reference point to p and emits the accumulated pair to the handler. No-op while idle.
	//
	// Parameters:
	//   - p: pointer position in surface backing-buffer pixels
	DragMove(p common.Point)

	// DragEnd returns to the idle state. No-op while idle.
	DragEnd()

	// Dragging reports whether a drag is in progress.
	Dragging() bool

	// Angles returns the accumulated rotation in the same order it is emitted.
	//
	// Returns:
	//   - first: accumulated rotation from vertical movement
	//   - second: accumulated rotation from horizontal movement
	Angles() (first, second common.Radians)

	// SurfaceSize returns the backing-buffer size used to scale pixel deltas.
	SurfaceSize() common.Size

	// SetSurfaceSize updates the backing-buffer size, e.g. after a resize.
	SetSurfaceSize(size common.Size)

	// SetRotationHandler replaces the handler called on every drag step. Nil disables emission.
	SetRotationHandler(handler RotationHandler)
}

// dragRotatorImpl is the single implementation of DragRotator.
type dragRotatorImpl struct {
	size    common.Size
	handler RotationHandler

	prev     common.Point
	accX     common.Radians // from horizontal movement
	accY     common.Radians // from vertical movement
	dragging bool
}

var _ DragRotator = &dragRotatorImpl{}

// NewDragRotator creates an idle DragRotator with zero accumulated rotation.
//
// Parameters:
//   - options: functional options to configure the rotator
//
// Returns:
//   - DragRotator: the newly created rotator
func NewDragRotator(options ...DragRotatorOption) DragRotator {
	d := &dragRotatorImpl{
		size: common.Size{Width: 1, Height: 1},
	}
	for _, option := range options {
		option(d)
	}
	return d
}

func (d *dragRotatorImpl) DragStart(p common.Point) {
	if !d.dragging {
		common.Logger().Debug("drag started", "x", p.X, "y", p.Y)
	}
	d.dragging = true
	d.prev = p
}

func (d *dragRotatorImpl) DragMove(p common.Point) {
	if !d.dragging {
		return
	}

	delta := p.Sub(d.prev)

	// Zero-sized surfaces produce Inf/NaN here; left unguarded.
	d.accX += common.Radians(2 * math.Pi / d.size.Width * delta.X)
	d.accY += common.Radians(2 * math.Pi / d.size.Height * delta.Y)
	d.prev = p

	if d.handler != nil {
		d.handler(d.accY, d.accX)
	}
}

func (d *dragRotatorImpl) DragEnd() {
	if !d.dragging {
		return
	}
	d.dragging = false
	common.Logger().Debug("drag ended", "first", float32(d.accY), "second", float32(d.accX))
}

func (d *dragRotatorImpl) Dragging() bool {
	return d.dragging
}

func (d *dragRotatorImpl) Angles() (first, second common.Radians) {
	return d.accY, d.accX
}

func (d *dragRotatorImpl) SurfaceSize() common.Size {
	return d.size
}

func (d *dragRotatorImpl) SetSurfaceSize(size common.Size) {
	d.size = size
}

func (d *dragRotatorImpl) SetRotationHandler(handler RotationHandler) {
	d.handler = handler
}
