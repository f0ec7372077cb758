package controls

import "github.com/Carmen-Shannon/oxy-tutorials/common"

// DragRotatorOption is a functional option for configuring a DragRotator.
type DragRotatorOption func(*dragRotatorImpl)

// WithSurfaceSize sets the backing-buffer size of the surface being dragged over.
//
// Parameters:
//   - width: backing-buffer width in pixels
//   - height: backing-buffer height in pixels
//
// Returns:
//   - DragRotatorOption: functional option to set the surface size
func WithSurfaceSize(width, height float32) DragRotatorOption {
	return func(d *dragRotatorImpl) {
		d.size = common.Size{Width: width, Height: height}
	}
}

// WithRotationHandler registers the handler called on every drag step.
//
// Parameters:
//   - handler: receives the accumulated (vertical, horizontal) rotation pair
//
// Returns:
//   - DragRotatorOption: functional option to set the handler
func WithRotationHandler(handler RotationHandler) DragRotatorOption {
	return func(d *dragRotatorImpl) {
		d.handler = handler
	}
}
