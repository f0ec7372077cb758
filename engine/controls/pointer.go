package controls

import "github.com/Carmen-Shannon/oxy-tutorials/common"

// PointerSource delivers raw pointer events for a drawing surface.
// Positions are client coordinates, the same space ClientRect is expressed in.
type PointerSource interface {
	// SetLeftMouseDownCallback sets the callback for primary button presses.
	SetLeftMouseDownCallback(callback func(x, y float64))

	// SetLeftMouseUpCallback sets the callback for primary button releases.
	SetLeftMouseUpCallback(callback func(x, y float64))

	// SetMouseMoveCallback sets the callback for pointer movement.
	SetMouseMoveCallback(callback func(x, y float64))

	// ClientRect returns the surface's on-screen rectangle in client coordinates.
	ClientRect() common.Rect

	// BackingSize returns the surface's backing-buffer resolution in pixels.
	BackingSize() common.Size
}

// PointerPosition maps a client-space position onto the surface backing buffer:
// (client - rect origin) / rect size * backing size, per axis.
// The two sizes differ when the display scales pixels (e.g. high-DPI framebuffers).
//
// Parameters:
//   - client: pointer position in client coordinates
//   - rect: the surface's on-screen rectangle
//   - backing: the surface's backing-buffer resolution
//
// Returns:
//   - common.Point: position in backing-buffer pixels
func PointerPosition(client common.Point, rect common.Rect, backing common.Size) common.Point {
	return common.Point{
		X: (client.X - rect.Left) / rect.Width() * backing.Width,
		Y: (client.Y - rect.Top) / rect.Height() * backing.Height,
	}
}
