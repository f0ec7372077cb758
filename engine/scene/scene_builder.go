package scene

import (
	"github.com/Carmen-Shannon/oxy-tutorials/engine/camera"
	"github.com/Carmen-Shannon/oxy-tutorials/engine/surface"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithController sets the surface controller whose state the scene draws.
//
// Parameters:
//   - c: the controller
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithController(c surface.Controller) SceneBuilderOption {
	return func(s *scene) {
		s.controller = c
	}
}

// WithCamera sets the scene camera. Without one, models are drawn straight into clip space.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(c camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.camera = c
	}
}
