package camera

import "github.com/Carmen-Shannon/oxy-tutorials/common"

type CameraBuilderOption func(*cameraImpl)

// WithFov sets the camera's vertical field of view.
//
// Parameters:
//   - fov: field of view
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov common.Radians) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the camera's aspect ratio (width / height). Non-positive values are ignored.
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithClipPlanes sets the near and far clipping plane distances.
//
// Parameters:
//   - near: near plane distance, greater than 0
//   - far: far plane distance, greater than near
//
// Returns:
//   - CameraBuilderOption: a function that sets the clipping planes
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithDistance sets how far the camera sits from the origin along +Z.
//
// Parameters:
//   - distance: the camera distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera distance
func WithDistance(distance float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.distance = distance
	}
}

// WithTilt sets the rotation around X applied to the scene before viewing.
//
// Parameters:
//   - tilt: the tilt angle
//
// Returns:
//   - CameraBuilderOption: a function that sets the tilt
func WithTilt(tilt common.Radians) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.tilt = tilt
	}
}
