package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-tutorials/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	fov    common.Radians
	aspect float32
	near   float32
	far    float32

	distance float32
	tilt     common.Radians

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
}

// Camera is a fixed perspective camera on the +Z axis looking at the origin.
// The scene is tilted around X before it is viewed, so a model lying in the XZ plane is seen from above.
type Camera interface {
	// Fov returns the vertical field of view.
	//
	// Returns:
	//   - common.Radians: field of view
	Fov() common.Radians

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// Distance returns how far the camera sits from the origin.
	Distance() float32

	// Tilt returns the rotation around X applied to the scene before viewing.
	Tilt() common.Radians

	// ViewMatrix returns translate(0, 0, -distance) * rotX(tilt).
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix, column-major
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the perspective projection with WebGPU [0, 1] depth.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix, column-major
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view, the matrix handed to surface.Controller.Uniforms.
	//
	// Returns:
	//   - mgl32.Mat4: the combined matrix, column-major
	ViewProjectionMatrix() mgl32.Mat4

	// SetFov sets the vertical field of view and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view
	SetFov(fov common.Radians)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	// Non-positive values are ignored, which keeps a minimized window from collapsing the projection.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetDistance sets the camera distance from the origin and recomputes matrices.
	//
	// Parameters:
	//   - distance: distance along +Z
	SetDistance(distance float32)

	// SetTilt sets the scene tilt around X and recomputes matrices.
	//
	// Parameters:
	//   - tilt: rotation around X
	SetTilt(tilt common.Radians)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera.
// Defaults: 60 degree field of view, square aspect, near 1, far 12, distance 2.5, no tilt.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		fov:      common.Degrees(60).Radians(),
		aspect:   1,
		near:     1,
		far:      12,
		distance: 2.5,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Fov() common.Radians {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Distance() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.distance
}

func (c *cameraImpl) Tilt() common.Radians {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tilt
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) SetFov(fov common.Radians) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetDistance(distance float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.distance = distance
	c.updateMatrices()
}

func (c *cameraImpl) SetTilt(tilt common.Radians) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tilt = tilt
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection and view-projection matrices.
// Caller must hold the mutex, except during construction.
func (c *cameraImpl) updateMatrices() {
	c.viewMatrix = common.Translation(0, 0, -c.distance).Mul4(common.RotationX(c.tilt))
	c.projectionMatrix = common.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
