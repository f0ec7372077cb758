package surface

import (
	"github.com/Carmen-Shannon/oxy-tutorials/common"
	"github.com/Carmen-Shannon/oxy-tutorials/engine/profiler"
)

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controllerImpl)

// WithScale sets the initial uniform model scale.
//
// Parameters:
//   - scale: the model scale (default 1)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithScale(scale float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.scale = scale
	}
}

// WithWave sets the initial sine wave parameters. The default wave is flat, so models
// that do not animate are drawn undisplaced.
//
// Parameters:
//   - amplitude: wave height (default 0)
//   - frequency: angular frequency along X (default 0)
//   - phase: wave phase in radians (default 0)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithWave(amplitude, frequency float32, phase common.Radians) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.amplitude = amplitude
		c.frequency = frequency
		c.phase = phase
	}
}

// WithAnimationSpeed sets the phase step per animated frame.
//
// Parameters:
//   - speed: step in degrees (default 1)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithAnimationSpeed(speed common.Degrees) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.animationSpeed = speed.Radians()
	}
}

// WithWorldRotation moves the X and Y rotation into the world transform.
// The X and Y axis matrices are then left as identity.
//
// Parameters:
//   - enabled: if true, rotation is applied by the world transform
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithWorldRotation(enabled bool) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.worldRotation = enabled
	}
}

// WithProfiler replaces the frame rate counter used while animating.
//
// Parameters:
//   - p: the profiler to tick on every animated frame
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.profiler = p
	}
}
