package surface

import (
	"time"

	"github.com/Carmen-Shannon/oxy-tutorials/common"
	"github.com/Carmen-Shannon/oxy-tutorials/engine/controls"
	"github.com/Carmen-Shannon/oxy-tutorials/engine/profiler"
	"github.com/go-gl/mathgl/mgl32"
)

// phaseWrap is the point past which the animated wave phase restarts at zero.
const phaseWrap = 6.28

// Controller owns the interactive state of one drawing surface: its drag rotator, the
// per-axis rotation angles, the model scale and the sine wave parameters.
// Everything is driven from the surface's event thread; no locking is done.
type Controller interface {
	// Attach wires the pointer events of src to the controller's drag rotator.
	// Client positions are mapped onto the backing buffer before they reach the rotator.
	//
	// Parameters:
	//   - src: the pointer event source of the surface
	Attach(src controls.PointerSource)

	// Rotator returns the drag rotator owned by this controller.
	Rotator() controls.DragRotator

	// SetAxisAngle sets the rotation around one axis from a degree value, e.g. a slider.
	// Axes other than X, Y and Z are ignored.
	//
	// Parameters:
	//   - axis: the axis to set
	//   - angle: the angle in degrees
	SetAxisAngle(axis common.Axis, angle common.Degrees)

	// AxisAngle returns the rotation around one axis, or 0 for an unknown axis.
	//
	// Parameters:
	//   - axis: the axis to query
	//
	// Returns:
	//   - common.Radians: the current angle
	AxisAngle(axis common.Axis) common.Radians

	// SetRotation sets the X and Y axis angles at once.
	// This is the handler the drag rotator emits into.
	//
	// Parameters:
	//   - x: rotation around the X axis
	//   - y: rotation around the Y axis
	SetRotation(x, y common.Radians)

	// SetScale sets the uniform model scale.
	SetScale(scale float32)

	// Scale returns the uniform model scale.
	Scale() float32

	// SetAmplitude sets the height of the sine wave.
	SetAmplitude(amplitude float32)

	// Amplitude returns the height of the sine wave.
	Amplitude() float32

	// SetFrequency sets the number of wave periods per model unit along X.
	SetFrequency(frequency float32)

	// Frequency returns the wave frequency.
	Frequency() float32

	// SetPhase sets the wave phase in radians.
	SetPhase(phase common.Radians)

	// Phase returns the wave phase in radians.
	Phase() common.Radians

	// SetAnimationSpeed sets how far the phase advances per animated frame.
	//
	// Parameters:
	//   - speed: phase step per frame in degrees
	SetAnimationSpeed(speed common.Degrees)

	// AnimationSpeed returns the phase step per animated frame.
	AnimationSpeed() common.Radians

	// ToggleAnimation starts or stops the phase animation.
	//
	// Returns:
	//   - bool: true if the animation is now running
	ToggleAnimation() bool

	// Animating reports whether the phase animation is running.
	Animating() bool

	// Animate advances the phase by one step when the animation is running and counts the frame.
	// The phase restarts at zero once it passes 6.28.
	//
	// Parameters:
	//   - now: the frame timestamp used for the frame rate counter
	//
	// Returns:
	//   - bool: true if the phase advanced
	Animate(now time.Time) bool

	// FPS returns the last reported animation frame rate.
	FPS() int

	// Uniforms builds the uniform block for the current state.
	//
	// Parameters:
	//   - projection: projection and camera offset applied last
	//
	// Returns:
	//   - Uniforms: the rotation matrices, world transform and wave parameters
	Uniforms(projection mgl32.Mat4) Uniforms
}

// controllerImpl is the implementation of the Controller interface.
type controllerImpl struct {
	rotator controls.DragRotator

	angles [3]common.Radians
	scale  float32

	// worldRotation folds the X and Y angles into the world transform instead of the axis matrices.
	worldRotation bool

	amplitude float32
	frequency float32
	phase     common.Radians

	animating      bool
	animationSpeed common.Radians
	profiler       *profiler.Profiler
}

var _ Controller = &controllerImpl{}

// NewController creates a Controller with unit scale, no rotation, a flat wave and the animation stopped.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controllerImpl{
		scale:          1,
		animationSpeed: common.Degrees(1).Radians(),
	}
	for _, option := range options {
		option(c)
	}
	if c.profiler == nil {
		c.profiler = profiler.NewProfiler()
	}
	c.rotator = controls.NewDragRotator(controls.WithRotationHandler(c.SetRotation))
	return c
}

func (c *controllerImpl) Attach(src controls.PointerSource) {
	position := func(x, y float64) common.Point {
		return controls.PointerPosition(
			common.Point{X: float32(x), Y: float32(y)},
			src.ClientRect(),
			src.BackingSize(),
		)
	}

	src.SetLeftMouseDownCallback(func(x, y float64) {
		c.rotator.SetSurfaceSize(src.BackingSize())
		c.rotator.DragStart(position(x, y))
	})
	src.SetLeftMouseUpCallback(func(x, y float64) {
		c.rotator.DragEnd()
	})
	src.SetMouseMoveCallback(func(x, y float64) {
		c.rotator.DragMove(position(x, y))
	})
	c.rotator.SetSurfaceSize(src.BackingSize())
}

func (c *controllerImpl) Rotator() controls.DragRotator {
	return c.rotator
}

func (c *controllerImpl) SetAxisAngle(axis common.Axis, angle common.Degrees) {
	if axis < common.AxisX || axis > common.AxisZ {
		return
	}
	c.angles[axis] = angle.Radians()
}

func (c *controllerImpl) AxisAngle(axis common.Axis) common.Radians {
	if axis < common.AxisX || axis > common.AxisZ {
		return 0
	}
	return c.angles[axis]
}

func (c *controllerImpl) SetRotation(x, y common.Radians) {
	c.angles[common.AxisX] = x
	c.angles[common.AxisY] = y
}

func (c *controllerImpl) SetScale(scale float32) {
	c.scale = scale
}

func (c *controllerImpl) Scale() float32 {
	return c.scale
}

func (c *controllerImpl) SetAmplitude(amplitude float32) {
	c.amplitude = amplitude
}

func (c *controllerImpl) Amplitude() float32 {
	return c.amplitude
}

func (c *controllerImpl) SetFrequency(frequency float32) {
	c.frequency = frequency
}

func (c *controllerImpl) Frequency() float32 {
	return c.frequency
}

func (c *controllerImpl) SetPhase(phase common.Radians) {
	c.phase = phase
}

func (c *controllerImpl) Phase() common.Radians {
	return c.phase
}

func (c *controllerImpl) SetAnimationSpeed(speed common.Degrees) {
	c.animationSpeed = speed.Radians()
}

func (c *controllerImpl) AnimationSpeed() common.Radians {
	return c.animationSpeed
}

func (c *controllerImpl) ToggleAnimation() bool {
	c.animating = !c.animating
	common.Logger().Debug("animation toggled", "running", c.animating)
	return c.animating
}

func (c *controllerImpl) Animating() bool {
	return c.animating
}

func (c *controllerImpl) Animate(now time.Time) bool {
	if !c.animating {
		return false
	}

	c.phase += c.animationSpeed
	if c.phase > phaseWrap {
		c.phase = 0
	}
	c.profiler.Tick(now)
	return true
}

func (c *controllerImpl) FPS() int {
	return c.profiler.FPS()
}

func (c *controllerImpl) Uniforms(projection mgl32.Mat4) Uniforms {
	u := Uniforms{
		ZRotation: common.RotationZ(c.angles[common.AxisZ]),
		Wave:      [4]float32{c.amplitude, float32(c.phase), c.frequency, 0},
	}

	if c.worldRotation {
		u.XRotation = mgl32.Ident4()
		u.YRotation = mgl32.Ident4()
		u.World = common.WorldTransform(projection, c.angles[common.AxisX], c.angles[common.AxisY], c.scale)
		return u
	}

	u.XRotation = common.RotationX(c.angles[common.AxisX])
	u.YRotation = common.RotationY(c.angles[common.AxisY])
	u.World = projection.Mul4(common.Scale(c.scale))
	return u
}
