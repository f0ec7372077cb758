package surface

import (
	"math"
	"testing"
	"time"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-tutorials/common"
	"github.com/Carmen-Shannon/oxy-tutorials/engine/controls"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

// fakePointer is a PointerSource driven directly by the test.
type fakePointer struct {
	rect    common.Rect
	backing common.Size

	down, up, move func(x, y float64)
}

var _ controls.PointerSource = &fakePointer{}

func (f *fakePointer) SetLeftMouseDownCallback(callback func(x, y float64)) { f.down = callback }
func (f *fakePointer) SetLeftMouseUpCallback(callback func(x, y float64))   { f.up = callback }
func (f *fakePointer) SetMouseMoveCallback(callback func(x, y float64))     { f.move = callback }
func (f *fakePointer) ClientRect() common.Rect                              { return f.rect }
func (f *fakePointer) BackingSize() common.Size                             { return f.backing }

func TestControllerDefaults(t *testing.T) {
	c := NewController()
	if c.Scale() != 1 {
		t.Errorf("Scale() = %v, want 1", c.Scale())
	}
	if c.Animating() {
		t.Error("animation should start stopped")
	}
	if c.Amplitude() != 0 || c.Frequency() != 0 || c.Phase() != 0 {
		t.Errorf("wave = (%v, %v, %v), want flat", c.Amplitude(), c.Frequency(), c.Phase())
	}
	if !mgl32.FloatEqualThreshold(float32(c.AnimationSpeed()), math.Pi/180, eps) {
		t.Errorf("AnimationSpeed() = %v, want 1 degree", c.AnimationSpeed())
	}
	for _, axis := range []common.Axis{common.AxisX, common.AxisY, common.AxisZ} {
		if c.AxisAngle(axis) != 0 {
			t.Errorf("AxisAngle(%v) = %v, want 0", axis, c.AxisAngle(axis))
		}
	}
}

func TestControllerAttachDrag(t *testing.T) {
	src := &fakePointer{
		rect:    common.Rect{Left: 10, Top: 20, Right: 190, Bottom: 110},
		backing: common.Size{Width: 360, Height: 180},
	}
	c := NewController()
	c.Attach(src)

	if got := c.Rotator().SurfaceSize(); got != src.backing {
		t.Fatalf("rotator surface size = %v, want %v", got, src.backing)
	}

	// Client (60, 45) maps to backing (100, 50) on a half-size rect.
	src.down(60, 45)
	src.move(75, 45)
	if !mgl32.FloatEqualThreshold(float32(c.AxisAngle(common.AxisY)), math.Pi/6, eps) {
		t.Errorf("Y angle = %v, want π/6", c.AxisAngle(common.AxisY))
	}
	if c.AxisAngle(common.AxisX) != 0 {
		t.Errorf("X angle = %v, want 0", c.AxisAngle(common.AxisX))
	}

	src.move(75, 60)
	if !mgl32.FloatEqualThreshold(float32(c.AxisAngle(common.AxisX)), math.Pi/3, eps) {
		t.Errorf("X angle = %v, want π/3", c.AxisAngle(common.AxisX))
	}

	src.up(75, 60)
	src.move(150, 100)
	if !mgl32.FloatEqualThreshold(float32(c.AxisAngle(common.AxisX)), math.Pi/3, eps) {
		t.Error("angles changed after the button was released")
	}
}

func TestControllerAttachPicksUpResize(t *testing.T) {
	src := &fakePointer{
		rect:    common.Rect{Right: 360, Bottom: 180},
		backing: common.Size{Width: 360, Height: 180},
	}
	c := NewController()
	c.Attach(src)

	src.backing = common.Size{Width: 720, Height: 360}
	src.down(0, 0)
	if got := c.Rotator().SurfaceSize(); got != src.backing {
		t.Errorf("rotator surface size after resize = %v, want %v", got, src.backing)
	}
}

func TestControllerSetAxisAngle(t *testing.T) {
	tests := []struct {
		name  string
		axis  common.Axis
		angle common.Degrees
		want  float64
	}{
		{"x right angle", common.AxisX, 90, math.Pi / 2},
		{"y half turn", common.AxisY, 180, math.Pi},
		{"z negative", common.AxisZ, -45, -math.Pi / 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			c.SetAxisAngle(tt.axis, tt.angle)
			if got := c.AxisAngle(tt.axis); !mgl32.FloatEqualThreshold(float32(got), float32(tt.want), eps) {
				t.Errorf("AxisAngle(%v) = %v, want %v", tt.axis, got, tt.want)
			}
		})
	}
}

func TestControllerUnknownAxisIgnored(t *testing.T) {
	c := NewController()
	c.SetAxisAngle(common.Axis(7), 90)
	c.SetAxisAngle(common.Axis(-1), 90)
	if c.AxisAngle(common.Axis(7)) != 0 {
		t.Error("unknown axis should read as 0")
	}
	u := c.Uniforms(mgl32.Ident4())
	if !u.XRotation.ApproxEqual(mgl32.Ident4()) || !u.ZRotation.ApproxEqual(mgl32.Ident4()) {
		t.Error("unknown axis changed a rotation matrix")
	}
}

func TestControllerAnimate(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewController(WithAnimationSpeed(90))

	if c.Animate(now) {
		t.Fatal("Animate advanced while stopped")
	}
	if c.Phase() != 0 {
		t.Fatalf("phase = %v, want 0", c.Phase())
	}

	if !c.ToggleAnimation() {
		t.Fatal("ToggleAnimation should report running")
	}

	steps := []float64{math.Pi / 2, math.Pi, 3 * math.Pi / 2, 0, math.Pi / 2}
	for i, want := range steps {
		if !c.Animate(now.Add(time.Duration(i) * 10 * time.Millisecond)) {
			t.Fatalf("step %d did not advance", i)
		}
		if !mgl32.FloatEqualThreshold(float32(c.Phase()), float32(want), eps) {
			t.Errorf("step %d phase = %v, want %v", i, c.Phase(), want)
		}
	}
	if c.FPS() != 1 {
		t.Errorf("FPS() = %d, want 1 from the first reported frame", c.FPS())
	}

	if c.ToggleAnimation() {
		t.Error("second toggle should stop the animation")
	}
}

func TestControllerPhaseWrapThreshold(t *testing.T) {
	now := time.Now()
	c := NewController(WithWave(0.1, 10, 6.275))
	c.SetAnimationSpeed(common.Radians(0.004).Degrees())
	c.ToggleAnimation()

	c.Animate(now)
	if !mgl32.FloatEqualThreshold(float32(c.Phase()), 6.279, eps) {
		t.Fatalf("phase = %v, want 6.279", c.Phase())
	}
	c.Animate(now)
	if c.Phase() != 0 {
		t.Errorf("phase = %v, want wrap to 0 past 6.28", c.Phase())
	}
}

func TestControllerUniformsAxisMatrices(t *testing.T) {
	c := NewController(WithScale(2), WithWave(0.3, 4, 1.5))
	c.SetAxisAngle(common.AxisX, 30)
	c.SetAxisAngle(common.AxisY, 60)
	c.SetAxisAngle(common.AxisZ, 90)

	projection := common.ClipDepthRemap()
	u := c.Uniforms(projection)

	checks := []struct {
		name      string
		got, want mgl32.Mat4
	}{
		{"x", u.XRotation, common.RotationX(common.Degrees(30).Radians())},
		{"y", u.YRotation, common.RotationY(common.Degrees(60).Radians())},
		{"z", u.ZRotation, common.RotationZ(common.Degrees(90).Radians())},
		{"world", u.World, projection.Mul4(mgl32.Scale3D(2, 2, 2))},
	}
	for _, chk := range checks {
		if !chk.got.ApproxEqualThreshold(chk.want, eps) {
			t.Errorf("%s matrix = %v, want %v", chk.name, chk.got, chk.want)
		}
	}

	if u.Wave != [4]float32{0.3, 1.5, 4, 0} {
		t.Errorf("Wave = %v", u.Wave)
	}
}

func TestControllerUniformsWorldRotation(t *testing.T) {
	c := NewController(WithWorldRotation(true), WithScale(0.5))
	c.SetRotation(0.4, -1.1)

	projection := common.Perspective(common.Degrees(60).Radians(), 1.5, 1, 12).
		Mul4(common.Translation(0, 0, -2.5))
	u := c.Uniforms(projection)

	if !u.XRotation.ApproxEqual(mgl32.Ident4()) || !u.YRotation.ApproxEqual(mgl32.Ident4()) {
		t.Error("axis matrices should be identity when rotation is in the world transform")
	}
	want := common.WorldTransform(projection, 0.4, -1.1, 0.5)
	if !u.World.ApproxEqualThreshold(want, eps) {
		t.Errorf("World = %v, want %v", u.World, want)
	}
}

func TestUniformsLayout(t *testing.T) {
	var u Uniforms
	if got := unsafe.Sizeof(u); got != UniformsSize {
		t.Fatalf("Uniforms size = %d, want %d", got, UniformsSize)
	}
	if got := len(u.Bytes()); got != UniformsSize {
		t.Errorf("len(Bytes()) = %d, want %d", got, UniformsSize)
	}
	if got := unsafe.Offsetof(u.Wave); got != 256 {
		t.Errorf("Wave offset = %d, want 256", got)
	}
}
