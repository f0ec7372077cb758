package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-tutorials/common"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	if !mgl32.FloatEqualThreshold(float32(c.Fov()), math.Pi/3, eps) {
		t.Errorf("Fov() = %v, want 60 degrees", c.Fov())
	}
	if c.Aspect() != 1 || c.Near() != 1 || c.Far() != 12 {
		t.Errorf("aspect/near/far = %v/%v/%v", c.Aspect(), c.Near(), c.Far())
	}
	if c.Distance() != 2.5 || c.Tilt() != 0 {
		t.Errorf("distance/tilt = %v/%v", c.Distance(), c.Tilt())
	}

	want := common.Perspective(c.Fov(), 1, 1, 12).Mul4(common.Translation(0, 0, -2.5))
	if !c.ViewProjectionMatrix().ApproxEqualThreshold(want, eps) {
		t.Errorf("ViewProjectionMatrix() = %v, want %v", c.ViewProjectionMatrix(), want)
	}
}

func TestOriginProjectsInsideDepthRange(t *testing.T) {
	c := NewCamera()
	clip := c.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	depth := clip.Z() / clip.W()
	if depth <= 0 || depth >= 1 {
		t.Errorf("origin depth = %v, want inside (0, 1)", depth)
	}
}

func TestTiltLiftsFarEdge(t *testing.T) {
	c := NewCamera(WithTilt(0.5))

	// A point on the far side of the XZ plane rises toward the top of the view.
	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, -1, 1})
	if p.Y() <= 0 {
		t.Errorf("far edge y = %v, want > 0", p.Y())
	}
	if !mgl32.FloatEqualThreshold(p.Y(), float32(math.Sin(0.5)), eps) {
		t.Errorf("far edge y = %v, want sin(0.5)", p.Y())
	}
}

func TestSetAspect(t *testing.T) {
	c := NewCamera(WithAspect(2))
	before := c.ProjectionMatrix()

	c.SetAspect(0)
	if c.Aspect() != 2 || c.ProjectionMatrix() != before {
		t.Error("a zero aspect should be ignored")
	}

	c.SetAspect(4)
	if got := c.ProjectionMatrix()[0]; !mgl32.FloatEqualThreshold(got, before[0]/2, eps) {
		t.Errorf("x scale = %v, want %v", got, before[0]/2)
	}
}

func TestSetters(t *testing.T) {
	c := NewCamera(WithClipPlanes(0.5, 50), WithFov(1), WithDistance(4))
	if c.Near() != 0.5 || c.Far() != 50 || c.Fov() != 1 || c.Distance() != 4 {
		t.Error("builder options not applied")
	}

	c.SetDistance(3)
	c.SetTilt(0.25)
	c.SetFov(0.75)
	want := common.Translation(0, 0, -3).Mul4(common.RotationX(0.25))
	if !c.ViewMatrix().ApproxEqualThreshold(want, eps) {
		t.Errorf("ViewMatrix() = %v, want %v", c.ViewMatrix(), want)
	}
	if c.Fov() != 0.75 {
		t.Errorf("Fov() = %v", c.Fov())
	}
}
