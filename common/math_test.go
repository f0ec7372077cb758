package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const matEpsilon = 1e-5

var axes = []Axis{AxisX, AxisY, AxisZ}

func TestDegreesRadians(t *testing.T) {
	tests := []struct {
		deg  Degrees
		want Radians
	}{
		{0, 0},
		{90, math.Pi / 2},
		{180, math.Pi},
		{-45, -math.Pi / 4},
		{360, 2 * math.Pi},
	}
	for _, tt := range tests {
		got := tt.deg.Radians()
		if !mgl32.FloatEqualThreshold(float32(got), float32(tt.want), matEpsilon) {
			t.Errorf("Degrees(%v).Radians() = %v, want %v", tt.deg, got, tt.want)
		}
		back := got.Degrees()
		if !mgl32.FloatEqualThreshold(float32(back), float32(tt.deg), 1e-3) {
			t.Errorf("round trip of %v degrees = %v", tt.deg, back)
		}
	}
}

func TestBuildAxisRotationSignPattern(t *testing.T) {
	const angle = Radians(0.7)
	c := float32(math.Cos(0.7))
	s := float32(math.Sin(0.7))

	tests := []struct {
		axis Axis
		want mgl32.Mat4
	}{
		{AxisX, mgl32.Mat4{1, 0, 0, 0, 0, c, s, 0, 0, -s, c, 0, 0, 0, 0, 1}},
		{AxisY, mgl32.Mat4{c, 0, -s, 0, 0, 1, 0, 0, s, 0, c, 0, 0, 0, 0, 1}},
		{AxisZ, mgl32.Mat4{c, s, 0, 0, -s, c, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.axis.String(), func(t *testing.T) {
			got := BuildAxisRotation(tt.axis, angle)
			if got != tt.want {
				t.Errorf("BuildAxisRotation(%v, %v) = %v, want %v", tt.axis, angle, got, tt.want)
			}
		})
	}
}

func TestBuildAxisRotationZeroIsIdentity(t *testing.T) {
	for _, axis := range axes {
		if got := BuildAxisRotation(axis, 0); got != mgl32.Ident4() {
			t.Errorf("BuildAxisRotation(%v, 0) = %v, want identity", axis, got)
		}
	}
}

func TestBuildAxisRotationInverse(t *testing.T) {
	angles := []Radians{0.1, 1, math.Pi / 3, -2.5, 10, 123.456}
	for _, axis := range axes {
		for _, a := range angles {
			got := BuildAxisRotation(axis, a).Mul4(BuildAxisRotation(axis, -a))
			if !got.ApproxEqualThreshold(mgl32.Ident4(), matEpsilon) {
				t.Errorf("R%v(%v) * R%v(%v) = %v, want identity", axis, a, axis, -a, got)
			}
		}
	}
}

func TestBuildAxisRotationPeriodic(t *testing.T) {
	angles := []Radians{0, 0.5, -1.25, math.Pi, 4}
	for _, axis := range axes {
		for _, a := range angles {
			m1 := BuildAxisRotation(axis, a)
			m2 := BuildAxisRotation(axis, a+2*math.Pi)
			if !m1.ApproxEqualThreshold(m2, matEpsilon) {
				t.Errorf("axis %v: R(%v) = %v, R(%v+2π) = %v", axis, a, m1, a, m2)
			}
		}
	}
}

func TestBuildAxisRotationDeterminant(t *testing.T) {
	for _, axis := range axes {
		for a := Radians(-7); a < 7; a += 0.37 {
			det := BuildAxisRotation(axis, a).Det()
			if !mgl32.FloatEqualThreshold(det, 1, matEpsilon) {
				t.Errorf("det(R%v(%v)) = %v, want 1", axis, a, det)
			}
		}
	}
}

func TestBuildAxisRotationLeavesAxisFixed(t *testing.T) {
	tests := []struct {
		axis Axis
		v    mgl32.Vec4
	}{
		{AxisX, mgl32.Vec4{1, 0, 0, 1}},
		{AxisY, mgl32.Vec4{0, 1, 0, 1}},
		{AxisZ, mgl32.Vec4{0, 0, 1, 1}},
	}
	for _, tt := range tests {
		got := BuildAxisRotation(tt.axis, 1.1).Mul4x1(tt.v)
		if !got.ApproxEqualThreshold(tt.v, matEpsilon) {
			t.Errorf("R%v moved its own axis: %v -> %v", tt.axis, tt.v, got)
		}
	}
}

func TestBuildAxisRotationNaNPropagates(t *testing.T) {
	m := BuildAxisRotation(AxisZ, Radians(math.NaN()))
	if !math.IsNaN(float64(m[0])) || !math.IsNaN(float64(m[1])) {
		t.Errorf("expected NaN in rotated components, got %v", m)
	}
	if m[10] != 1 || m[15] != 1 {
		t.Errorf("fixed components changed: %v", m)
	}
}

func TestBuildAxisRotationUnknownAxis(t *testing.T) {
	if got := BuildAxisRotation(Axis(7), 1); got != mgl32.Ident4() {
		t.Errorf("BuildAxisRotation(Axis(7), 1) = %v, want identity", got)
	}
}

func TestBuildAxisRotationFreshValue(t *testing.T) {
	m := RotationX(0.3)
	m[0] = 42
	if again := RotationX(0.3); again[0] != 1 {
		t.Errorf("mutating a returned matrix leaked into the next call: %v", again)
	}
}

func TestWorldTransformOrder(t *testing.T) {
	proj := Translation(0, 0, -2.5)
	got := WorldTransform(proj, 0.4, -0.9, 2)
	want := proj.Mul4(RotationX(0.4)).Mul4(RotationY(-0.9)).Mul4(mgl32.Scale3D(2, 2, 2))
	if !got.ApproxEqualThreshold(want, matEpsilon) {
		t.Errorf("WorldTransform = %v, want %v", got, want)
	}

	// Scale is applied before the rotations: a unit X vector ends up with length 2.
	v := WorldTransform(mgl32.Ident4(), 0.4, -0.9, 2).Mul4x1(mgl32.Vec4{1, 0, 0, 0})
	if l := v.Vec3().Len(); !mgl32.FloatEqualThreshold(l, 2, matEpsilon) {
		t.Errorf("|world * x| = %v, want 2", l)
	}
}

func TestClipDepthRemap(t *testing.T) {
	m := ClipDepthRemap()
	tests := []struct{ z, want float32 }{
		{-1, 0},
		{0, 0.5},
		{1, 1},
	}
	for _, tt := range tests {
		got := m.Mul4x1(mgl32.Vec4{0.3, -0.2, tt.z, 1})
		if !mgl32.FloatEqualThreshold(got.Z(), tt.want, matEpsilon) || got.X() != 0.3 || got.Y() != -0.2 {
			t.Errorf("remap z=%v -> %v, want z=%v", tt.z, got, tt.want)
		}
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	p := Perspective(Degrees(60).Radians(), 1.5, 1, 12)
	near := p.Mul4x1(mgl32.Vec4{0, 0, -1, 1})
	far := p.Mul4x1(mgl32.Vec4{0, 0, -12, 1})
	if z := near.Z() / near.W(); !mgl32.FloatEqualThreshold(z, 0, matEpsilon) {
		t.Errorf("near plane depth = %v, want 0", z)
	}
	if z := far.Z() / far.W(); !mgl32.FloatEqualThreshold(z, 1, matEpsilon) {
		t.Errorf("far plane depth = %v, want 1", z)
	}
}

func TestSliceToBytes(t *testing.T) {
	if got := SliceToBytes([]float32(nil)); got != nil {
		t.Errorf("SliceToBytes(nil) = %v, want nil", got)
	}
	m := RotationY(0)
	if got := len(SliceToBytes(m[:])); got != 64 {
		t.Errorf("len(SliceToBytes(mat4)) = %d, want 64", got)
	}
	if got := len(StructToBytes(&m)); got != 64 {
		t.Errorf("len(StructToBytes(mat4)) = %d, want 64", got)
	}
}
