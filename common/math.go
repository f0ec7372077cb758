package common

import (
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Radians is an angle expressed in radians.
type Radians float32

// Degrees is an angle expressed in degrees.
type Degrees float32

// Radians converts the angle to radians (deg * π / 180).
//
// Returns:
//   - Radians: the converted angle
func (d Degrees) Radians() Radians {
	return Radians(float64(d) * math.Pi / 180)
}

// Degrees converts the angle to degrees (rad * 180 / π).
//
// Returns:
//   - Degrees: the converted angle
func (r Radians) Degrees() Degrees {
	return Degrees(float64(r) * 180 / math.Pi)
}

// Axis selects one of the three principal coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "Axis(?)"
	}
}

// BuildAxisRotation returns the 4x4 rotation around a single principal axis.
// The matrix is stored in column-major order and is uploaded without a transpose.
// The sign placement is fixed: each group of four values below is one column.
//
//	X: 1,0,0,0   0,c,s,0   0,-s,c,0  0,0,0,1
//	Y: c,0,-s,0  0,1,0,0   s,0,c,0   0,0,0,1
//	Z: c,s,0,0   -s,c,0,0  0,0,1,0   0,0,0,1
//
// NaN or Inf angles propagate into the result. An axis outside X, Y and Z yields the identity.
//
// Parameters:
//   - axis: the axis to rotate around
//   - angle: rotation angle in radians
//
// Returns:
//   - mgl32.Mat4: a freshly built rotation matrix
func BuildAxisRotation(axis Axis, angle Radians) mgl32.Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))

	switch axis {
	case AxisX:
		return mgl32.Mat4{
			1, 0, 0, 0,
			0, c, s, 0,
			0, -s, c, 0,
			0, 0, 0, 1,
		}
	case AxisY:
		return mgl32.Mat4{
			c, 0, -s, 0,
			0, 1, 0, 0,
			s, 0, c, 0,
			0, 0, 0, 1,
		}
	case AxisZ:
		return mgl32.Mat4{
			c, s, 0, 0,
			-s, c, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		}
	default:
		return mgl32.Ident4()
	}
}

// RotationX is shorthand for BuildAxisRotation(AxisX, angle).
func RotationX(angle Radians) mgl32.Mat4 { return BuildAxisRotation(AxisX, angle) }

// RotationY is shorthand for BuildAxisRotation(AxisY, angle).
func RotationY(angle Radians) mgl32.Mat4 { return BuildAxisRotation(AxisY, angle) }

// RotationZ is shorthand for BuildAxisRotation(AxisZ, angle).
func RotationZ(angle Radians) mgl32.Mat4 { return BuildAxisRotation(AxisZ, angle) }

// Scale returns a uniform scale matrix.
func Scale(s float32) mgl32.Mat4 {
	return mgl32.Scale3D(s, s, s)
}

// Translation returns a translation matrix with the offset in the last column.
func Translation(x, y, z float32) mgl32.Mat4 {
	return mgl32.Translate3D(x, y, z)
}

// Perspective creates a perspective projection matrix.
// Uses the WebGPU clip space depth range [0, 1].
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the projection matrix
func Perspective(fovY Radians, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	out := mgl32.Ident4()

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
	return out
}

// ClipDepthRemap maps OpenGL style clip depth [-w, w] onto the WebGPU range [0, w].
// Demos that draw straight into clip space without a projection use it as their world transform.
func ClipDepthRemap() mgl32.Mat4 {
	return mgl32.Translate3D(0, 0, 0.5).Mul4(mgl32.Scale3D(1, 1, 0.5))
}

// WorldTransform composes projection * Rx * Ry * S.
// The model is scaled first, then rotated around Y, then around X, then projected.
//
// Parameters:
//   - projection: the projection (and camera offset) matrix
//   - rotX, rotY: rotation angles in radians
//   - scale: uniform model scale
//
// Returns:
//   - mgl32.Mat4: the combined world transform
func WorldTransform(projection mgl32.Mat4, rotX, rotY Radians, scale float32) mgl32.Mat4 {
	return projection.
		Mul4(RotationX(rotX)).
		Mul4(RotationY(rotY)).
		Mul4(Scale(scale))
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}
