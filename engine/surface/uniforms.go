package surface

import (
	"github.com/Carmen-Shannon/oxy-tutorials/common"
	"github.com/go-gl/mathgl/mgl32"
)

// UniformsSize is the size of the Uniforms block in bytes.
const UniformsSize = 4*64 + 16

// Uniforms mirrors the uniform block of the rotate shader.
// Matrices are column-major and uploaded as-is.
//
// The vertex position is transformed as World * Z * Y * X * p after the wave has displaced it.
type Uniforms struct {
	XRotation mgl32.Mat4
	YRotation mgl32.Mat4
	ZRotation mgl32.Mat4
	World     mgl32.Mat4

	// Wave holds amplitude, phase and frequency; the last lane is padding.
	Wave [4]float32
}

// Bytes returns the raw byte view of the block for a GPU buffer write.
// The slice shares memory with u.
func (u *Uniforms) Bytes() []byte {
	return common.StructToBytes(u)
}
