package model

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertexStride is the size of one GPUVertex in a vertex buffer.
const GPUVertexStride = 28

// GPUVertex is the GPU-aligned representation of a single vertex.
// Matches the VertexInput struct of the rotate shader: position at location 0, color at location 1.
// Size: 28 bytes, tightly packed.
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Color    [4]float32 // offset 12: normalized RGBA color (16 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a little-endian byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 28-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, GPUVertexStride)
	for i, f := range g.Position {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	for i, f := range g.Color {
		binary.LittleEndian.PutUint32(buf[12+i*4:], math.Float32bits(f))
	}
	return buf
}

// ColorRGB8 converts an 8-bit RGB triple into a normalized opaque RGBA color (0 maps to 0.0, 255 to 1.0).
//
// Parameters:
//   - r, g, b: color channels in 0..255
//
// Returns:
//   - [4]float32: the normalized color with alpha 1
func ColorRGB8(r, g, b uint8) [4]float32 {
	return [4]float32{float32(r) / 255, float32(g) / 255, float32(b) / 255, 1}
}

// ComputeBoundingRadius calculates the bounding sphere radius from a slice of
// GPUVertex positions. The radius is the maximum distance from the origin
// across all vertices in the slice.
//
// Parameters:
//   - vertices: the vertex data to compute the bounding radius from
//
// Returns:
//   - float32: the maximum distance from the origin
func ComputeBoundingRadius(vertices []GPUVertex) float32 {
	var maxDistSq float32
	for _, v := range vertices {
		p := v.Position
		distSq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		if distSq > maxDistSq {
			maxDistSq = distSq
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}
