package model

import (
	"github.com/Carmen-Shannon/oxy-tutorials/common"
)

// model is the implementation of the Model interface.
type model struct {
	name           string
	vertices       []GPUVertex
	boundingRadius float32
}

// Model is a non-indexed triangle list ready for upload.
// Every three consecutive vertices form one counter-clockwise triangle.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Vertices returns the vertex list. The slice is owned by the model.
	//
	// Returns:
	//   - []GPUVertex: the vertices, three per triangle
	Vertices() []GPUVertex

	// VertexCount returns the number of vertices to draw.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// VertexData returns the raw vertex bytes for a GPU buffer write.
	// The slice shares memory with the vertex list.
	//
	// Returns:
	//   - []byte: the vertex data, GPUVertexStride bytes per vertex
	VertexData() []byte

	// BoundingRadius returns the maximum vertex distance from the origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	m.boundingRadius = ComputeBoundingRadius(m.vertices)
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Vertices() []GPUVertex {
	return m.vertices
}

func (m *model) VertexCount() int {
	return len(m.vertices)
}

func (m *model) VertexData() []byte {
	return common.SliceToBytes(m.vertices)
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}
