package pipeline

import (
	"github.com/Carmen-Shannon/oxy-tutorials/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	pipelineKey string
	shader      shader.Shader

	depthTestEnabled  bool
	depthWriteEnabled bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask

	// GPU objects, set by the renderer backend once the pipeline is registered.
	renderPipeline *wgpu.RenderPipeline
	uniformBuffer  *wgpu.Buffer
	bindGroup      *wgpu.BindGroup
	vertexBuffer   *wgpu.Buffer
	vertexCount    uint32
}

// Pipeline describes one render pipeline: its shader, its fixed-function state and,
// once registered with a renderer, the GPU objects that draw with it.
// Each pipeline owns one uniform buffer at group 0, binding 0 and one vertex buffer.
type Pipeline interface {
	// PipelineKey returns the unique identifier used to cache the pipeline.
	PipelineKey() string

	// Shader returns the shader module the pipeline runs.
	Shader() shader.Shader

	// DepthTestEnabled reports whether fragments are depth tested against the depth buffer.
	DepthTestEnabled() bool

	// DepthWriteEnabled reports whether fragments write to the depth buffer.
	DepthWriteEnabled() bool

	// CullMode returns the face culling mode.
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology.
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the winding that counts as front facing.
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask of the single color target.
	WriteMask() wgpu.ColorWriteMask

	// RenderPipeline returns the GPU pipeline, or nil before registration.
	RenderPipeline() *wgpu.RenderPipeline

	// UniformBuffer returns the uniform buffer, or nil before registration.
	UniformBuffer() *wgpu.Buffer

	// BindGroup returns the bind group holding the uniform buffer, or nil before registration.
	BindGroup() *wgpu.BindGroup

	// VertexBuffer returns the vertex buffer, or nil before vertices are uploaded.
	VertexBuffer() *wgpu.Buffer

	// VertexCount returns the number of vertices drawn per draw call.
	VertexCount() uint32

	// SetRenderPipeline stores the GPU pipeline.
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// SetUniforms stores the uniform buffer and the bind group referencing it.
	SetUniforms(buffer *wgpu.Buffer, bindGroup *wgpu.BindGroup)

	// SetVertices stores the vertex buffer and the number of vertices it holds.
	// A previously stored vertex buffer is released.
	SetVertices(buffer *wgpu.Buffer, count uint32)

	// Release frees every GPU object held by the pipeline.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a Pipeline description for the given shader.
// Defaults: triangle list, counter-clockwise front faces, no culling, depth test and write on.
//
// Parameters:
//   - pipelineKey: unique identifier for the pipeline
//   - s: the reflected shader module
//   - opts: variadic list of PipelineBuilderOption functions
//
// Returns:
//   - Pipeline: the pipeline description, not yet backed by GPU objects
func NewPipeline(pipelineKey string, s shader.Shader, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		shader:            s,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) UniformBuffer() *wgpu.Buffer {
	return p.uniformBuffer
}

func (p *pipeline) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *pipeline) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *pipeline) VertexCount() uint32 {
	return p.vertexCount
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) SetUniforms(buffer *wgpu.Buffer, bindGroup *wgpu.BindGroup) {
	p.uniformBuffer = buffer
	p.bindGroup = bindGroup
}

func (p *pipeline) SetVertices(buffer *wgpu.Buffer, count uint32) {
	if p.vertexBuffer != nil && p.vertexBuffer != buffer {
		p.vertexBuffer.Release()
	}
	p.vertexBuffer = buffer
	p.vertexCount = count
}

func (p *pipeline) Release() {
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.uniformBuffer != nil {
		p.uniformBuffer.Release()
		p.uniformBuffer = nil
	}
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
	p.vertexCount = 0
}
