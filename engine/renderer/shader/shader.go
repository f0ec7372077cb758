package shader

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/oxy-tutorials/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// RotateSource is the WGSL module used by every demo.
// It expects GPUVertex input at buffer 0 and a Uniforms block at group 0, binding 0.
//
//go:embed shaders/rotate.wgsl
var RotateSource string

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage int

const (
	// StageVertex is the vertex stage.
	StageVertex ShaderStage = iota

	// StageFragment is the fragment stage.
	StageFragment
)

// shader is the implementation of the Shader interface.
type shader struct {
	key    string
	source string

	vertexEntryPoint   string
	fragmentEntryPoint string

	vertexLayout    wgpu.VertexBufferLayout
	hasVertexLayout bool
	uniforms        []UniformBinding
}

// Shader is a reflected WGSL module holding a vertex and a fragment entry point.
// Reflection covers what a simple render pipeline needs: entry points, the vertex buffer
// layout of the vertex input struct, and the uniform buffers with their sizes.
type Shader interface {
	// Key returns the shader identifier used as GPU object label.
	Key() string

	// Source returns the WGSL source code.
	Source() string

	// EntryPoint returns the entry point function for a stage.
	//
	// Parameters:
	//   - stage: the pipeline stage
	//
	// Returns:
	//   - string: the function name, or "" if the module has none for the stage
	EntryPoint(stage ShaderStage) string

	// VertexLayout returns the vertex buffer layout derived from the vertex input struct.
	//
	// Returns:
	//   - wgpu.VertexBufferLayout: the layout
	//   - bool: false if the module has no vertex input struct
	VertexLayout() (wgpu.VertexBufferLayout, bool)

	// Uniforms returns the uniform buffer declarations sorted by group and binding.
	Uniforms() []UniformBinding

	// Module returns the descriptor for creating the GPU shader module.
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader reflects a WGSL module.
//
// Parameters:
//   - key: identifier used in labels and log messages
//   - source: WGSL source code
//
// Returns:
//   - Shader: the reflected shader
//   - error: error if the module lacks a vertex or fragment entry point or a uniform type cannot be sized
func NewShader(key, source string) (Shader, error) {
	cleaned := stripComments(source)
	structs := parseStructBlocks(cleaned)

	s := &shader{
		key:                key,
		source:             source,
		vertexEntryPoint:   parseEntryPoint(cleaned, StageVertex),
		fragmentEntryPoint: parseEntryPoint(cleaned, StageFragment),
		uniforms:           parseUniforms(cleaned, structs),
	}
	s.vertexLayout, s.hasVertexLayout = parseVertexLayout(structs)

	if s.vertexEntryPoint == "" {
		return nil, fmt.Errorf("shader %s: no @vertex entry point", key)
	}
	if s.fragmentEntryPoint == "" {
		return nil, fmt.Errorf("shader %s: no @fragment entry point", key)
	}
	for _, u := range s.uniforms {
		if u.Size == 0 {
			return nil, fmt.Errorf("shader %s: cannot size uniform %s of type %s", key, u.Name, u.Type)
		}
	}

	common.Logger().Debug("shader reflected",
		"key", key,
		"vertex", s.vertexEntryPoint,
		"fragment", s.fragmentEntryPoint,
		"stride", s.vertexLayout.ArrayStride,
		"uniforms", len(s.uniforms),
	)
	return s, nil
}

// NewRotateShader reflects RotateSource.
func NewRotateShader() (Shader, error) {
	return NewShader("rotate", RotateSource)
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) EntryPoint(stage ShaderStage) string {
	switch stage {
	case StageVertex:
		return s.vertexEntryPoint
	case StageFragment:
		return s.fragmentEntryPoint
	default:
		return ""
	}
}

func (s *shader) VertexLayout() (wgpu.VertexBufferLayout, bool) {
	return s.vertexLayout, s.hasVertexLayout
}

func (s *shader) Uniforms() []UniformBinding {
	return s.uniforms
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
}
