package shader

import (
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestRotateShaderReflection(t *testing.T) {
	s, err := NewRotateShader()
	if err != nil {
		t.Fatalf("NewRotateShader() error = %v", err)
	}

	if got := s.EntryPoint(StageVertex); got != "vs_main" {
		t.Errorf("vertex entry point = %q, want vs_main", got)
	}
	if got := s.EntryPoint(StageFragment); got != "fs_main" {
		t.Errorf("fragment entry point = %q, want fs_main", got)
	}

	layout, ok := s.VertexLayout()
	if !ok {
		t.Fatal("no vertex layout")
	}
	// Matches model.GPUVertex: vec3 position then vec4 color, tightly packed.
	if layout.ArrayStride != 28 {
		t.Errorf("ArrayStride = %d, want 28", layout.ArrayStride)
	}
	want := []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1},
	}
	if len(layout.Attributes) != len(want) {
		t.Fatalf("attributes = %v, want %v", layout.Attributes, want)
	}
	for i := range want {
		if layout.Attributes[i] != want[i] {
			t.Errorf("attribute %d = %+v, want %+v", i, layout.Attributes[i], want[i])
		}
	}

	uniforms := s.Uniforms()
	if len(uniforms) != 1 {
		t.Fatalf("uniforms = %v, want one binding", uniforms)
	}
	u := uniforms[0]
	if u.Group != 0 || u.Binding != 0 || u.Name != "uniforms" || u.Type != "Uniforms" {
		t.Errorf("uniform = %+v", u)
	}
	if u.Size != 272 {
		t.Errorf("uniform size = %d, want 272", u.Size)
	}

	if m := s.Module(); m.Label != "rotate" || m.WGSLDescriptor.Code != RotateSource {
		t.Error("module descriptor does not carry the source")
	}
}

func TestNewShaderMissingEntryPoints(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr string
	}{
		{
			name:    "no vertex",
			source:  "@fragment fn fs() -> @location(0) vec4f { return vec4f(1.0); }",
			wantErr: "@vertex",
		},
		{
			name:    "no fragment",
			source:  "@vertex fn vs() -> @builtin(position) vec4f { return vec4f(0.0); }",
			wantErr: "@fragment",
		},
		{
			name: "commented out fragment",
			source: `@vertex fn vs() -> @builtin(position) vec4f { return vec4f(0.0); }
// @fragment fn fs() -> @location(0) vec4f { return vec4f(1.0); }`,
			wantErr: "@fragment",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewShader("broken", tt.source)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("NewShader() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestNewShaderUnsizedUniform(t *testing.T) {
	src := `
@group(0) @binding(0) var<uniform> u: Missing;
@vertex fn vs() -> @builtin(position) vec4f { return vec4f(0.0); }
@fragment fn fs() -> @location(0) vec4f { return vec4f(1.0); }`
	if _, err := NewShader("unsized", src); err == nil {
		t.Error("expected an error for an unknown uniform type")
	}
}

func TestStructLayout(t *testing.T) {
	tests := []struct {
		name string
		body string
		size uint64
	}{
		{"scalars", "a: f32, b: u32", 8},
		{"vec3 padding", "a: vec3<f32>, b: f32", 16},
		{"scalar then vec4", "a: f32, b: vec4f", 32},
		{"matrix", "m: mat4x4f, t: f32", 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := parsedStruct{name: "S", fields: parseStructFields(tt.body)}
			layout, ok := structLayout(ps, nil)
			if !ok {
				t.Fatal("layout not resolved")
			}
			if layout.size != tt.size {
				t.Errorf("size = %d, want %d", layout.size, tt.size)
			}
		})
	}
}

func TestParseStructFields(t *testing.T) {
	fields := parseStructFields(`
    @builtin(position) clip: vec4<f32>,
    @location(3) @interpolate(flat) id: u32,
    plain: array<f32, 4>,
`)
	if len(fields) != 3 {
		t.Fatalf("got %d fields: %+v", len(fields), fields)
	}
	if !fields[0].isBuiltin || fields[0].name != "clip" || fields[0].location != -1 {
		t.Errorf("field 0 = %+v", fields[0])
	}
	if fields[1].location != 3 || fields[1].name != "id" || fields[1].typeName != "u32" {
		t.Errorf("field 1 = %+v", fields[1])
	}
	if fields[2].typeName != "array<f32, 4>" {
		t.Errorf("field 2 type = %q", fields[2].typeName)
	}
}

func TestStripComments(t *testing.T) {
	src := "a /* b /* nested */ c */ d // e\nf"
	if got := stripComments(src); got != "a  d \nf" {
		t.Errorf("stripComments() = %q", got)
	}
}
