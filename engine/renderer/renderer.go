package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-tutorials/engine/model"
	"github.com/Carmen-Shannon/oxy-tutorials/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceTarget is anything a renderer can present to: a platform surface plus its size in pixels.
// window.Window satisfies it.
type SurfaceTarget interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	sampleCount          MSAASampleCount
	clearColor           ClearColor
}

// Renderer draws pipelines of colored triangles onto a window surface.
//
// Every pipeline owns its vertex buffer and one uniform buffer, so a frame is a matter of
// writing uniforms and issuing one Draw per pipeline between BeginFrame and EndFrame.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines creates the GPU objects for one or more pipelines and caches them by
	// PipelineKey. Pipelines whose keys are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize reconfigures the surface for a new size.
	// Call it from the window's resize callback.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface could not be configured
	Resize(width, height int) error

	// SetPresentMode changes the present mode. It takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetClearColor changes the color the frame is cleared to.
	//
	// Parameters:
	//   - c: the clear color
	SetClearColor(c ClearColor)

	// UploadVertices replaces the vertex buffer of a registered pipeline with the model's vertices.
	//
	// Parameters:
	//   - pipelineKey: the key of the registered pipeline
	//   - m: the model whose vertices are uploaded
	//
	// Returns:
	//   - error: an error if the pipeline is unknown or the buffer could not be created
	UploadVertices(pipelineKey string, m model.Model) error

	// WriteUniforms writes a uniform block into the uniform buffer of a registered pipeline.
	// Matrices are written as-is, column-major, without a transpose.
	//
	// Parameters:
	//   - pipelineKey: the key of the registered pipeline
	//   - data: the raw uniform bytes, at most the size of the shader's uniform block
	//
	// Returns:
	//   - error: an error if the pipeline is unknown, has no uniform buffer, or data does not fit
	WriteUniforms(pipelineKey string, data []byte) error

	// BeginFrame acquires the swapchain texture and begins the main render pass.
	// Must be paired with EndFrame after all Draw invocations within a single frame.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// Draw encodes a draw of the pipeline's vertex buffer within the current render pass.
	//
	// Parameters:
	//   - pipelineKey: the key of the registered pipeline
	//
	// Returns:
	//   - error: an error if the pipeline is unknown
	Draw(pipelineKey string) error

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Call Present afterwards to display the frame.
	EndFrame()

	// Present presents the surface to the display.
	Present()

	// DrawFrame runs a whole frame: clear, draw each pipeline in order, submit and present.
	//
	// Parameters:
	//   - pipelineKeys: the registered pipelines to draw
	//
	// Returns:
	//   - error: the first error encountered; the frame is still submitted when a draw fails
	DrawFrame(pipelineKeys ...string) error

	// Release frees every pipeline and the GPU device. The renderer is unusable afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer presenting to target.
//
// Parameters:
//   - target: the surface to present to, usually a window.Window
//   - options: variadic list of RendererBuilderOption functions to configure the renderer
//
// Returns:
//   - Renderer: the renderer, with its surface configured at the target's current size
//   - error: an error if the target has no surface or the GPU could not be initialized
func NewRenderer(target SurfaceTarget, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(options...)

	descriptor := target.SurfaceDescriptor()
	if descriptor == nil {
		return nil, errors.New("renderer target has no surface")
	}

	switch r.backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend, err := newWGPURendererBackend(descriptor, r.forceFallbackAdapter, r.sampleCount)
		if err != nil {
			return nil, fmt.Errorf("init wgpu backend: %w", err)
		}
		r.backend = backend
	}

	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetClearColor(r.clearColor)
	if err := r.backend.ConfigureSurface(target.Width(), target.Height()); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("configure surface: %w", err)
	}
	return r, nil
}

// newRenderer applies the options to a renderer without a backend.
func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   BackendTypeWGPU,
		presentMode:   PresentModeVSync,
		sampleCount:   MSAA4x,
		clearColor:    DefaultClearColor,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			p.Release()
			return err
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) Resize(width, height int) error {
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(c ClearColor) {
	r.backend.SetClearColor(c)
}

// lookup returns the cached pipeline or an error naming the missing key.
func (r *renderer) lookup(pipelineKey string) (pipeline.Pipeline, error) {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return nil, fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	return p, nil
}

func (r *renderer) UploadVertices(pipelineKey string, m model.Model) error {
	p, err := r.lookup(pipelineKey)
	if err != nil {
		return err
	}
	return r.backend.UploadVertices(p, m.VertexData(), uint32(m.VertexCount()))
}

func (r *renderer) WriteUniforms(pipelineKey string, data []byte) error {
	p, err := r.lookup(pipelineKey)
	if err != nil {
		return err
	}
	if p.UniformBuffer() == nil {
		return fmt.Errorf("render pipeline %q has no uniform buffer", pipelineKey)
	}
	if size := p.Shader().Uniforms()[0].Size; uint64(len(data)) > size {
		return fmt.Errorf("uniform data of %d bytes exceeds the %d byte buffer of %q", len(data), size, pipelineKey)
	}
	r.backend.WriteUniforms(p, data)
	return nil
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) Draw(pipelineKey string) error {
	p, err := r.lookup(pipelineKey)
	if err != nil {
		return err
	}
	r.backend.DrawCall(p)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) DrawFrame(pipelineKeys ...string) error {
	if err := r.BeginFrame(); err != nil {
		return err
	}
	var drawErr error
	for _, key := range pipelineKeys {
		if err := r.Draw(key); err != nil && drawErr == nil {
			drawErr = err
		}
	}
	r.EndFrame()
	r.Present()
	return drawErr
}

func (r *renderer) Release() {
	r.mu.Lock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.mu.Unlock()

	if r.backend != nil {
		r.backend.Release()
	}
}
