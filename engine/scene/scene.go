package scene

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-tutorials/common"
	"github.com/Carmen-Shannon/oxy-tutorials/engine/camera"
	"github.com/Carmen-Shannon/oxy-tutorials/engine/model"
	"github.com/Carmen-Shannon/oxy-tutorials/engine/renderer"
	"github.com/Carmen-Shannon/oxy-tutorials/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-tutorials/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-tutorials/engine/surface"
	"github.com/go-gl/mathgl/mgl32"
)

// scene implements the Scene interface.
type scene struct {
	mu *sync.Mutex

	name   string
	active bool

	renderer   renderer.Renderer
	controller surface.Controller
	camera     camera.Camera

	// pipelineKeys holds one pipeline per added model, in draw order.
	pipelineKeys []string
	vertexCount  int
}

// Scene is a set of models drawn with the same controller state.
//
// Every model gets its own pipeline on the scene's renderer. Each frame the controller's
// uniform block is written to all of them, so rotation, scale and wave apply to the whole scene.
type Scene interface {
	// Name returns the scene name, which prefixes the keys of its pipelines.
	//
	// Returns:
	//   - string: the scene name
	Name() string

	// Active reports whether the engine draws the scene.
	//
	// Returns:
	//   - bool: true if active
	Active() bool

	// SetActive sets whether the engine draws the scene.
	//
	// Parameters:
	//   - active: whether the scene is active
	SetActive(active bool)

	// Renderer returns the renderer the scene draws with.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// Controller returns the surface controller whose state the scene draws.
	//
	// Returns:
	//   - surface.Controller: the controller
	Controller() surface.Controller

	// Camera returns the scene camera, or nil when the scene draws straight into clip space.
	//
	// Returns:
	//   - camera.Camera: the camera or nil
	Camera() camera.Camera

	// Add registers a pipeline for m on the scene's renderer and uploads its vertices.
	//
	// Parameters:
	//   - m: the model to draw
	//   - s: the shader to draw it with
	//   - pipelineOpts: options for the model's pipeline, e.g. culling or depth testing
	//
	// Returns:
	//   - string: the key of the created pipeline
	//   - error: an error if the pipeline could not be registered or the upload failed
	Add(m model.Model, s shader.Shader, pipelineOpts ...pipeline.PipelineBuilderOption) (string, error)

	// Count returns the number of models in the scene.
	Count() int

	// VertexCount returns the number of vertices drawn per frame.
	VertexCount() int

	// Projection returns the matrix the controller composes its world transform with:
	// the camera's view-projection, or the clip depth remap when there is no camera.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	Projection() mgl32.Mat4

	// Prepare advances the controller's animation and writes its uniform block to every pipeline.
	//
	// Parameters:
	//   - now: the frame time
	//
	// Returns:
	//   - error: the first uniform write error
	Prepare(now time.Time) error

	// DrawCalls encodes one draw per model within the current render pass.
	//
	// Returns:
	//   - error: the first draw error
	DrawCalls() error
}

var _ Scene = &scene{}

// NewScene creates a new Scene drawing with r.
// Without WithController the scene gets a default surface.Controller.
//
// Parameters:
//   - name: the scene name
//   - r: the renderer the scene's pipelines are registered on
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:       &sync.Mutex{},
		name:     name,
		renderer: r,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.controller == nil {
		s.controller = surface.NewController()
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Renderer() renderer.Renderer {
	return s.renderer
}

func (s *scene) Controller() surface.Controller {
	return s.controller
}

func (s *scene) Camera() camera.Camera {
	return s.camera
}

func (s *scene) Add(m model.Model, sh shader.Shader, pipelineOpts ...pipeline.PipelineBuilderOption) (string, error) {
	if s.renderer == nil {
		return "", errors.New("scene has no renderer")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := fmt.Sprintf("%s/%d:%s", s.name, len(s.pipelineKeys), m.Name())
	if err := s.renderer.RegisterPipelines(pipeline.NewPipeline(key, sh, pipelineOpts...)); err != nil {
		return "", fmt.Errorf("register pipeline %q: %w", key, err)
	}
	if err := s.renderer.UploadVertices(key, m); err != nil {
		return "", fmt.Errorf("upload %q: %w", m.Name(), err)
	}
	s.pipelineKeys = append(s.pipelineKeys, key)
	s.vertexCount += m.VertexCount()

	common.Logger().Debug("model added", "scene", s.name, "pipeline", key, "vertices", m.VertexCount())
	return key, nil
}

func (s *scene) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pipelineKeys)
}

func (s *scene) VertexCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vertexCount
}

func (s *scene) Projection() mgl32.Mat4 {
	if s.camera != nil {
		return s.camera.ViewProjectionMatrix()
	}
	return common.ClipDepthRemap()
}

func (s *scene) Prepare(now time.Time) error {
	s.controller.Animate(now)
	u := s.controller.Uniforms(s.Projection())
	data := u.Bytes()

	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for _, key := range s.pipelineKeys {
		if err := s.renderer.WriteUniforms(key, data); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *scene) DrawCalls() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for _, key := range s.pipelineKeys {
		if err := s.renderer.Draw(key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
