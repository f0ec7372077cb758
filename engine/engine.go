package engine

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-tutorials/common"
	"github.com/Carmen-Shannon/oxy-tutorials/engine/profiler"
	"github.com/Carmen-Shannon/oxy-tutorials/engine/renderer"
	"github.com/Carmen-Shannon/oxy-tutorials/engine/scene"
	"github.com/Carmen-Shannon/oxy-tutorials/engine/window"
)

// engine implements the Engine interface.
// Frames run on the window thread, interleaved with event dispatch in program order.
type engine struct {
	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   window.Window
	renderer renderer.Renderer

	scenes map[int]scene.Scene

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameCallback func(now time.Time, deltaTime float32)
	lastFrame     time.Time

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	now   func() time.Time
	sleep func(time.Duration)
}

// Engine is the main entry point for a demo.
// It owns the window message loop and calls the frame callback once per loop iteration.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer resized alongside the window, or nil if none was set.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// Profiler returns the engine's frame profiler.
	//
	// Returns:
	//   - *profiler.Profiler: the profiler ticked once per frame while profiling is enabled
	Profiler() *profiler.Profiler

	// EnableProfiler enables per-frame profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables per-frame profiling output.
	DisableProfiler()

	// SetFrameCallback registers the function called each frame before the scenes are drawn.
	//
	// Parameters:
	//   - callback: function receiving the frame time and the seconds since the previous frame
	SetFrameCallback(callback func(now time.Time, deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Active scenes are drawn in ascending key order within one render pass per frame.
	//
	// Parameters:
	//   - key: the z-index determining draw order (lower draws first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Run drives the window message loop until the window closes or Quit is called.
	// The renderer, if any, is released when the loop ends.
	//
	// Returns:
	//   - error: an error if the engine has no window
	Run() error

	// Quit stops the loop before the next frame and closes the window.
	// Safe to call multiple times and from inside the frame callback.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, profiling, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel: make(chan struct{}),
		scenes:      make(map[int]scene.Scene),
		profiler:    profiler.NewProfiler(),
		now:         time.Now,
		sleep:       time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) Run() error {
	if e.window == nil {
		return errors.New("engine has no window")
	}

	e.window.SetResizeCallback(e.handleResize)
	e.window.SetUpdateCallback(e.handleFrame)
	if e.window.Height() > 0 {
		e.setAspect(float32(e.window.Width()) / float32(e.window.Height()))
	}
	e.lastFrame = e.now()

	e.window.ProcessMessages()

	e.signalQuit()
	if e.renderer != nil {
		e.renderer.Release()
	}
	common.Logger().Info("engine stopped")
	return nil
}

// Quit signals the loop to stop. Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) quitting() bool {
	select {
	case <-e.quitChannel:
		return true
	default:
		return false
	}
}

// setAspect keeps every scene camera in step with the framebuffer.
func (e *engine) setAspect(aspect float32) {
	for _, s := range e.scenes {
		if c := s.Camera(); c != nil {
			c.SetAspect(aspect)
		}
	}
}

// handleResize reconfigures the renderer and the scene cameras for the new framebuffer size.
// A minimized window reports 0x0, which is skipped until it is restored.
func (e *engine) handleResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.setAspect(float32(width) / float32(height))
	if e.renderer == nil {
		return
	}
	if err := e.renderer.Resize(width, height); err != nil {
		common.Logger().Error("renderer resize failed", "width", width, "height", height, "error", err)
	}
}

// handleFrame runs one frame: the frame callback, the active scenes, the profiler tick, then the frame limit.
// Recovers from panics in the frame callback, logs them, and quits.
func (e *engine) handleFrame() {
	defer func() {
		if r := recover(); r != nil {
			common.Logger().Error("frame recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	if e.quitting() {
		if e.window.IsRunning() {
			if err := e.window.Close(); err != nil {
				common.Logger().Warn("window close failed", "error", err)
			}
		}
		return
	}

	now := e.now()
	dt := float32(now.Sub(e.lastFrame).Seconds())
	e.lastFrame = now

	if e.window.Width() > 0 && e.window.Height() > 0 {
		if e.frameCallback != nil {
			e.frameCallback(now, dt)
		}
		e.renderScenes(now)
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(now)
	}

	if e.renderFrameLimit > 0 {
		elapsed := e.now().Sub(now)
		if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
			e.sleep(remaining)
		}
	}
}

// activeScenes returns the active scenes in ascending z-index order.
func (e *engine) activeScenes() []scene.Scene {
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var active []scene.Scene
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	return active
}

// renderScenes draws all active scenes in one render pass.
// The first active scene's renderer owns the frame: BeginFrame once, DrawCalls per scene, then EndFrame and Present.
func (e *engine) renderScenes(now time.Time) {
	active := e.activeScenes()
	if len(active) == 0 {
		return
	}
	frameRenderer := active[0].Renderer()
	if frameRenderer == nil {
		return
	}

	for _, s := range active {
		if err := s.Prepare(now); err != nil {
			common.Logger().Warn("scene prepare failed", "scene", s.Name(), "error", err)
		}
	}

	if err := frameRenderer.BeginFrame(); err != nil {
		common.Logger().Warn("frame skipped", "error", err)
		return
	}
	for _, s := range active {
		if err := s.DrawCalls(); err != nil {
			common.Logger().Warn("scene draw failed", "scene", s.Name(), "error", err)
		}
	}
	frameRenderer.EndFrame()
	frameRenderer.Present()
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	return e.scenes[key]
}

// EnableProfiler enables per-frame profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables per-frame profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetFrameCallback(callback func(now time.Time, deltaTime float32)) {
	e.frameCallback = callback
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
