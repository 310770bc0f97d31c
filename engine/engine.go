// Package engine runs the viewer: a fixed-rate tick loop that orbits the camera, a render
// loop that draws the scene's surface, and the window message loop that feeds key input
// into surface regeneration.
package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-surface/common"
	"github.com/Carmen-Shannon/oxy-surface/engine/model"
	"github.com/Carmen-Shannon/oxy-surface/engine/profiler"
	"github.com/Carmen-Shannon/oxy-surface/engine/renderer"
	"github.com/Carmen-Shannon/oxy-surface/engine/scene"
	"github.com/Carmen-Shannon/oxy-surface/engine/window"
)

// engine implements the Engine interface.
// Coordinates engine, render, and window threads.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window
	scene  scene.Scene

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	zoomStep         float32
}

// Engine is the main entry point for the viewer.
// It orchestrates the engine loop, render loop, and window management.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the scene being viewed.
	//
	// Returns:
	//   - scene.Scene: the scene instance
	Scene() scene.Scene

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	// The scene's camera advances and the tick callback runs at this rate.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick after the scene update.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after each rendered frame.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// HandleKey applies a key press to the scene:
	//   - Up / Down: one ring more / fewer
	//   - Right / Left: one slice more / fewer
	//   - T: toggle sphere and torus
	//   - G / Enter: regenerate with the current parameters
	//   - P: pause or resume the camera orbit
	//   - Space: toggle between vsync and uncapped presentation
	//
	// Parameters:
	//   - keyCode: the key code (see common key codes)
	//
	// Returns:
	//   - error: an error if regeneration or surface reconfiguration failed
	HandleKey(keyCode uint32) error

	// Run starts the tick and render goroutines and runs the window message loop on the
	// calling goroutine. Blocks until the window closes, then stops the goroutines.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine viewing the given scene.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - s: the scene to view
//   - options: functional options for engine configuration (window, profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(s scene.Scene, options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		scene:            s,
		running:          false,
		wg:               sync.WaitGroup{},
		profiler:         profiler.NewProfiler(time.Second),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
		zoomStep:         0.5,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.handleResize)
		e.window.SetScrollCallback(e.handleScroll)
		e.window.SetKeyDownCallback(func(keyCode uint32) {
			if err := e.HandleKey(keyCode); err != nil {
				common.Logger().Error("key handling failed", "key", keyCode, "error", err)
			}
		})

		s.SetRegenerateCallback(func(m model.Model) {
			e.window.SetTitle(windowTitle(m))
		})
		if m := s.Model(); m != nil {
			e.window.SetTitle(windowTitle(m))
		}
		if e.window.Height() > 0 {
			s.Camera().SetAspect(float32(e.window.Width()) / float32(e.window.Height()))
		}
	}

	return e
}

// windowTitle describes the displayed surface.
func windowTitle(m model.Model) string {
	return fmt.Sprintf("oxy-surface | %s | %d vertices, %d triangles",
		m.Name(), m.VertexCount(), m.IndexCount()/3)
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Run() {
	e.running = true
	e.handle()
	e.window.ProcessMessages()
	e.signalQuit()
	e.wg.Wait()
}

// Quit signals all engine goroutines to stop and asks the window to close.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

// handle launches the engine, render, and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(3)
	go e.handleEngine()
	go e.handleRender()
	go e.handleQuit()
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Advances the scene and fires the tick callback at the configured tick rate, and listens
// for dynamic rate changes via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			e.scene.Update(dt)
			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	// Recover from panics inside the render goroutine to avoid crashing the whole process.
	defer func() {
		if r := recover(); r != nil {
			common.Logger().Error("render goroutine recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()
	var lastErr error

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			err := e.scene.Draw()
			// log each distinct failure once rather than every frame
			if err != nil && (lastErr == nil || err.Error() != lastErr.Error()) {
				level := common.Logger().Warn
				if errors.Is(err, renderer.ErrNoMesh) {
					level = common.Logger().Debug
				}
				level("frame skipped", "error", err)
			}
			lastErr = err

			if e.renderCallback != nil {
				e.renderCallback(dt)
			}

			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick()
			}

			// Frame rate limiting
			if e.renderFrameLimit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// handleResize keeps the surface and the projection in step with the framebuffer.
// A minimized window reports a zero size and is ignored.
func (e *engine) handleResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.scene.Camera().SetAspect(float32(width) / float32(height))
	if r := e.scene.Renderer(); r != nil {
		if err := r.Resize(width, height); err != nil {
			common.Logger().Error("surface resize failed", "width", width, "height", height, "error", err)
		}
	}
}

// handleScroll zooms the orbit in (positive delta) or out.
func (e *engine) handleScroll(delta float32) {
	if ctrl := e.scene.Camera().Controller(); ctrl != nil {
		ctrl.Zoom(delta * e.zoomStep)
	}
}

func (e *engine) HandleKey(keyCode uint32) error {
	switch keyCode {
	case common.KeyUp:
		return e.scene.StepRings(1)
	case common.KeyDown:
		return e.scene.StepRings(-1)
	case common.KeyRight:
		return e.scene.StepSlices(1)
	case common.KeyLeft:
		return e.scene.StepSlices(-1)
	case common.KeyT:
		return e.scene.ToggleKind()
	case common.KeyG, common.KeyEnter:
		return e.scene.Regenerate()
	case common.KeyP:
		if ctrl := e.scene.Camera().Controller(); ctrl != nil {
			ctrl.SetPaused(!ctrl.Paused())
		}
	case common.KeySpace:
		if r := e.scene.Renderer(); r != nil {
			mode := r.PresentMode().Toggle()
			if err := r.SetPresentMode(mode); err != nil {
				return err
			}
			common.Logger().Info("present mode changed", "mode", mode)
		}
	}
	return nil
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	if e.running {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}
