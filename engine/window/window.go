// Package window wraps the native GLFW window the viewer draws into and forwards its
// input and resize events to engine callbacks.
package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window is the platform window hosting the WebGPU surface.
// All methods must be called from the goroutine that created the window.
type Window interface {
	// SetUpdateCallback sets a function called once per message-loop iteration.
	//
	// Parameters:
	//   - callback: function invoked after events are processed
	SetUpdateCallback(callback func())

	// SetResizeCallback sets a function called when the framebuffer size changes.
	//
	// Parameters:
	//   - callback: function receiving the new framebuffer width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets a function called on vertical scroll.
	//
	// Parameters:
	//   - callback: function receiving the scroll delta (positive away from the user)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets a function called on key press and key repeat.
	//
	// Parameters:
	//   - callback: function receiving the GLFW key code (see common key codes)
	SetKeyDownCallback(callback func(keyCode uint32))

	// SurfaceDescriptor returns the platform descriptor used to create the WebGPU surface.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the descriptor, or nil if the window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// SetTitle replaces the window title.
	SetTitle(title string)

	// IsRunning reports whether the window is still open.
	IsRunning() bool

	// Close destroys the window and releases the platform library.
	//
	// Returns:
	//   - error: error if the window was never initialized
	Close() error

	// RequestClose asks the message loop to exit at its next iteration.
	RequestClose()

	// ProcessMessages runs the message loop until the window closes.
	// Blocks the calling goroutine, which must be the one that created the window.
	ProcessMessages()

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int
}

type engineWindow struct {
	title  string
	width  int
	height int

	internalWindow any

	onUpdate  func()
	onResize  func(width, height int)
	onScroll  func(delta float32)
	onKeyDown func(keyCode uint32)
}

var _ Window = &engineWindow{}

// NewWindow creates and opens a platform window. The calling goroutine is locked to its
// OS thread, which GLFW requires for every later window call.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the opened window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:  "oxy-surface",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(w)
	}

	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) SetTitle(title string) {
	w.title = title
	platformSetTitle(w, title)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if ok := platformProcessMessages(w); !ok {
			break
		}
		if w.onUpdate != nil {
			w.onUpdate()
		}
		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
