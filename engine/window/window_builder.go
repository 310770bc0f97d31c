package window

// WindowBuilderOption is a functional option applied to a window during construction via NewWindow.
type WindowBuilderOption func(*engineWindow)

// WithTitle sets the initial window title.
//
// Parameters:
//   - title: the title bar text
//
// Returns:
//   - WindowBuilderOption: a function that applies the title option to a window
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the requested window size in screen coordinates. On high-DPI displays
// the framebuffer reported by Width and Height may be larger.
//
// Parameters:
//   - width: the requested width
//   - height: the requested height
//
// Returns:
//   - WindowBuilderOption: a function that applies the size option to a window
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
		w.height = height
	}
}
