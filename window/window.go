// Package window provides a debug preview window for inspecting what the
// batch renderer draws. It is a development aid; headless batch rendering
// never needs it.
package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is a native window a WebGPU surface can be created on. All methods
// must be called from the thread that created the window.
type Window interface {
	// SurfaceDescriptor returns a platform-appropriate wgpu surface
	// descriptor for the window, or nil if the window is closed.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the surface descriptor
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Size returns the window's framebuffer size in pixels. On high-DPI
	// displays this differs from the requested window size.
	//
	// Returns:
	//   - int: framebuffer width in pixels
	//   - int: framebuffer height in pixels
	Size() (int, int)

	// SetResizeCallback sets the function called when the framebuffer is
	// resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// Poll processes pending window events without blocking and reports
	// whether the window should stay open. Escape closes the window.
	//
	// Returns:
	//   - bool: true if the window is still running
	Poll() bool

	// Close destroys the window and terminates the windowing library.
	//
	// Returns:
	//   - error: error if the window was already closed
	Close() error
}

// previewWindow is the implementation of the Window interface.
type previewWindow struct {
	window   *glfw.Window
	width    int
	height   int
	running  bool
	onResize func(width, height int)
}

var _ Window = &previewWindow{}

// NewWindow creates a preview window. The calling goroutine is locked to its
// OS thread, since the windowing library requires all window calls on one
// thread.
//
// Parameters:
//   - width: requested window width in pixels
//   - height: requested window height in pixels
//   - title: the window title
//
// Returns:
//   - Window: the new window
//   - error: error if the windowing library or window creation fails
func NewWindow(width, height int, title string) (Window, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("window: failed to initialize GLFW: %v", err)
	}

	// WebGPU brings its own graphics API, so no OpenGL context.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("window: failed to create GLFW window: %v", err)
	}

	w := &previewWindow{
		window:  win,
		running: true,
	}

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.running = false
			win.SetShouldClose(true)
		}
	})

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, fbWidth, fbHeight int) {
		w.width = fbWidth
		w.height = fbHeight
		if w.onResize != nil {
			w.onResize(fbWidth, fbHeight)
		}
	})

	w.width, w.height = win.GetFramebufferSize()
	return w, nil
}

func (w *previewWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.window == nil {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(w.window)
}

func (w *previewWindow) Size() (int, int) {
	return w.width, w.height
}

func (w *previewWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *previewWindow) Poll() bool {
	if w.window == nil {
		return false
	}
	glfw.PollEvents()
	return w.running && !w.window.ShouldClose()
}

func (w *previewWindow) Close() error {
	if w.window == nil {
		return fmt.Errorf("window: window is not initialized")
	}
	w.running = false
	w.window.SetShouldClose(true)
	w.window.Destroy()
	w.window = nil
	glfw.Terminate()
	return nil
}
