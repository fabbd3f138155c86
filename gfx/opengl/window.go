package opengl

import (
	"fmt"
	"log"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Window is a GLFW window with a current OpenGL 4.1 core context.
type Window struct {
	window  *glfw.Window
	context *Context
	resized bool
}

// NewWindow creates a window and makes its GL context current.
// Only one Window may be open at a time.
func NewWindow(width, height int, title string, visible bool) (*Window, error) {
	err := glfw.Init()
	if err != nil {
		return nil, fmt.Errorf("glfw.Init: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if !visible {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}
	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("CreateWindow(%v,%v): %w", width, height, err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("gl.Init: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	log.Println("OpenGL version", version)

	w := &Window{window: window}
	w.context = NewContext(window.GetFramebufferSize)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		w.resized = true
	})
	return w, nil
}

// Context returns the gfx.Context bound to the window.
func (w *Window) Context() *Context {
	return w.context
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

// Resized reports whether the framebuffer changed size since the last call.
// Cameras whose projection depends on the viewport need UpdateProjection
// after a resize.
func (w *Window) Resized() bool {
	r := w.resized
	w.resized = false
	return r
}

// SwapBuffers presents the frame and processes pending window events.
func (w *Window) SwapBuffers() {
	w.window.SwapBuffers()
	glfw.PollEvents()
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	if w.window != nil {
		w.context.Release()
		w.window.Destroy()
		glfw.Terminate()
		w.window = nil
	}
}
