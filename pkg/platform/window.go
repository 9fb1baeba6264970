// Package platform opens a native window with an OpenGL 4.1 core context
// and delivers its resize and keyboard state.
package platform

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/taigrr/tessera/pkg/control"
	"github.com/taigrr/tessera/pkg/logging"
)

// Size is a framebuffer size in pixels.
type Size struct {
	Width, Height int
}

// Options configure Open.
type Options struct {
	Title         string
	Width, Height int
	// Hidden windows only provide a context, for offscreen rendering.
	Hidden bool
	VSync  bool
}

// keys maps Keyboard names to GLFW keys.
var keys = map[string]glfw.Key{
	"w":     glfw.KeyW,
	"a":     glfw.KeyA,
	"s":     glfw.KeyS,
	"d":     glfw.KeyD,
	"q":     glfw.KeyQ,
	"e":     glfw.KeyE,
	"space": glfw.KeySpace,
	"up":    glfw.KeyUp,
	"down":  glfw.KeyDown,
	"left":  glfw.KeyLeft,
	"right": glfw.KeyRight,
}

// Window owns a GLFW window and its current context. All methods must be
// called from the goroutine that called Open, locked to its OS thread.
type Window struct {
	win     *glfw.Window
	resized chan Size
	log     *zap.Logger
}

// Open initializes GLFW, creates the window and makes its context current.
func Open(opts Options) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if opts.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{
		win:     win,
		resized: make(chan Size, 1),
		log:     logging.Named("platform"),
	}
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		notify(w.resized, Size{width, height})
	})

	fw, fh := w.FramebufferSize()
	w.log.Info("window opened",
		zap.String("title", opts.Title),
		zap.Int("width", fw),
		zap.Int("height", fh),
		zap.Bool("hidden", opts.Hidden),
	)
	return w, nil
}

// notify replaces any pending size with s.
func notify(ch chan Size, s Size) {
	select {
	case <-ch:
	default:
	}
	ch <- s
}

// Resized delivers the latest framebuffer size after a resize. Only the
// newest size is kept between reads.
func (w *Window) Resized() <-chan Size { return w.resized }

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (width, height int) {
	return w.win.GetFramebufferSize()
}

// PollEvents processes pending window events.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// PollKeys copies the state of every key kb binds.
func (w *Window) PollKeys(kb *control.Keyboard) {
	for _, name := range kb.Names() {
		k, ok := keys[name]
		if !ok {
			continue
		}
		a := w.win.GetKey(k)
		kb.Key(name, a == glfw.Press || a == glfw.Repeat)
	}
}

// ShouldClose reports whether the user closed the window or pressed Escape.
func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose() || w.win.GetKey(glfw.KeyEscape) == glfw.Press
}

// Swap presents the back buffer.
func (w *Window) Swap() {
	w.win.SwapBuffers()
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
	w.log.Debug("window closed")
}
