package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/taigrr/tessera/pkg/config"
	"github.com/taigrr/tessera/pkg/control"
	"github.com/taigrr/tessera/pkg/gl/glcore"
	"github.com/taigrr/tessera/pkg/gpu"
	"github.com/taigrr/tessera/pkg/logging"
	"github.com/taigrr/tessera/pkg/models"
	"github.com/taigrr/tessera/pkg/platform"
	"github.com/taigrr/tessera/pkg/render"
)

// spinner animates one object.
type spinner struct {
	spin *control.Spinner
	obj  control.Rotator
}

// app is a window, its GL context and everything drawn in it.
type app struct {
	cfg      *config.Config
	win      *platform.Window
	program  *gpu.Program
	renderer *render.Renderer
	world    *config.World
	spinners []spinner
	log      *zap.Logger
}

// loadConfig returns the file at path, or the built-in scene.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// newApp opens a window sized width x height (the config's size when zero)
// and prepares the scene. Hidden apps draw into an offscreen target of
// that size.
func newApp(cfg *config.Config, hidden bool, width, height int) (a *app, err error) {
	log := logging.Named("app")
	if width <= 0 || height <= 0 {
		width, height = cfg.Window.Width, cfg.Window.Height
	}

	win, err := platform.Open(platform.Options{
		Title:  cfg.Window.Title,
		Width:  width,
		Height: height,
		Hidden: hidden,
		VSync:  cfg.Window.VSync && !hidden,
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			win.Close()
		}
	}()

	ctx, err := glcore.New()
	if err != nil {
		return nil, fmt.Errorf("load OpenGL: %w", err)
	}
	log.Info("OpenGL ready",
		zap.String("version", ctx.Version()),
		zap.String("renderer", ctx.Renderer()),
	)

	vs, fs, err := cfg.ShaderSources()
	if err != nil {
		return nil, err
	}
	program, err := gpu.Compile(ctx, vs, fs)
	if err != nil {
		return nil, err
	}

	world, err := cfg.Build(models.NewGLTFLoader())
	if err != nil {
		program.Delete()
		return nil, fmt.Errorf("build scene: %w", err)
	}

	renderer := render.New(ctx, program, cfg.RenderOptions())
	// A hidden window has no pixels of its own to read back.
	if hidden {
		if err := renderer.UseOffscreen(width, height); err != nil {
			program.Delete()
			return nil, err
		}
	}

	a = &app{
		cfg:      cfg,
		win:      win,
		program:  program,
		renderer: renderer,
		world:    world,
		log:      log,
	}
	for _, s := range world.Spins {
		a.spinners = append(a.spinners, spinner{
			spin: control.NewSpinner(s.Rate, cfg.Controls.FPS),
			obj:  s.Object,
		})
	}
	if hidden {
		a.resize(width, height)
	} else {
		a.resize(win.FramebufferSize())
	}
	return a, nil
}

// resize updates the viewport and camera aspect together.
func (a *app) resize(width, height int) {
	a.renderer.Resize(width, height)
	a.world.Camera.Resize(width, height)
	a.log.Debug("resized", zap.Int("width", width), zap.Int("height", height))
}

// frame advances animations and draws the scene.
func (a *app) frame() error {
	for _, s := range a.spinners {
		s.spin.Update(s.obj)
	}
	return a.renderer.Render(a.world.Scene, a.world.Camera)
}

func (a *app) close() {
	a.renderer.Release()
	a.program.Delete()
	a.win.Close()
}
