package main

import (
	"context"
	"fmt"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/tessera/pkg/config"
	"github.com/taigrr/tessera/pkg/control"
	"github.com/taigrr/tessera/pkg/render"
)

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Render the scene offscreen and draw it in the terminal",
		Long: "tui renders offscreen with a hidden OpenGL window and draws each frame\n" +
			"with half-block characters. Logs go to stderr; redirect it to keep\n" +
			"the picture clean.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags.config)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg)
		},
	}
}

func runTUI(ctx context.Context, cfg *config.Config) error {
	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	fbWidth, fbHeight := render.TerminalSize(cols, rows)
	a, err := newApp(cfg, true, fbWidth, fbHeight)
	if err != nil {
		return err
	}
	defer a.close()

	fb := render.NewFramebuffer(fbWidth, fbHeight)

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		_ = term.Shutdown(context.Background())
	}
	defer cleanup()

	kb := control.NewKeyboard(nil)
	keys := control.NewTerminalKeys(kb)
	ctl := control.NewController(a.cfg.ControlOptions())

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Controls.FPS))
	defer ticker.Stop()

	frames := 0
	for {
		select {
		case <-ctx.Done():
			a.log.Info("terminal closed", zap.Int("frames", frames))
			return nil

		case ev := <-term.Events():
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				cols, rows = ev.Width, ev.Height
				term.Erase()
				term.Resize(cols, rows)
				fbWidth, fbHeight = render.TerminalSize(cols, rows)
				a.resize(fbWidth, fbHeight)
			case uv.KeyPressEvent:
				if ev.MatchString("escape", "ctrl+c") {
					a.log.Info("terminal closed", zap.Int("frames", frames))
					return nil
				}
				if ev.MatchString("r") {
					ctl.Reset()
				}
			}
			keys.HandleEvent(ev)

		case <-ticker.C:
			a.win.PollEvents()
			ctl.Update(a.world.Camera, kb.Input())
			keys.EndFrame()

			if err := a.frame(); err != nil {
				return err
			}
			a.renderer.Capture(fb)
			fb.Draw(term, term.Bounds())
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
			frames++
		}
	}
}
