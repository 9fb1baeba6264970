package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/tessera/pkg/control"
)

func newViewCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Open a window and render the scene",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags.config)
			if err != nil {
				return err
			}
			a, err := newApp(cfg, false, 0, 0)
			if err != nil {
				return err
			}
			defer a.close()
			return a.view(cmd)
		},
	}
}

// view runs the window loop until the window closes or the command is
// cancelled.
func (a *app) view(cmd *cobra.Command) error {
	ctx := cmd.Context()
	kb := control.NewKeyboard(nil)
	ctl := control.NewController(a.cfg.ControlOptions())

	frames := 0
	for !a.win.ShouldClose() {
		if err := ctx.Err(); err != nil {
			break
		}
		a.win.PollEvents()
		select {
		case s := <-a.win.Resized():
			a.resize(s.Width, s.Height)
		default:
		}

		a.win.PollKeys(kb)
		ctl.Update(a.world.Camera, kb.Input())

		if err := a.frame(); err != nil {
			return err
		}
		a.win.Swap()
		frames++
	}
	a.log.Info("window closed", zap.Int("frames", frames))
	return nil
}
