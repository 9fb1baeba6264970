// tessera - a small real-time 3D renderer
// Draws a YAML-described scene with OpenGL in a window, in the terminal or
// to a PNG.
//
// Controls:
//
//	W/S         - Move forward/back
//	A/D         - Strafe left/right
//	Arrows      - Pitch and yaw
//	Esc         - Quit
package main

import (
	"context"
	"os"
	"runtime"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/tessera/pkg/logging"
)

var version = "dev"

// GL calls must come from the thread that owns the context, and cobra runs
// commands on the main goroutine.
func init() {
	runtime.LockOSThread()
}

type rootFlags struct {
	debug  bool
	config string
}

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "tessera",
		Short: "Render 3D scenes with OpenGL",
		Long: "tessera draws a scene of meshes with a perspective camera.\n" +
			"Scenes are YAML files; without one a spinning cube is shown.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			l, err := logging.New(flags.debug)
			if err != nil {
				return err
			}
			logging.SetLogger(l)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logging.Logger().Sync()
		},
	}
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "verbose development logging")
	root.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "scene file (YAML)")

	root.AddCommand(
		newViewCmd(flags),
		newTUICmd(flags),
		newSnapshotCmd(flags),
	)
	return root
}
