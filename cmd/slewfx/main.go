// Command slewfx runs the slew limiter offline, in real time and as an
// analysis tool.
//
// Usage:
//
//	slewfx render [flags]
//	slewfx play [flags]
//	slewfx params
//	slewfx analyze [flags]
//
// Examples:
//
//	slewfx render --tone 110 --wave square --slew C3 --out out.f32
//	slewfx render --in in.f32 --out out.f32 --type HP --mix 50 --hq on
//	slewfx render --automation lane.mid --seconds 4 > out.f32
//	slewfx play --tone 55 --wave square --seconds 5 --slew A2
//	slewfx params --patch
//	slewfx analyze --rate 44100
//
// Raw audio is interleaved stereo float32 little endian.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "slewfx",
		Short:         "Slew limiter effect: offline render, playback and analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newPlayCmd())
	root.AddCommand(newParamsCmd())
	root.AddCommand(newAnalyzeCmd())
	return root
}
