package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-slew/automation"
	"github.com/cwbudde/algo-slew/engine"
	"github.com/cwbudde/algo-slew/param"
)

// signalFlags select the input of render and play.
type signalFlags struct {
	rate    float64
	block   int
	in      string
	toneHz  float64
	wave    string
	amp     float64
	seconds float64
}

func (f *signalFlags) register(cmd *cobra.Command, withInput bool) {
	fl := cmd.Flags()
	fl.Float64Var(&f.rate, "rate", 48000, "Sample rate in Hz")
	fl.IntVar(&f.block, "block", 512, "Host block size in frames")
	if withInput {
		fl.StringVar(&f.in, "in", "", "Raw input file, - for stdin; empty generates a tone")
	}
	fl.Float64Var(&f.toneHz, "tone", 220, "Test tone frequency in Hz")
	fl.StringVar(&f.wave, "wave", "sine", "Test tone waveform (sine, square)")
	fl.Float64Var(&f.amp, "amp", 0.5, "Test tone amplitude")
	fl.Float64Var(&f.seconds, "seconds", 2, "Test tone length in seconds")
}

func (f *signalFlags) tone() (*tone, error) {
	if f.wave != "sine" && f.wave != "square" {
		return nil, fmt.Errorf("unknown waveform %q", f.wave)
	}
	frames := int64(f.seconds * f.rate)
	if f.seconds <= 0 {
		frames = -1
	}
	return newTone(f.toneHz, f.rate, f.amp, f.wave == "square", frames), nil
}

// newEngine builds a parameter set from the flags and a prepared engine.
func newEngine(pf *paramFlags, sf *signalFlags) (*engine.Engine, error) {
	set := param.NewSet()
	if err := pf.apply(set); err != nil {
		return nil, err
	}
	e, err := engine.New(set, engine.WithLogger(slog.Default()))
	if err != nil {
		return nil, err
	}
	if err := e.Prepare(sf.rate, sf.block); err != nil {
		return nil, err
	}
	return e, nil
}

func loadAutomation(path string, set *param.Set, sampleRate float64) (*automation.Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	points, err := automation.Load(f, automation.DefaultMapping(), sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Info("automation loaded", slog.String("file", path), slog.Int("points", len(points)))
	return automation.NewPlayer(set, points), nil
}

func newRenderCmd() *cobra.Command {
	var (
		pf       paramFlags
		sf       signalFlags
		out      string
		laneFile string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Process raw audio or a test tone offline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := newEngine(&pf, &sf)
			if err != nil {
				return err
			}

			var src source
			switch sf.in {
			case "":
				t, err := sf.tone()
				if err != nil {
					return err
				}
				src = t
			case "-":
				src = newRawReader(cmd.InOrStdin())
			default:
				f, err := os.Open(sf.in)
				if err != nil {
					return err
				}
				defer f.Close()
				src = newRawReader(f)
			}

			r := newRenderer(e, src, sf.block)
			r.reconcile = true
			if laneFile != "" {
				if r.lanes, err = loadAutomation(laneFile, e.Set(), sf.rate); err != nil {
					return err
				}
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			frames, err := r.writeTo(w)
			if err != nil {
				return err
			}
			slog.Info("render done",
				slog.Int64("frames", frames),
				slog.Int("latency", e.LatencySamples()),
				slog.Float64("peak", e.PeakLevel()))
			return nil
		},
	}
	pf.register(cmd)
	sf.register(cmd, true)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Raw output file; empty or - for stdout")
	cmd.Flags().StringVar(&laneFile, "automation", "", "Standard MIDI File with CC automation lanes")
	return cmd
}
