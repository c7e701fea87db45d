package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-slew/automation"
	"github.com/cwbudde/algo-slew/engine"
)

// otoStream feeds the oto player. oto calls Read from its own goroutine,
// which makes that goroutine the render thread.
type otoStream struct {
	r    *renderer
	pos  atomic.Int64
	done atomic.Bool
}

func (s *otoStream) Read(p []byte) (int, error) {
	frame := 4 * numChannels
	frames := len(p) / frame
	written := 0
	for written < frames && !s.done.Load() {
		block, err := s.r.next(frames - written)
		if len(block) > 0 {
			n := len(block[0])
			interleave(p[written*frame:], block, n)
			written += n
			s.pos.Add(int64(n))
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				slog.Error("render failed", slog.Any("err", err))
			}
			s.done.Store(true)
		}
	}
	clear(p[written*frame : frames*frame])
	return frames * frame, nil
}

func newPlayCmd() *cobra.Command {
	var (
		pf       paramFlags
		sf       signalFlags
		laneFile string
		buffer   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a processed test tone through the default audio device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := newEngine(&pf, &sf)
			if err != nil {
				return err
			}
			t, err := sf.tone()
			if err != nil {
				return err
			}
			var lanes *automation.Player
			if laneFile != "" {
				if lanes, err = loadAutomation(laneFile, e.Set(), sf.rate); err != nil {
					return err
				}
			}

			otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
				SampleRate:   int(sf.rate),
				ChannelCount: numChannels,
				Format:       oto.FormatFloat32LE,
				BufferSize:   buffer,
			})
			if err != nil {
				return fmt.Errorf("audio device: %w", err)
			}
			<-ready

			stream := &otoStream{r: newRenderer(e, t, sf.block)}
			player := otoCtx.NewPlayer(stream)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return play(ctx, e, stream, player, lanes)
		},
	}
	pf.register(cmd)
	sf.register(cmd, false)
	cmd.Flags().StringVar(&laneFile, "automation", "", "Standard MIDI File with CC automation lanes")
	cmd.Flags().DurationVar(&buffer, "buffer", 20*time.Millisecond, "Audio device buffer length")
	return cmd
}

// play runs the player, the reconcile monitor and the automation feeder
// until the tone ends or ctx is cancelled.
func play(ctx context.Context, e *engine.Engine, stream *otoStream, player *oto.Player, lanes *automation.Player) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return engine.NewMonitor(e, engine.DefaultMonitorInterval).Run(ctx)
	})

	if lanes != nil {
		g.Go(func() error {
			t := time.NewTicker(5 * time.Millisecond)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-t.C:
					lanes.Advance(stream.pos.Load() + 1)
				}
			}
		})
	}

	g.Go(func() error {
		defer cancel()
		player.Play()
		t := time.NewTicker(50 * time.Millisecond)
		defer t.Stop()
	loop:
		for {
			select {
			case <-ctx.Done():
				break loop
			case <-t.C:
				if stream.done.Load() {
					break loop
				}
			}
		}
		slog.Info("playback stopped",
			slog.Int64("frames", stream.pos.Load()),
			slog.Float64("peak", e.PeakLevel()))
		return player.Close()
	})

	return g.Wait()
}
