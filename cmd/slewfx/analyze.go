package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-slew/dsp/filter/fir"
	"github.com/cwbudde/algo-slew/dsp/oversample"
	"github.com/cwbudde/algo-slew/measure/response"
)

const analyzeBlock = 32

type analyzeFlags struct {
	rate float64
	taps int
	beta float64
	fft  int
}

// report summarizes the oversampler at one sample rate.
type report struct {
	latency      int
	roundTrip    response.Response
	imageFilter  response.Response
	sampleRate   float64
	sampleRateUp float64
}

func analyze(f analyzeFlags) (report, error) {
	o, err := oversample.New(oversample.WithTaps(f.taps), oversample.WithKaiserBeta(f.beta), oversample.WithChannels(1))
	if err != nil {
		return report{}, err
	}
	if err := o.Prepare(f.rate, analyzeBlock, true); err != nil {
		return report{}, err
	}

	rt, err := response.Measure(func(x []float64) []float64 {
		for start := 0; start < len(x); start += analyzeBlock {
			end := min(start+analyzeBlock, len(x))
			view := [][]float64{x[start:end]}
			o.Upsample(view, 1, end-start)
			o.Downsample(view, end-start)
		}
		return x
	}, f.fft, f.rate)
	if err != nil {
		return report{}, err
	}

	img := fir.New(o.Coefficients())
	imgResp, err := response.Measure(func(x []float64) []float64 {
		img.ProcessBlock(x)
		return x
	}, f.fft, o.SampleRateUp())
	if err != nil {
		return report{}, err
	}

	return report{
		latency:      o.Latency(),
		roundTrip:    rt,
		imageFilter:  imgResp,
		sampleRate:   f.rate,
		sampleRateUp: o.SampleRateUp(),
	}, nil
}

func (r report) write(w io.Writer) {
	nyq := r.sampleRate / 2
	fmt.Fprintf(w, "rate %g Hz, processing rate %g Hz, latency %d samples\n\n",
		r.sampleRate, r.sampleRateUp, r.latency)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FREQ\tROUND TRIP (dB)")
	for _, hz := range []float64{100, 1000, 5000, 10000, 15000, 20000} {
		if hz < nyq {
			fmt.Fprintf(tw, "%g\t%.3f\n", hz, r.roundTrip.At(hz))
		}
	}
	tw.Flush()

	pass := 0.4 * r.sampleRate
	fmt.Fprintf(w, "\npassband 0-%g Hz: %.3f to %.3f dB\n", pass, r.roundTrip.Min(0, pass), r.roundTrip.Max(0, pass))
	stop := r.sampleRate - pass
	fmt.Fprintf(w, "image rejection above %g Hz: %.1f dB\n", stop, r.imageFilter.Max(stop, r.sampleRateUp/2))
}

func newAnalyzeCmd() *cobra.Command {
	var f analyzeFlags
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print the oversampler latency and magnitude response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := analyze(f)
			if err != nil {
				return err
			}
			r.write(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().Float64Var(&f.rate, "rate", 48000, "Host sample rate in Hz")
	cmd.Flags().IntVar(&f.taps, "taps", 33, "Oversampling filter length (odd)")
	cmd.Flags().Float64Var(&f.beta, "beta", 7.5, "Kaiser window beta")
	cmd.Flags().IntVar(&f.fft, "fft", 4096, "FFT length")
	return cmd
}
