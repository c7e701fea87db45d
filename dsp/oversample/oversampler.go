package oversample

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-slew/dsp/buffer"
	"github.com/cwbudde/algo-slew/dsp/filter/fir"
)

// Factor is the fixed oversampling ratio.
const Factor = 2

const (
	defaultTaps     = 33
	defaultBeta     = 7.5
	defaultCutoff   = 0.225
	defaultChannels = 2
)

var (
	// ErrInvalidSampleRate indicates a non-positive or non-finite sample rate.
	ErrInvalidSampleRate = errors.New("oversample: invalid sample rate")
	// ErrInvalidBlockSize indicates a non-positive maximum block size.
	ErrInvalidBlockSize = errors.New("oversample: invalid block size")
	// ErrInvalidTaps indicates an even or too short filter length.
	ErrInvalidTaps = errors.New("oversample: taps must be odd and >= 3")
)

type config struct {
	taps     int
	beta     float64
	cutoff   float64
	channels int
}

// Option configures an Oversampler.
type Option func(*config)

// WithTaps sets the length of the interpolation and decimation filters.
// The latency added at the base rate is (taps-1)/2 samples.
func WithTaps(n int) Option {
	return func(cfg *config) {
		cfg.taps = n
	}
}

// WithKaiserBeta sets the Kaiser window shape of both filters.
func WithKaiserBeta(beta float64) Option {
	return func(cfg *config) {
		if beta >= 0 {
			cfg.beta = beta
		}
	}
}

// WithChannels sets the maximum number of channels processed.
func WithChannels(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.channels = n
		}
	}
}

// Block is an oversampled view handed to the processing stage.
type Block struct {
	Channels   [][]float64
	NumSamples int
}

// Oversampler is a 2x FIR up/down converter. Prepare runs on the control
// thread; Upsample and Downsample run on the render thread and never
// allocate.
type Oversampler struct {
	cfg    config
	coeffs []float64

	enabled    bool
	sampleRate float64
	maxBlock   int

	up   []*fir.Filter
	down []*fir.Filter
	buf  *buffer.Buffer
	view [][]float64

	pending    bool
	pendingN   int
	pendingCh  int
	mismatches atomic.Uint64
}

// New designs the oversampling filters. The returned oversampler is disabled
// until Prepare enables it.
func New(opts ...Option) (*Oversampler, error) {
	cfg := config{
		taps:     defaultTaps,
		beta:     defaultBeta,
		cutoff:   defaultCutoff,
		channels: defaultChannels,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.taps < 3 || cfg.taps%2 == 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTaps, cfg.taps)
	}

	coeffs, err := fir.DesignLowpass(cfg.taps, cfg.cutoff, cfg.beta, 1)
	if err != nil {
		return nil, fmt.Errorf("oversample: design: %w", err)
	}

	o := &Oversampler{
		cfg:    cfg,
		coeffs: coeffs,
		up:     make([]*fir.Filter, cfg.channels),
		down:   make([]*fir.Filter, cfg.channels),
		view:   make([][]float64, cfg.channels),
	}
	upCoeffs := make([]float64, len(coeffs))
	for i, c := range coeffs {
		upCoeffs[i] = c * Factor
	}
	for ch := range cfg.channels {
		o.up[ch] = fir.New(upCoeffs)
		o.down[ch] = fir.New(coeffs)
	}
	return o, nil
}

// Prepare sizes the internal buffers for blocks of up to maxBlockSize samples
// and sets the enabled state. Filter state is cleared.
func (o *Oversampler) Prepare(sampleRate float64, maxBlockSize int, enabled bool) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	if maxBlockSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, maxBlockSize)
	}

	o.sampleRate = sampleRate
	o.maxBlock = maxBlockSize
	o.enabled = enabled
	if enabled {
		if o.buf == nil {
			o.buf = buffer.New(o.cfg.channels, maxBlockSize*Factor)
		} else {
			o.buf.SetSize(o.cfg.channels, maxBlockSize*Factor, false)
		}
	}
	o.Reset()
	return nil
}

// Reset clears filter history and any pending Upsample.
func (o *Oversampler) Reset() {
	for ch := range o.up {
		o.up[ch].Reset()
		o.down[ch].Reset()
	}
	o.pending = false
	if o.buf != nil {
		o.buf.Zero()
	}
}

// Enabled reports whether the last Prepare enabled oversampling.
func (o *Oversampler) Enabled() bool {
	return o.enabled
}

// SampleRateUp returns the rate the processing stage runs at.
func (o *Oversampler) SampleRateUp() float64 {
	if o.enabled {
		return o.sampleRate * Factor
	}
	return o.sampleRate
}

// BlockSizeUp returns the largest block the processing stage receives.
func (o *Oversampler) BlockSizeUp() int {
	if o.enabled {
		return o.maxBlock * Factor
	}
	return o.maxBlock
}

// Latency returns the added delay in base-rate samples.
func (o *Oversampler) Latency() int {
	if !o.enabled {
		return 0
	}
	return (len(o.coeffs) - 1) / 2
}

// Taps returns the filter length.
func (o *Oversampler) Taps() int {
	return len(o.coeffs)
}

// Coefficients returns a copy of the unity-gain prototype lowpass.
func (o *Oversampler) Coefficients() []float64 {
	c := make([]float64, len(o.coeffs))
	copy(c, o.coeffs)
	return c
}

// Mismatches returns how many Upsample/Downsample pairing violations were
// ignored since construction.
func (o *Oversampler) Mismatches() uint64 {
	return o.mismatches.Load()
}

// Upsample converts numSamples samples of the first numChannels channels to
// the processing rate. When disabled the input views are returned directly.
func (o *Oversampler) Upsample(samples [][]float64, numChannels, numSamples int) Block {
	if o.pending {
		o.mismatches.Add(1)
	}
	numChannels = min(numChannels, len(samples), o.cfg.channels)
	numSamples = max(min(numSamples, o.maxBlock), 0)
	o.pending = true
	o.pendingN = numSamples
	o.pendingCh = numChannels

	if !o.enabled {
		for ch := range numChannels {
			o.view[ch] = samples[ch][:numSamples]
		}
		return Block{Channels: o.view[:numChannels], NumSamples: numSamples}
	}

	n := numSamples * Factor
	for ch := range numChannels {
		src := samples[ch][:numSamples]
		dst := o.buf.Channel(ch)[:n]
		f := o.up[ch]
		for i, x := range src {
			dst[2*i] = f.ProcessSample(x)
			dst[2*i+1] = f.ProcessSample(0)
		}
		o.view[ch] = dst
	}
	return Block{Channels: o.view[:numChannels], NumSamples: n}
}

// Downsample writes the processed block back into samples at the base rate.
// numSamples must equal the count given to the preceding Upsample; an
// unpaired or mismatched call leaves samples untouched.
func (o *Oversampler) Downsample(samples [][]float64, numSamples int) {
	if !o.pending || numSamples != o.pendingN {
		o.mismatches.Add(1)
		o.pending = false
		return
	}
	o.pending = false
	if !o.enabled {
		return
	}

	for ch := range min(o.pendingCh, len(samples)) {
		src := o.buf.Channel(ch)
		dst := samples[ch][:numSamples]
		f := o.down[ch]
		for i := range dst {
			dst[i] = f.ProcessSample(src[2*i])
			f.ProcessSample(src[2*i+1])
		}
	}
}
