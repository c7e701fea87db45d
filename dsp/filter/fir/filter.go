package fir

import (
	"math"
	"math/cmplx"
)

// Filter implements a direct-form FIR filter. The delay line is stored twice
// back to back so the convolution reads one contiguous window per sample.
type Filter struct {
	coeffs []float64
	delay  []float64
	pos    int
}

// New creates a FIR filter from the given coefficient slice.
// The coefficients are copied. The filter order is len(coeffs)-1.
// An empty coefficient slice yields a filter that outputs silence.
func New(coeffs []float64) *Filter {
	c := make([]float64, len(coeffs))
	copy(c, coeffs)
	return &Filter{
		coeffs: c,
		delay:  make([]float64, 2*len(coeffs)),
	}
}

// ProcessSample filters one input sample.
//
//	y[n] = sum_{k=0}^{N-1} h[k] * x[n-k]
func (f *Filter) ProcessSample(x float64) float64 {
	n := len(f.coeffs)
	if n == 0 {
		return 0
	}

	f.pos--
	if f.pos < 0 {
		f.pos = n - 1
	}
	f.delay[f.pos] = x
	f.delay[f.pos+n] = x

	window := f.delay[f.pos : f.pos+n]
	var y float64
	for k, c := range f.coeffs {
		y += c * window[k]
	}
	return y
}

// ProcessBlock filters a block of samples in-place.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// ProcessBlockTo filters src into dst. dst must be at least as long as src.
func (f *Filter) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1]
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Reset clears the delay line to zero.
func (f *Filter) Reset() {
	clear(f.delay)
	f.pos = 0
}

// Len returns the number of taps.
func (f *Filter) Len() int {
	return len(f.coeffs)
}

// Order returns the filter order (len(coeffs) - 1).
func (f *Filter) Order() int {
	return len(f.coeffs) - 1
}

// GroupDelay returns the delay in samples of a linear-phase (symmetric)
// filter, (N-1)/2.
func (f *Filter) GroupDelay() float64 {
	if len(f.coeffs) == 0 {
		return 0
	}
	return float64(len(f.coeffs)-1) / 2
}

// Coefficients returns a copy of the filter coefficients.
func (f *Filter) Coefficients() []float64 {
	c := make([]float64, len(f.coeffs))
	copy(c, f.coeffs)
	return c
}

// Response computes the complex frequency response H(e^{-jw}) at the given
// frequency (Hz) and sample rate (Hz).
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	var h complex128
	for k, c := range f.coeffs {
		h += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return h
}

// MagnitudeDB returns the magnitude response in dB at the given frequency.
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz, sampleRate)))
}
