package response

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Floor is the dB value reported for a zero magnitude.
const Floor = -300.0

// Errors returned by Measure.
var (
	ErrInvalidLength     = errors.New("response: length must be a power of two >= 2")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
	ErrNilProcessor      = errors.New("response: nil processor")
)

// Response is a magnitude response sampled at the FFT bin centres.
type Response struct {
	Hz    []float64
	MagDB []float64
}

// Measure runs an n-sample unit impulse through process and returns the
// magnitude response of its output. The output of process is truncated or
// zero-padded to n samples.
func Measure(process func([]float64) []float64, n int, sampleRate float64) (Response, error) {
	if process == nil {
		return Response{}, ErrNilProcessor
	}
	if n < 2 || n&(n-1) != 0 {
		return Response{}, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return Response{}, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	impulse := make([]float64, n)
	impulse[0] = 1
	return FromImpulse(process(impulse), n, sampleRate)
}

// FromImpulse transforms an impulse response of up to n samples.
func FromImpulse(ir []float64, n int, sampleRate float64) (Response, error) {
	if n < 2 || n&(n-1) != 0 {
		return Response{}, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return Response{}, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	in := make([]complex128, n)
	for i := range min(len(ir), n) {
		in[i] = complex(ir[i], 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return Response{}, fmt.Errorf("response: fft plan: %w", err)
	}
	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return Response{}, fmt.Errorf("response: fft: %w", err)
	}

	bins := n/2 + 1
	r := Response{
		Hz:    make([]float64, bins),
		MagDB: make([]float64, bins),
	}
	for k := range bins {
		r.Hz[k] = float64(k) * sampleRate / float64(n)
		mag := cmplx.Abs(out[k])
		if mag > 0 {
			r.MagDB[k] = math.Max(20*math.Log10(mag), Floor)
		} else {
			r.MagDB[k] = Floor
		}
	}
	return r, nil
}

// At returns the magnitude at hz, linearly interpolated between bins.
// Frequencies outside the measured band clamp to the edge bins.
func (r Response) At(hz float64) float64 {
	if len(r.Hz) == 0 {
		return Floor
	}
	i := sort.SearchFloat64s(r.Hz, hz)
	switch {
	case i == 0:
		return r.MagDB[0]
	case i >= len(r.Hz):
		return r.MagDB[len(r.MagDB)-1]
	}
	t := (hz - r.Hz[i-1]) / (r.Hz[i] - r.Hz[i-1])
	return r.MagDB[i-1] + t*(r.MagDB[i]-r.MagDB[i-1])
}

// Max returns the largest magnitude between lo and hi Hz, inclusive.
func (r Response) Max(lo, hi float64) float64 {
	peak := math.Inf(-1)
	for k, f := range r.Hz {
		if f >= lo && f <= hi {
			peak = math.Max(peak, r.MagDB[k])
		}
	}
	return peak
}

// Min returns the smallest magnitude between lo and hi Hz, inclusive.
func (r Response) Min(lo, hi float64) float64 {
	floor := math.Inf(1)
	for k, f := range r.Hz {
		if f >= lo && f <= hi {
			floor = math.Min(floor, r.MagDB[k])
		}
	}
	return floor
}
