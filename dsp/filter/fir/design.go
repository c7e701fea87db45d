package fir

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidTaps indicates a non-positive tap count.
	ErrInvalidTaps = errors.New("fir: tap count must be > 0")
	// ErrInvalidCutoff indicates a cutoff outside (0, 0.5).
	ErrInvalidCutoff = errors.New("fir: cutoff must be in (0, 0.5)")
)

// DesignLowpass returns a Kaiser-windowed sinc lowpass with numTaps taps.
// cutoff is normalized to the sample rate (0.5 = Nyquist). The taps are
// scaled so that the DC gain equals gain.
func DesignLowpass(numTaps int, cutoff, beta, gain float64) ([]float64, error) {
	if numTaps <= 0 {
		return nil, ErrInvalidTaps
	}
	if !(cutoff > 0 && cutoff < 0.5) {
		return nil, fmt.Errorf("%w: %.6f", ErrInvalidCutoff, cutoff)
	}
	if beta < 0 || math.IsNaN(beta) {
		beta = 0
	}

	taps := make([]float64, numTaps)
	center := 0.5 * float64(numTaps-1)
	var sum float64
	for n := range numTaps {
		t := float64(n) - center
		h := 2 * cutoff * sinc(2*cutoff*t) * kaiserWindow(n, numTaps, beta)
		taps[n] = h
		sum += h
	}

	if sum == 0 {
		return nil, errors.New("fir: designed zero-sum filter")
	}

	scale := gain / sum
	for i := range taps {
		taps[i] *= scale
	}

	return taps, nil
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}

	pix := math.Pi * x

	return math.Sin(pix) / pix
}

func kaiserWindow(i, n int, beta float64) float64 {
	if n <= 1 || beta == 0 {
		return 1
	}

	t := 2*float64(i)/float64(n-1) - 1
	a := math.Sqrt(math.Max(0, 1-t*t))

	return i0(beta*a) / i0(beta)
}

// i0 is the zeroth-order modified Bessel function of the first kind,
// evaluated by its power series.
func i0(x float64) float64 {
	sum := 1.0
	term := 1.0

	x2 := (x * x) / 4
	for k := 1; k < 64; k++ {
		term *= x2 / float64(k*k)

		sum += term
		if term < 1e-16*sum {
			break
		}
	}

	return sum
}
