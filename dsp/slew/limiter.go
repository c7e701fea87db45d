package slew

import (
	"math"

	"github.com/cwbudde/algo-slew/dsp/core"
)

// MaxRate is the largest useful per-sample step. A step from -1 to 1 never
// gets limited at this rate.
const MaxRate = 2.0

// Type selects the limiter output.
type Type int

const (
	// Lowpass outputs the rate-limited signal.
	Lowpass Type = iota
	// Highpass outputs the input minus the rate-limited signal.
	Highpass
	// NumTypes is the number of filter types.
	NumTypes
)

var typeNames = [NumTypes]string{"LP", "HP"}

// String returns the short display name of t.
func (t Type) String() string {
	if t < 0 || t >= NumTypes {
		return "?"
	}
	return typeNames[t]
}

// TypeFromIndex resolves a rounded parameter value to a Type, clamping out
// of range indices.
func TypeFromIndex(i int) Type {
	return Type(min(max(i, 0), int(NumTypes)-1))
}

// FreqHzToSlewRate converts a frequency to a per-sample step limit at
// sampleRate, capped at MaxRate.
func FreqHzToSlewRate(hz, sampleRate float64) float64 {
	if sampleRate <= 0 || hz <= 0 || math.IsNaN(hz) {
		return 0
	}
	return math.Min(2*math.Pi*hz/sampleRate, MaxRate)
}

// Limiter keeps one sample of history per channel.
type Limiter struct {
	state []float64
}

// New returns a limiter for up to numChannels channels.
func New(numChannels int) *Limiter {
	return &Limiter{state: make([]float64, max(numChannels, 0))}
}

// NumChannels returns the channel capacity.
func (l *Limiter) NumChannels() int {
	return len(l.state)
}

// Reset clears the history of every channel.
func (l *Limiter) Reset() {
	clear(l.state)
}

// ProcessSample limits one sample of channel ch.
func (l *Limiter) ProcessSample(ch int, x, rate float64, typ Type) float64 {
	y := l.state[ch]
	y = core.FlushDenormals(y + core.Clamp(x-y, -rate, rate))
	l.state[ch] = y
	if typ == Highpass {
		return x - y
	}
	return y
}

// Process limits numSamples samples of the first numChannels channels in
// place. Channels beyond the limiter capacity are left untouched.
func (l *Limiter) Process(samples [][]float64, rate float64, numChannels, numSamples int, typ Type) {
	rate = core.Clamp(rate, 0, MaxRate)
	numChannels = min(numChannels, len(samples), len(l.state))
	for ch := range numChannels {
		smpls := samples[ch][:numSamples]
		y := l.state[ch]
		switch typ {
		case Highpass:
			for i, x := range smpls {
				y += core.Clamp(x-y, -rate, rate)
				smpls[i] = x - y
			}
		default:
			for i, x := range smpls {
				y += core.Clamp(x-y, -rate, rate)
				smpls[i] = y
			}
		}
		l.state[ch] = core.FlushDenormals(y)
	}
}
