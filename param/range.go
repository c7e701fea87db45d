package param

import (
	"math"

	"github.com/cwbudde/algo-slew/dsp/core"
)

// DefaultNumSteps is reported for continuous ranges.
const DefaultNumSteps = 0x7fffffff

// Range maps between the normalized domain [0,1] and engineering values.
// Interval > 0 quantizes denormalized values to multiples of Interval from
// Start. Skew shapes the mapping as v = Start + (End-Start)*n^(1/Skew); zero
// acts like 1.
type Range struct {
	Start    float64
	End      float64
	Interval float64
	Skew     float64
}

// Linear returns a continuous range over [start, end].
func Linear(start, end float64) Range {
	return Range{Start: start, End: end, Skew: 1}
}

// Stepped returns an integer range over [start, end].
func Stepped(start, end float64) Range {
	return Range{Start: start, End: end, Interval: 1, Skew: 1}
}

// Toggle returns the boolean range {0, 1}.
func Toggle() Range {
	return Stepped(0, 1)
}

// RangeWithCentre returns a continuous range whose skew maps centre to 0.5.
// A centre outside (start, end) yields a linear range.
func RangeWithCentre(start, end, centre float64) Range {
	r := Linear(start, end)
	p := (centre - start) / (end - start)
	if p > 0 && p < 1 {
		r.Skew = math.Log(0.5) / math.Log(p)
	}
	return r
}

func (r Range) skew() float64 {
	if r.Skew <= 0 || math.IsNaN(r.Skew) {
		return 1
	}
	return r.Skew
}

// Clamp limits v to [Start, End].
func (r Range) Clamp(v float64) float64 {
	lo, hi := r.Start, r.End
	if lo > hi {
		lo, hi = hi, lo
	}
	return core.Clamp(v, lo, hi)
}

// Snap clamps v and rounds it to the nearest interval step.
func (r Range) Snap(v float64) float64 {
	v = r.Clamp(v)
	if r.Interval > 0 {
		v = r.Clamp(r.Start + math.Round((v-r.Start)/r.Interval)*r.Interval)
	}
	return v
}

// Normalize maps an engineering value into [0,1].
func (r Range) Normalize(v float64) float64 {
	span := r.End - r.Start
	if span == 0 {
		return 0
	}
	p := core.Clamp01((r.Clamp(v) - r.Start) / span)
	if s := r.skew(); s != 1 && p > 0 {
		p = math.Pow(p, s)
	}
	return p
}

// Denormalize maps n in [0,1] to an engineering value, snapped to the
// interval.
func (r Range) Denormalize(n float64) float64 {
	n = core.Clamp01(n)
	if s := r.skew(); s != 1 && n > 0 {
		n = math.Exp(math.Log(n) / s)
	}
	return r.Snap(r.Start + (r.End-r.Start)*n)
}

// NumSteps returns 1+(End-Start)/Interval for stepped ranges and
// DefaultNumSteps otherwise.
func (r Range) NumSteps() int {
	if r.Interval > 0 {
		return 1 + int(math.Abs(r.End-r.Start)/r.Interval)
	}
	return DefaultNumSteps
}

// Type classifies how a parameter over this range behaves.
type Type int

const (
	// Float is a continuous parameter.
	Float Type = iota
	// Int is a stepped parameter.
	Int
	// Bool is an on/off parameter.
	Bool
)

func (t Type) String() string {
	switch t {
	case Bool:
		return "bool"
	case Int:
		return "int"
	default:
		return "float"
	}
}

// Type returns Bool for a unit step over [0,1], Int for any other stepped
// range and Float for continuous ranges.
func (r Range) Type() Type {
	switch {
	case r.Interval == 1 && r.Start == 0 && r.End == 1:
		return Bool
	case r.Interval > 0:
		return Int
	default:
		return Float
	}
}
