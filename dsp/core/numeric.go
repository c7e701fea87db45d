package core

import "math"

const defaultEpsilon = 1e-12

const (
	// RootNote is the MIDI note number tuned to MasterTune.
	RootNote = 69.0
	// MasterTune is the reference frequency of RootNote in Hz.
	MasterTune = 440.0
	// NotesPerOctave is the 12-TET division of the octave.
	NotesPerOctave = 12.0
)

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// Clamp01 limits value to [0, 1]. NaN maps to 0.
func Clamp01(value float64) float64 {
	if !(value > 0) {
		return 0
	}

	if value > 1 {
		return 1
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// This can reduce denormal-related CPU slowdowns in hot DSP loops.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// HardClip limits x to [-limit, limit].
func HardClip(x, limit float64) float64 {
	if x > limit {
		return limit
	}

	if x < -limit {
		return -limit
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// NoteToHz converts a (possibly fractional) MIDI note to Hz in 12-TET
// relative to A4 = 440 Hz.
func NoteToHz(note float64) float64 {
	return math.Exp2((note-RootNote)/NotesPerOctave) * MasterTune
}

// HzToNote is the inverse of NoteToHz. Non-positive frequencies return -Inf.
func HzToNote(hz float64) float64 {
	if hz <= 0 {
		return math.Inf(-1)
	}

	return math.Log2(hz/MasterTune)*NotesPerOctave + RootNote
}
