// Package testutil holds deterministic signal generators and assertions
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Step generates zeros up to pos and amplitude from there on.
func Step(length, pos int, amplitude float64) []float64 {
	out := make([]float64, length)
	for i := max(pos, 0); i < length; i++ {
		out[i] = amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Planar copies the given channels into a fresh [][]float64.
func Planar(channels ...[]float64) [][]float64 {
	out := make([][]float64, len(channels))
	for ch, src := range channels {
		out[ch] = append([]float64(nil), src...)
	}
	return out
}

// Float32 narrows a planar buffer to single precision.
func Float32(src [][]float64) [][]float32 {
	out := make([][]float32, len(src))
	for ch := range src {
		out[ch] = make([]float32, len(src[ch]))
		for i, v := range src[ch] {
			out[ch][i] = float32(v)
		}
	}
	return out
}
