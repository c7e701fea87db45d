// Package core holds the scalar helpers shared by the DSP packages: clamping,
// denormal flushing, decibel and pitch conversions.
package core
