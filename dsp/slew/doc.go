// Package slew implements a per-channel slew-rate limiter.
//
// The limiter bounds how far the output may move per sample. A rate of 2
// or more lets any full-scale step through unchanged. The highpass variant
// returns the part of the input the limiter removed.
package slew
