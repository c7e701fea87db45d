// Package delay provides a fixed-size integer delay line used to keep the
// dry signal time-aligned with a latency-adding wet path.
package delay
