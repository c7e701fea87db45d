// Package buffer provides a planar multichannel float64 buffer for
// allocation-free block processing, plus float32 <-> float64 bridging.
// DSP stages accept raw [][]float64 channel slices; Buffer owns the storage
// behind them and is resized only outside the real-time path.
package buffer
