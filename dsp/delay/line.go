package delay

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned by New for a non-positive size.
var ErrInvalidSize = errors.New("delay: size must be > 0")

// Line is a circular integer delay line.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line holding size samples. The longest delay Process
// supports is size-1.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// MaxDelay returns the longest delay Process can produce.
func (d *Line) MaxDelay() int {
	return len(d.buffer) - 1
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read returns the sample written delay writes ago; Read(1) is the most
// recent one. delay is clamped to [1, Len()].
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	delay = min(max(delay, 1), size)
	readPos := d.writePos - delay
	if readPos < 0 {
		readPos += size
	}
	return d.buffer[readPos]
}

// Process writes x and returns the input from delay samples ago. A delay of
// zero returns x unchanged.
func (d *Line) Process(x float64, delay int) float64 {
	d.Write(x)
	return d.Read(delay + 1)
}

// ProcessBlock delays buf in place by delay samples.
func (d *Line) ProcessBlock(buf []float64, delay int) {
	for i, x := range buf {
		buf[i] = d.Process(x, delay)
	}
}

// Reset clears line state.
func (d *Line) Reset() {
	clear(d.buffer)
	d.writePos = 0
}
