package mix

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-slew/dsp/buffer"
	"github.com/cwbudde/algo-slew/dsp/core"
	"github.com/cwbudde/algo-slew/dsp/delay"
)

// MaxChannels is the number of channels a Mixer handles.
const MaxChannels = 2

var (
	// ErrInvalidBlockSize indicates a non-positive maximum block size.
	ErrInvalidBlockSize = errors.New("mix: invalid block size")
	// ErrInvalidLatency indicates a negative latency.
	ErrInvalidLatency = errors.New("mix: invalid latency")
)

// Mixer holds the latency-compensated dry copy of the current sub-block.
type Mixer struct {
	dry     *buffer.Buffer
	lines   [MaxChannels]*delay.Line
	latency int
	maxBlk  int
	gain    float64
}

// New returns an unprepared Mixer.
func New() *Mixer {
	return &Mixer{gain: 1}
}

// Prepare sizes the dry buffer for sub-blocks of up to maxBlockSize samples
// and sets the dry-path delay to latency samples.
func (m *Mixer) Prepare(maxBlockSize, latency int) error {
	if maxBlockSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, maxBlockSize)
	}
	if latency < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLatency, latency)
	}

	if m.dry == nil {
		m.dry = buffer.New(MaxChannels, maxBlockSize)
	} else {
		m.dry.SetSize(MaxChannels, maxBlockSize, false)
		m.dry.Zero()
	}
	m.maxBlk = maxBlockSize
	m.latency = latency
	for ch := range m.lines {
		m.lines[ch] = nil
		if latency > 0 {
			line, err := delay.New(latency + 1)
			if err != nil {
				return fmt.Errorf("mix: %w", err)
			}
			m.lines[ch] = line
		}
	}
	return nil
}

// Latency returns the dry-path delay in samples.
func (m *Mixer) Latency() int {
	return m.latency
}

// Gain returns the linear gain used by the last Join.
func (m *Mixer) Gain() float64 {
	return m.gain
}

// Split stores a delayed copy of the first numChannels channels as the dry
// signal. It must run before the stage alters samples.
func (m *Mixer) Split(samples [][]float64, numChannels, numSamples int) {
	if m.dry == nil {
		return
	}
	numChannels = min(numChannels, len(samples), MaxChannels)
	numSamples = min(numSamples, m.maxBlk)
	for ch := range numChannels {
		dry := m.dry.Channel(ch)[:numSamples]
		copy(dry, samples[ch][:numSamples])
		if line := m.lines[ch]; line != nil {
			line.ProcessBlock(dry, m.latency)
		}
	}
}

// Join replaces samples with the gained blend of wet (samples) and the dry
// copy taken by Split. mix is clamped to [0,1].
func (m *Mixer) Join(samples [][]float64, gainDb, mix float64, numChannels, numSamples int) {
	m.gain = core.DBToLinear(gainDb)
	mix = core.Clamp01(mix)
	numChannels = min(numChannels, len(samples), MaxChannels)
	if m.dry == nil {
		for ch := range numChannels {
			vecmath.ScaleBlockInPlace(samples[ch][:numSamples], m.gain)
		}
		return
	}

	numSamples = min(numSamples, m.maxBlk)
	wetGain := m.gain * mix
	dryGain := m.gain * (1 - mix)
	for ch := range numChannels {
		wet := samples[ch][:numSamples]
		vecmath.ScaleBlockInPlace(wet, wetGain)
		if dryGain == 0 {
			continue
		}
		dry := m.dry.Channel(ch)[:numSamples]
		vecmath.ScaleBlockInPlace(dry, dryGain)
		vecmath.AddBlockInPlace(wet, dry)
	}
}

// Reset clears the dry delay lines.
func (m *Mixer) Reset() {
	for _, line := range m.lines {
		if line != nil {
			line.Reset()
		}
	}
	if m.dry != nil {
		m.dry.Zero()
	}
}
