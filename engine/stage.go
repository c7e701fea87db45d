package engine

import (
	"math"

	"github.com/cwbudde/algo-slew/dsp/core"
	"github.com/cwbudde/algo-slew/dsp/slew"
	"github.com/cwbudde/algo-slew/param"
)

// Stage is the processing step that runs at the (possibly oversampled) rate.
// Prepare is called from the control thread; Process and ProcessBypassed run
// on the render thread once per sub-block.
type Stage interface {
	Prepare(sampleRateUp float64, maxBlockSizeUp int) error
	Process(samples [][]float64, midi MidiBuffer, numChannels, numSamples int)
	ProcessBypassed(samples [][]float64, midi MidiBuffer, numChannels, numSamples int)
}

// SlewStage runs a slew.Limiter driven by the Slew and Filter Type
// parameters of a Set.
type SlewStage struct {
	set        *param.Set
	limiter    *slew.Limiter
	sampleRate float64

	rate float64
	typ  slew.Type
}

// NewSlewStage returns a stage for up to two channels.
func NewSlewStage(set *param.Set) *SlewStage {
	return &SlewStage{
		set:     set,
		limiter: slew.New(2),
	}
}

// Prepare sets the processing rate and clears the limiter history.
func (s *SlewStage) Prepare(sampleRateUp float64, _ int) error {
	s.sampleRate = sampleRateUp
	s.limiter.Reset()
	return nil
}

// Rate returns the step limit resolved for the last sub-block.
func (s *SlewStage) Rate() float64 { return s.rate }

// Type returns the filter type resolved for the last sub-block.
func (s *SlewStage) Type() slew.Type { return s.typ }

func (s *SlewStage) resolve() {
	note := s.set.Param(param.Slew).ValModDenorm()
	var hz float64
	if tm := s.set.Tuning(); tm != nil {
		hz = tm.NoteToHz(note)
	} else {
		hz = core.NoteToHz(note)
	}
	s.rate = slew.FreqHzToSlewRate(hz, s.sampleRate)
	s.typ = slew.TypeFromIndex(int(math.Round(s.set.Param(param.FilterType).ValModDenorm())))
}

// Process limits the sub-block in place.
func (s *SlewStage) Process(samples [][]float64, _ MidiBuffer, numChannels, numSamples int) {
	s.resolve()
	s.limiter.Process(samples, s.rate, numChannels, numSamples, s.typ)
}

// ProcessBypassed leaves the signal untouched.
func (s *SlewStage) ProcessBypassed([][]float64, MidiBuffer, int, int) {}
