package automation

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/cwbudde/algo-slew/param"
)

// Macro addresses the macro input of a Set instead of a parameter.
const Macro = param.NumIDs

// DefaultTempo is used until the first tempo event, in beats per minute.
const DefaultTempo = 120.0

var (
	// ErrInvalidSampleRate indicates a non-positive or non-finite sample rate.
	ErrInvalidSampleRate = errors.New("automation: invalid sample rate")
	// ErrTimeFormat indicates a file with SMPTE timing.
	ErrTimeFormat = errors.New("automation: only metric time format is supported")
)

// Mapping assigns control change numbers to targets.
type Mapping map[uint8]param.ID

// DefaultMapping sends the mod wheel (CC 1) to the macro and CC 20 onwards
// to the parameters in ID order.
func DefaultMapping() Mapping {
	m := Mapping{1: Macro}
	for id := range param.NumIDs {
		m[uint8(20+int(id))] = id
	}
	return m
}

// Point is one automation value at an absolute sample position.
type Point struct {
	Sample int64
	ID     param.ID
	Norm   float64
}

type tempoChange struct {
	tick      int64
	usPerBeat float64
}

type ccEvent struct {
	tick  int64
	order int
	cc    uint8
	value uint8
}

// Load reads an SMF from r and returns the mapped controller events of all
// tracks and channels, sorted by sample position.
func Load(r io.Reader, mapping Mapping, sampleRate float64) ([]Point, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("automation: read smf: %w", err)
	}
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, ErrTimeFormat
	}
	resolution := float64(mt.Resolution())

	var tempos []tempoChange
	var events []ccEvent
	for _, track := range s.Tracks {
		var tick int64
		for _, ev := range track {
			tick += int64(ev.Delta)
			msg := ev.Message
			switch {
			case len(msg) >= 6 && msg[0] == 0xFF && msg[1] == 0x51 && msg[2] == 0x03:
				us := uint32(msg[3])<<16 | uint32(msg[4])<<8 | uint32(msg[5])
				if us > 0 {
					tempos = append(tempos, tempoChange{tick: tick, usPerBeat: float64(us)})
				}
			case len(msg) >= 3 && msg[0]&0xF0 == 0xB0:
				if _, ok := mapping[msg[1]]; ok {
					events = append(events, ccEvent{tick: tick, order: len(events), cc: msg[1], value: msg[2]})
				}
			}
		}
	}

	sort.SliceStable(tempos, func(i, j int) bool { return tempos[i].tick < tempos[j].tick })
	sort.Slice(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].order < events[j].order
	})

	tm := newTempoMap(tempos, resolution)
	points := make([]Point, 0, len(events))
	for _, ev := range events {
		points = append(points, Point{
			Sample: int64(math.Round(tm.seconds(ev.tick) * sampleRate)),
			ID:     mapping[ev.cc],
			Norm:   float64(min(ev.value, 127)) / 127,
		})
	}
	return points, nil
}

// tempoMap converts ticks to seconds across tempo changes.
type tempoMap struct {
	resolution float64
	ticks      []int64
	starts     []float64
	usPerBeat  []float64
}

func newTempoMap(changes []tempoChange, resolution float64) tempoMap {
	tm := tempoMap{resolution: resolution}
	tm.ticks = append(tm.ticks, 0)
	tm.starts = append(tm.starts, 0)
	tm.usPerBeat = append(tm.usPerBeat, 60e6/DefaultTempo)
	for _, c := range changes {
		last := len(tm.ticks) - 1
		if c.tick == tm.ticks[last] {
			tm.usPerBeat[last] = c.usPerBeat
			continue
		}
		tm.starts = append(tm.starts, tm.seconds(c.tick))
		tm.ticks = append(tm.ticks, c.tick)
		tm.usPerBeat = append(tm.usPerBeat, c.usPerBeat)
	}
	return tm
}

func (tm tempoMap) seconds(tick int64) float64 {
	i := sort.Search(len(tm.ticks), func(i int) bool { return tm.ticks[i] > tick }) - 1
	i = max(i, 0)
	beats := float64(tick-tm.ticks[i]) / tm.resolution
	return tm.starts[i] + beats*tm.usPerBeat[i]/1e6
}
