// Package tuning holds the microtuning state shared by pitch conversions.
//
// A Manager maps notes to frequencies as
//
//	hz = masterTune * 2^((note-basePitch)/xen)
//
// where xen is the number of equal divisions of the octave. All fields are
// atomic so the render thread may convert while the control thread retunes.
package tuning

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-slew/dsp/core"
)

// Limits of the tuning fields. Setters clamp into these ranges.
const (
	MinXen        = 1.0
	MaxXen        = 128.0
	MinMasterTune = 380.0
	MaxMasterTune = 500.0
	MinBasePitch  = 0.0
	MaxBasePitch  = 127.0
)

type atomicFloat struct {
	bits atomic.Uint64
}

func (a *atomicFloat) load() float64   { return math.Float64frombits(a.bits.Load()) }
func (a *atomicFloat) store(v float64) { a.bits.Store(math.Float64bits(v)) }

// Manager is a lock-free tuning table.
type Manager struct {
	xen        atomicFloat
	masterTune atomicFloat
	basePitch  atomicFloat
}

// New returns a Manager set to 12-TET with A4 = 440 Hz.
func New() *Manager {
	m := &Manager{}
	m.xen.store(core.NotesPerOctave)
	m.masterTune.store(core.MasterTune)
	m.basePitch.store(core.RootNote)
	return m
}

// Xen returns the number of notes per octave.
func (m *Manager) Xen() float64 { return m.xen.load() }

// SetXen sets the number of notes per octave.
func (m *Manager) SetXen(v float64) {
	m.xen.store(core.Clamp(v, MinXen, MaxXen))
}

// MasterTune returns the reference frequency in Hz.
func (m *Manager) MasterTune() float64 { return m.masterTune.load() }

// SetMasterTune sets the reference frequency in Hz.
func (m *Manager) SetMasterTune(hz float64) {
	m.masterTune.store(core.Clamp(hz, MinMasterTune, MaxMasterTune))
}

// BasePitch returns the note that sounds at MasterTune.
func (m *Manager) BasePitch() float64 { return m.basePitch.load() }

// SetBasePitch sets the note that sounds at MasterTune.
func (m *Manager) SetBasePitch(note float64) {
	m.basePitch.store(core.Clamp(note, MinBasePitch, MaxBasePitch))
}

// NoteToHz converts a (possibly fractional) note to Hz.
func (m *Manager) NoteToHz(note float64) float64 {
	return math.Exp2((note-m.BasePitch())/m.Xen()) * m.MasterTune()
}

// HzToNote is the inverse of NoteToHz. Non-positive frequencies return -Inf.
func (m *Manager) HzToNote(hz float64) float64 {
	if hz <= 0 {
		return math.Inf(-1)
	}
	return math.Log2(hz/m.MasterTune())*m.Xen() + m.BasePitch()
}
