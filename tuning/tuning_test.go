package tuning

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-slew/dsp/core"
)

func TestDefaultsMatchTwelveTET(t *testing.T) {
	m := New()
	for _, note := range []float64{0, 36, 60, 69, 81.5, 127} {
		if got, want := m.NoteToHz(note), core.NoteToHz(note); math.Abs(got-want) > 1e-9 {
			t.Fatalf("NoteToHz(%v) = %v, want %v", note, got, want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	m := New()
	m.SetXen(19)
	m.SetMasterTune(432)
	m.SetBasePitch(60)
	for _, note := range []float64{10, 60, 64.25, 100} {
		if got := m.HzToNote(m.NoteToHz(note)); math.Abs(got-note) > 1e-9 {
			t.Fatalf("HzToNote(NoteToHz(%v)) = %v", note, got)
		}
	}
	if got := m.NoteToHz(79); math.Abs(got-864) > 1e-9 {
		t.Fatalf("one 19-EDO octave up = %v, want 864", got)
	}
}

func TestSettersClamp(t *testing.T) {
	m := New()
	m.SetXen(0)
	m.SetMasterTune(10000)
	m.SetBasePitch(-5)
	if m.Xen() != MinXen || m.MasterTune() != MaxMasterTune || m.BasePitch() != MinBasePitch {
		t.Fatalf("got xen=%v tune=%v base=%v", m.Xen(), m.MasterTune(), m.BasePitch())
	}
}

func TestHzToNoteNonPositive(t *testing.T) {
	if got := New().HzToNote(0); !math.IsInf(got, -1) {
		t.Fatalf("HzToNote(0) = %v, want -Inf", got)
	}
}
