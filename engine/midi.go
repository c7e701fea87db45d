package engine

import (
	"sort"

	"gitlab.com/gomidi/midi/v2"
)

// MidiEvent is a MIDI message at a sample offset into the host buffer.
type MidiEvent struct {
	Offset int
	Msg    midi.Message
}

// MidiBuffer holds the events of one host buffer, sorted by Offset.
type MidiBuffer []MidiEvent

// Add appends msg at offset, keeping the buffer sorted.
func (b *MidiBuffer) Add(offset int, msg midi.Message) {
	ev := MidiEvent{Offset: offset, Msg: msg}
	i := sort.Search(len(*b), func(i int) bool { return (*b)[i].Offset > offset })
	*b = append(*b, MidiEvent{})
	copy((*b)[i+1:], (*b)[i:])
	(*b)[i] = ev
}

// Window returns the events with from <= Offset < to. The result aliases b.
func (b MidiBuffer) Window(from, to int) MidiBuffer {
	lo := sort.Search(len(b), func(i int) bool { return b[i].Offset >= from })
	hi := sort.Search(len(b), func(i int) bool { return b[i].Offset >= to })
	return b[lo:hi]
}

// Clear empties the buffer, keeping its capacity.
func (b *MidiBuffer) Clear() {
	*b = (*b)[:0]
}
