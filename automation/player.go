package automation

import (
	"sort"
	"sync"

	"github.com/cwbudde/algo-slew/param"
)

// Player applies points to a Set as the transport advances. It is meant
// for the control thread; the engine picks the values up on its next
// sub-block.
type Player struct {
	mu       sync.Mutex
	set      *param.Set
	points   []Point
	next     int
	pos      int64
	gestures bool
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithGestures wraps every change in a begin/end gesture pair.
func WithGestures(enabled bool) PlayerOption {
	return func(p *Player) {
		p.gestures = enabled
	}
}

// NewPlayer returns a player positioned at sample 0. points are copied and
// sorted by sample position.
func NewPlayer(set *param.Set, points []Point, opts ...PlayerOption) *Player {
	p := &Player{
		set:    set,
		points: append([]Point(nil), points...),
	}
	sort.SliceStable(p.points, func(i, j int) bool { return p.points[i].Sample < p.points[j].Sample })
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Len returns the number of points.
func (p *Player) Len() int { return len(p.points) }

// Position returns the sample position the player has advanced to.
func (p *Player) Position() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}

// Done reports whether every point has been applied.
func (p *Player) Done() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.next >= len(p.points)
}

// Advance applies every point before sample and returns how many were
// applied. Points for parameters missing from the set are skipped.
func (p *Player) Advance(sample int64) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	applied := 0
	for p.next < len(p.points) && p.points[p.next].Sample < sample {
		p.apply(p.points[p.next])
		p.next++
		applied++
	}
	p.pos = max(p.pos, sample)
	return applied
}

func (p *Player) apply(pt Point) {
	if pt.ID == Macro {
		p.set.SetMacro(pt.Norm)
		return
	}
	prm := p.set.Param(pt.ID)
	if prm == nil {
		return
	}
	if p.gestures {
		prm.SetValueWithGesture(pt.Norm)
		return
	}
	prm.SetValueNotifyingHost(pt.Norm)
}

// Rewind moves the player back to sample 0 without touching the set.
func (p *Player) Rewind() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.next = 0
	p.pos = 0
}
