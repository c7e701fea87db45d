package engine

import (
	"context"
	"testing"
	"time"

	"github.com/cwbudde/algo-slew/param"
)

func TestNewMonitorDefaultInterval(t *testing.T) {
	m := NewMonitor(mustEngine(t, newSet()), 0)
	if m.Interval() != DefaultMonitorInterval {
		t.Fatalf("Interval = %v, want %v", m.Interval(), DefaultMonitorInterval)
	}
}

func TestMonitorTick(t *testing.T) {
	set := newSet()
	e := mustEngine(t, set)
	mustPrepare(t, e, 44100, 128)
	m := NewMonitor(e, time.Hour)

	if m.Tick() {
		t.Fatal("Tick reconfigured without a change")
	}
	set.Param(param.HQ).SetValue(1)
	if !m.Tick() {
		t.Fatal("Tick did not pick up the HQ change")
	}
	if e.LatencySamples() != 16 {
		t.Fatalf("latency = %d, want 16", e.LatencySamples())
	}
}

func TestMonitorRunChangesLatency(t *testing.T) {
	set := newSet()
	e := mustEngine(t, set)
	mustPrepare(t, e, 48000, 64)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewMonitor(e, time.Millisecond).Run(ctx) }()

	set.Param(param.HQ).SetValue(1)
	deadline := time.Now().Add(5 * time.Second)
	for e.LatencySamples() != 16 {
		if time.Now().After(deadline) {
			t.Fatal("latency did not change within 5s")
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestReconcileWhileProcessing(t *testing.T) {
	set := newSet()
	e := mustEngine(t, set)
	mustPrepare(t, e, 48000, 256)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := [][]float64{make([]float64, 256), make([]float64, 256)}
		for ctx.Err() == nil {
			for ch := range buf {
				for i := range buf[ch] {
					buf[ch][i] = 0.25
				}
			}
			e.Process(buf, nil)
		}
	}()

	for i := range 20 {
		set.Param(param.HQ).SetValue(float64(i % 2))
		if _, err := e.Reconcile(); err != nil {
			t.Fatalf("Reconcile() error = %v", err)
		}
	}
	cancel()
	<-done
	if e.Suspended() {
		t.Fatal("engine left suspended")
	}
	if e.Mismatches() != 0 {
		t.Fatalf("Mismatches = %d, want 0", e.Mismatches())
	}
}
