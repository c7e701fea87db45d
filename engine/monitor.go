package engine

import (
	"context"
	"log/slog"
	"time"
)

// DefaultMonitorInterval is the reconcile period of a Monitor.
const DefaultMonitorInterval = 250 * time.Millisecond

// Monitor calls Engine.Reconcile at a fixed rate on the control side.
type Monitor struct {
	engine   *Engine
	interval time.Duration
}

// NewMonitor returns a monitor for e. A non-positive interval selects
// DefaultMonitorInterval.
func NewMonitor(e *Engine, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultMonitorInterval
	}
	return &Monitor{engine: e, interval: interval}
}

// Interval returns the reconcile period.
func (m *Monitor) Interval() time.Duration { return m.interval }

// Tick reconciles once. Errors are logged, not returned, so a failed
// re-prepare is retried on the next tick.
func (m *Monitor) Tick() bool {
	changed, err := m.engine.Reconcile()
	if err != nil {
		m.engine.logger.Error("engine reconcile failed", slog.Any("err", err))
		return false
	}
	if changed {
		m.engine.logger.Debug("engine reconciled",
			slog.Int("latency", m.engine.LatencySamples()))
	}
	return changed
}

// Run ticks until ctx is done and then returns nil.
func (m *Monitor) Run(ctx context.Context) error {
	t := time.NewTicker(m.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			m.Tick()
		}
	}
}
