package engine

import "github.com/cwbudde/algo-slew/param"

// Host is the plugin shell the engine reports to.
type Host interface {
	param.Notifier
	LatencyChanged(samples int)
}

// NopHost ignores every notification.
type NopHost struct{}

func (NopHost) BeginGesture(param.ID)          {}
func (NopHost) EndGesture(param.ID)            {}
func (NopHost) ValueChanged(param.ID, float64) {}
func (NopHost) LatencyChanged(int)             {}
