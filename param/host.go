package param

import "sync"

// Control is the host-facing view of a parameter.
type Control interface {
	ID() ID
	Name() string
	Label() string
	Range() Range
	Value() float64
	SetValue(norm float64)
	DefaultValue() float64
	NumSteps() int
	Text(norm float64) string
	ValueForText(text string) float64
}

// Notifier receives gesture and value notifications for host automation.
type Notifier interface {
	BeginGesture(id ID)
	EndGesture(id ID)
	ValueChanged(id ID, norm float64)
}

// Registrar accepts non-owning parameter registrations.
type Registrar interface {
	Register(c Control)
}

// Registry is a Registrar that keeps controls in registration order.
type Registry struct {
	mu       sync.RWMutex
	controls []Control
	byID     map[ID]Control
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[ID]Control)}
}

// Register adds c. A second registration of the same ID replaces the
// lookup entry but keeps the original position.
func (r *Registry) Register(c Control) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[c.ID()]; !ok {
		r.controls = append(r.controls, c)
	} else {
		for i, old := range r.controls {
			if old.ID() == c.ID() {
				r.controls[i] = c
			}
		}
	}
	r.byID[c.ID()] = c
}

// Lookup returns the control registered for id.
func (r *Registry) Lookup(id ID) (Control, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	return c, ok
}

// Len returns the number of registered controls.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.controls)
}

// Controls returns the registered controls in order.
func (r *Registry) Controls() []Control {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Control(nil), r.controls...)
}
