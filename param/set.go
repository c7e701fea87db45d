package param

import (
	"sync/atomic"

	"github.com/cwbudde/algo-slew/dsp/core"
	"github.com/cwbudde/algo-slew/patch"
	"github.com/cwbudde/algo-slew/tuning"
)

// Gain Out range in dB.
const (
	GainOutMin = -24.0
	GainOutMax = 24.0
)

const modDepthLockedKey = "params/moddepthlocked"

type setConfig struct {
	features Features
	tuning   *tuning.Manager
}

// Option configures a Set.
type Option func(*setConfig)

// WithFeatures overrides the build-tag features.
func WithFeatures(f Features) Option {
	return func(cfg *setConfig) {
		cfg.features = f
	}
}

// WithTuning makes pitch parameters follow m. It has no effect when the
// tuning feature is disabled.
func WithTuning(m *tuning.Manager) Option {
	return func(cfg *setConfig) {
		cfg.tuning = m
	}
}

// Set owns the parameters of the effect. Its length is fixed at
// construction.
type Set struct {
	params   []*Parameter
	index    [NumIDs]int
	features Features
	tuning   *tuning.Manager

	macro          atomicFloat
	modDepthLocked atomic.Bool
}

// NewSet creates every parameter enabled by the configured features.
func NewSet(opts ...Option) *Set {
	cfg := setConfig{features: DefaultFeatures()}
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Set{features: cfg.features}
	for i := range s.index {
		s.index[i] = -1
	}
	if cfg.features.Tuning {
		s.tuning = cfg.tuning
		if s.tuning == nil {
			s.tuning = tuning.New()
		}
	}

	env := converterEnv{features: cfg.features, midSide: s.midSide}
	if s.tuning != nil {
		env.pitch = s.tuning
	}
	add := func(id ID, rng Range, def float64, unit Unit) {
		s.index[id] = len(s.params)
		s.params = append(s.params, New(id, rng, def, unit, newConverter(unit, env)))
	}

	add(Slew, Linear(0, 127), 36, Pitch)
	add(FilterType, Stepped(0, 1), 0, FilterTypeUnit)
	add(Mix, Linear(0, 1), 1, Percent)
	add(GainOut, RangeWithCentre(GainOutMin, GainOutMax, 0), 0, Decibel)
	if cfg.features.HQ {
		add(HQ, Toggle(), 0, Power)
	}
	if cfg.features.StereoConfig {
		add(StereoConfig, Toggle(), 0, StereoConfigUnit)
	}
	return s
}

func (s *Set) midSide() bool {
	p := s.Param(StereoConfig)
	return p != nil && p.ValMod() > 0.5
}

// Features returns the configured features.
func (s *Set) Features() Features { return s.features }

// Tuning returns the tuning manager, or nil when tuning is disabled.
func (s *Set) Tuning() *tuning.Manager { return s.tuning }

// Len returns the number of parameters.
func (s *Set) Len() int { return len(s.params) }

// At returns the i-th parameter.
func (s *Set) At(i int) *Parameter { return s.params[i] }

// Has reports whether id exists in this build.
func (s *Set) Has(id ID) bool {
	return id >= 0 && id < NumIDs && s.index[id] >= 0
}

// Param returns the parameter for id, or nil if the feature providing it is
// disabled.
func (s *Set) Param(id ID) *Parameter {
	if !s.Has(id) {
		return nil
	}
	return s.params[s.index[id]]
}

// All returns the parameters in order. The slice must not be modified.
func (s *Set) All() []*Parameter { return s.params }

// Index returns the position of the parameter matching a display name or
// key, or -1.
func (s *Set) Index(nameOrID string) int {
	for i, p := range s.params {
		if nameOrID == p.Name() || nameOrID == p.id.Key() {
			return i
		}
	}
	return -1
}

// IsModDepthLocked reports the global depth lock.
func (s *Set) IsModDepthLocked() bool { return s.modDepthLocked.Load() }

// SetModDepthLocked sets the global depth lock and forwards it to every
// parameter. Members switch one by one, not as a single transaction.
func (s *Set) SetModDepthLocked(locked bool) {
	s.modDepthLocked.Store(locked)
	for _, p := range s.params {
		p.SetModDepthLocked(locked)
	}
}

// SwitchModDepthLocked toggles the global depth lock.
func (s *Set) SwitchModDepthLocked() { s.SetModDepthLocked(!s.IsModDepthLocked()) }

// Macro returns the macro input.
func (s *Set) Macro() float64 { return s.macro.Load() }

// SetMacro sets the macro input, clamped to [0,1].
func (s *Set) SetMacro(v float64) { s.macro.Store(core.Clamp01(v)) }

// ProcessMacroMod updates every modulated value from the macro input. It
// runs on the render thread once per sub-block.
func (s *Set) ProcessMacroMod() {
	m := s.macro.Load()
	for _, p := range s.params {
		p.Modulate(m)
	}
}

// Attach registers every parameter with r and routes gesture and value
// notifications to n. Either may be nil.
func (s *Set) Attach(r Registrar, n Notifier) {
	for _, p := range s.params {
		p.attach(n)
		if r != nil {
			r.Register(p)
		}
	}
}

// SavePatch writes every parameter and the global depth lock.
func (s *Set) SavePatch(st patch.Store) {
	for _, p := range s.params {
		p.SavePatch(st)
	}
	locked := 0.0
	if s.IsModDepthLocked() {
		locked = 1
	}
	st.Set(modDepthLockedKey, locked)
}

// LoadPatch restores the global depth lock, then every parameter.
func (s *Set) LoadPatch(st patch.Store) {
	if v, ok := st.Get(modDepthLockedKey); ok {
		s.SetModDepthLocked(int(v) != 0)
	}
	for _, p := range s.params {
		p.LoadPatch(st)
	}
}
