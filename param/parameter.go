package param

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-slew/dsp/core"
	"github.com/cwbudde/algo-slew/patch"
)

// BiasEps keeps the modulation bias away from the poles of the bias curve.
const BiasEps = 1e-6

const defaultModBias = 0.5

type atomicFloat struct {
	bits atomic.Uint64
}

func (a *atomicFloat) Load() float64   { return math.Float64frombits(a.bits.Load()) }
func (a *atomicFloat) Store(v float64) { a.bits.Store(math.Float64bits(v)) }

type notifierRef struct {
	n Notifier
}

// Parameter is one automatable control. Every getter is safe on the render
// thread. Setters are meant for the control thread; concurrent writers of
// the combined depth-lock update may lose a depth write.
type Parameter struct {
	id    ID
	rng   Range
	unit  Unit
	conv  Converter
	label string

	valNorm       atomicFloat
	valMod        atomicFloat
	maxModDepth   atomicFloat
	modBias       atomicFloat
	defaultDenorm atomicFloat

	locked         atomic.Bool
	inGesture      atomic.Bool
	modDepthLocked atomic.Bool

	notifier atomic.Pointer[notifierRef]
}

// New creates a parameter with a default in engineering units. A Converter
// with nil functions falls back to the one NewConverter builds for unit.
func New(id ID, rng Range, defaultDenorm float64, unit Unit, conv Converter) *Parameter {
	fallback := NewConverter(unit)
	if conv.ToText == nil {
		conv.ToText = fallback.ToText
	}
	if conv.FromText == nil {
		conv.FromText = fallback.FromText
	}

	p := &Parameter{
		id:    id,
		rng:   rng,
		unit:  unit,
		conv:  conv,
		label: unit.Label(),
	}
	def := rng.Snap(defaultDenorm)
	p.defaultDenorm.Store(def)
	p.valNorm.Store(rng.Normalize(def))
	p.valMod.Store(p.valNorm.Load())
	p.modBias.Store(defaultModBias)
	return p
}

// ID returns the parameter identity.
func (p *Parameter) ID() ID { return p.id }

// Range returns the value mapping.
func (p *Parameter) Range() Range { return p.rng }

// Unit returns the unit kind.
func (p *Parameter) Unit() Unit { return p.unit }

// Type classifies the range.
func (p *Parameter) Type() Type { return p.rng.Type() }

// Name returns the display name.
func (p *Parameter) Name() string { return p.id.String() }

// Label returns the unit suffix.
func (p *Parameter) Label() string { return p.label }

// Tooltip returns the description.
func (p *Parameter) Tooltip() string { return p.id.Tooltip() }

// Value returns the normalized base value.
func (p *Parameter) Value() float64 { return p.valNorm.Load() }

// ValueDenorm returns the base value in engineering units.
func (p *Parameter) ValueDenorm() float64 { return p.rng.Denormalize(p.Value()) }

// SetValue stores a normalized value. It does nothing while locked. With
// the modulation depth locked, the depth moves by the opposite amount so the
// modulated target stays put: d1 = d0 - p1 + p0.
func (p *Parameter) SetValue(norm float64) {
	if p.IsLocked() {
		return
	}
	p1 := core.Clamp01(norm)
	if !p.modDepthLocked.Load() {
		p.valNorm.Store(p1)
		return
	}

	p0 := p.valNorm.Load()
	d0 := p.maxModDepth.Load()
	d1 := d0 - p1 + p0

	p.valNorm.Store(p1)
	p.SetMaxModDepth(d1)
}

// SetValueDenorm stores a value given in engineering units.
func (p *Parameter) SetValueDenorm(v float64) {
	p.SetValue(p.rng.Normalize(v))
}

// SetValueNotifyingHost stores norm and reports the result to the attached
// Notifier.
func (p *Parameter) SetValueNotifyingHost(norm float64) {
	p.SetValue(norm)
	if n := p.host(); n != nil {
		n.ValueChanged(p.id, p.Value())
	}
}

// ResetToDefault sets the default value, notifying the host.
func (p *Parameter) ResetToDefault() {
	p.SetValueNotifyingHost(p.DefaultValue())
}

// MaxModDepth returns the signed modulation depth in [-1,1].
func (p *Parameter) MaxModDepth() float64 { return p.maxModDepth.Load() }

// SetMaxModDepth clamps d to [-1,1]. It does nothing while locked.
func (p *Parameter) SetMaxModDepth(d float64) {
	if p.IsLocked() || math.IsNaN(d) {
		return
	}
	p.maxModDepth.Store(core.Clamp(d, -1, 1))
}

// ModBias returns the modulation curve bias.
func (p *Parameter) ModBias() float64 { return p.modBias.Load() }

// SetModBias clamps b to [BiasEps, 1-BiasEps]. It does nothing while locked.
func (p *Parameter) SetModBias(b float64) {
	if p.IsLocked() || math.IsNaN(b) {
		return
	}
	p.modBias.Store(core.Clamp(b, BiasEps, 1-BiasEps))
}

// CalcValModOf returns the normalized value the macro input would produce.
func (p *Parameter) CalcValModOf(macro float64) float64 {
	mmd := p.maxModDepth.Load()
	pol := 1.0
	if mmd < 0 {
		pol = -1
	}
	md := mmd * pol
	mod := Biased(0, md, p.modBias.Load(), core.Clamp01(macro)) * pol
	return core.Clamp01(p.Value() + mod)
}

// Modulate caches CalcValModOf(macro). It runs on the render thread.
func (p *Parameter) Modulate(macro float64) {
	p.valMod.Store(p.CalcValModOf(macro))
}

// ValMod returns the last modulated normalized value.
func (p *Parameter) ValMod() float64 { return p.valMod.Load() }

// ValModDenorm returns the last modulated value in engineering units.
func (p *Parameter) ValModDenorm() float64 { return p.rng.Denormalize(p.ValMod()) }

// Biased evaluates the rational bias curve from start to end at x. It
// returns 0 for an empty span.
func Biased(start, end, bias, x float64) float64 {
	r := end - start
	if r == 0 {
		return 0
	}
	a2 := 2 * bias
	aM := 1 - bias
	aR := r * bias
	return start + aR*x/(aM-x+a2*x)
}

// DefaultValue returns the normalized default.
func (p *Parameter) DefaultValue() float64 {
	return p.rng.Normalize(p.defaultDenorm.Load())
}

// DefaultDenorm returns the default in engineering units.
func (p *Parameter) DefaultDenorm() float64 { return p.defaultDenorm.Load() }

// SetDefaultValue redefines the default from a normalized value.
func (p *Parameter) SetDefaultValue(norm float64) {
	p.defaultDenorm.Store(p.rng.Denormalize(norm))
}

// Text renders a normalized value.
func (p *Parameter) Text(norm float64) string {
	return p.conv.ToText(p.rng.Snap(p.rng.Denormalize(norm)))
}

// ValueForText parses text, clamps the result to the range and returns it
// normalized.
func (p *Parameter) ValueForText(text string) float64 {
	return p.rng.Normalize(p.rng.Clamp(p.conv.FromText(text)))
}

// ValForTextDenorm parses text without clamping.
func (p *Parameter) ValForTextDenorm(text string) float64 {
	return p.conv.FromText(text)
}

// NumSteps returns the quantization step count for host UIs.
func (p *Parameter) NumSteps() int { return p.rng.NumSteps() }

// String formats name, normalized value and text.
func (p *Parameter) String() string {
	v := p.Value()
	return fmt.Sprintf("%s: %v; %s", p.Name(), v, p.Text(v))
}

// IsLocked reports whether value, depth and bias are frozen.
func (p *Parameter) IsLocked() bool { return p.locked.Load() }

// SetLocked freezes or releases value, depth and bias.
func (p *Parameter) SetLocked(locked bool) { p.locked.Store(locked) }

// SwitchLock toggles the lock.
func (p *Parameter) SwitchLock() { p.SetLocked(!p.IsLocked()) }

// IsModDepthLocked reports whether SetValue compensates the depth.
func (p *Parameter) IsModDepthLocked() bool { return p.modDepthLocked.Load() }

// SetModDepthLocked enables depth compensation in SetValue.
func (p *Parameter) SetModDepthLocked(locked bool) { p.modDepthLocked.Store(locked) }

// InGesture reports whether a UI edit is in progress.
func (p *Parameter) InGesture() bool { return p.inGesture.Load() }

// BeginGesture marks the start of a UI edit and tells the host.
func (p *Parameter) BeginGesture() {
	p.inGesture.Store(true)
	if n := p.host(); n != nil {
		n.BeginGesture(p.id)
	}
}

// EndGesture marks the end of a UI edit and tells the host.
func (p *Parameter) EndGesture() {
	p.inGesture.Store(false)
	if n := p.host(); n != nil {
		n.EndGesture(p.id)
	}
}

// SetValueWithGesture wraps one value change in a gesture. It does nothing
// while a gesture is already open.
func (p *Parameter) SetValueWithGesture(norm float64) {
	if p.InGesture() {
		return
	}
	if n := p.host(); n != nil {
		n.BeginGesture(p.id)
	}
	p.SetValueNotifyingHost(norm)
	if n := p.host(); n != nil {
		n.EndGesture(p.id)
	}
}

func (p *Parameter) attach(n Notifier) {
	if n == nil {
		p.notifier.Store(nil)
		return
	}
	p.notifier.Store(&notifierRef{n: n})
}

func (p *Parameter) host() Notifier {
	if ref := p.notifier.Load(); ref != nil {
		return ref.n
	}
	return nil
}

// PatchKey returns the patch key prefix, "params/<id>".
func (p *Parameter) PatchKey() string {
	return patch.Key("params", p.id.Key())
}

// SavePatch writes value (denormalized), maxmoddepth and modbias.
func (p *Parameter) SavePatch(s patch.Store) {
	key := p.PatchKey()
	s.Set(key+"/value", p.ValueDenorm())
	s.Set(key+"/maxmoddepth", p.MaxModDepth())
	s.Set(key+"/modbias", p.ModBias())
}

// LoadPatch restores the fields present in s. Locked parameters and
// missing keys are left unchanged.
func (p *Parameter) LoadPatch(s patch.Store) {
	if p.IsLocked() {
		return
	}
	key := p.PatchKey()
	if v, ok := s.Get(key + "/value"); ok {
		p.SetValueNotifyingHost(p.rng.Normalize(p.rng.Snap(v)))
	}
	if v, ok := s.Get(key + "/maxmoddepth"); ok {
		p.SetMaxModDepth(v)
	}
	if v, ok := s.Get(key + "/modbias"); ok {
		p.SetModBias(v)
	}
}
