// Package param implements lock-free automatable parameters.
//
// A Parameter stores its normalized value, modulation depth and bias in
// atomics, so the render thread can read them every sub-block while host
// automation and UI gestures write from other goroutines. Values map to
// engineering units through a Range, and to text through a Converter chosen
// by the parameter's Unit.
//
// A Set owns the fixed list of parameters of the effect, the shared macro
// input and the global modulation-depth lock. Hosts only ever see the Control
// interface; the Set stays the single owner.
//
// Macro modulation shapes the macro input x in [0,1] with the curve
//
//	biased(s, e, b, x) = s + (e-s)*b*x / ((1-b) - x + 2*b*x)
//
// which is linear for b = 0.5. The bias is kept BiasEps away from 0 and 1.
package param
