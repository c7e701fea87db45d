// Package mix blends a processed signal with its dry input and applies an
// output gain.
//
// A Mixer captures the dry signal in Split before the processing stage runs,
// delayed by the latency the wet path adds, and recombines both in Join:
//
//	out = (dry*(1-mix) + wet*mix) * 10^(gainDb/20)
//
// The gain is evaluated once per call, not per sample.
package mix
