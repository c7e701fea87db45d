// Package oversample runs a processing stage at twice the host sample rate.
//
// An Oversampler converts one base-rate sub-block into a 2x sub-block with a
// linear-phase FIR interpolator, and back with a matching FIR decimator. Each
// Upsample must be followed by exactly one Downsample with the original
// sample count; the pair brackets one stage invocation. When disabled the
// oversampler passes samples through and reports zero latency.
package oversample
