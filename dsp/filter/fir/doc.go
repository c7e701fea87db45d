// Package fir provides a direct-form FIR filter runtime and a Kaiser-windowed
// sinc lowpass designer.
//
// A [Filter] applies pre-computed coefficients to an input stream using a
// mirrored delay line. It is intended for the short linear-phase kernels used
// by the oversampler; processing never allocates.
package fir
