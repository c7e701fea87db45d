// Package response measures the magnitude response of a block processor.
//
// Measure feeds a unit impulse through the processor, transforms the
// captured impulse response with algo-fft and returns the magnitude of
// every bin from DC to Nyquist in dB:
//
//	r, err := response.Measure(func(x []float64) []float64 {
//		return filter(x)
//	}, 4096, 48000)
//	fmt.Printf("%.1f dB at 20 kHz\n", r.At(20000))
package response
