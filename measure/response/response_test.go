package response

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-slew/dsp/filter/fir"
	"github.com/cwbudde/algo-slew/dsp/oversample"
)

func identity(x []float64) []float64 { return x }

func TestMeasureValidation(t *testing.T) {
	if _, err := Measure(nil, 64, 48000); !errors.Is(err, ErrNilProcessor) {
		t.Fatalf("err = %v, want ErrNilProcessor", err)
	}
	for _, n := range []int{0, 1, 3, 100} {
		if _, err := Measure(identity, n, 48000); !errors.Is(err, ErrInvalidLength) {
			t.Fatalf("n=%d: err = %v, want ErrInvalidLength", n, err)
		}
	}
	if _, err := Measure(identity, 64, 0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("err = %v, want ErrInvalidSampleRate", err)
	}
}

func TestMeasureIdentityIsFlat(t *testing.T) {
	r, err := Measure(identity, 64, 48000)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}
	if len(r.Hz) != 33 || r.Hz[32] != 24000 {
		t.Fatalf("bins = %d, last = %v, want 33 and 24000", len(r.Hz), r.Hz[len(r.Hz)-1])
	}
	for k, db := range r.MagDB {
		if math.Abs(db) > 1e-9 {
			t.Fatalf("bin %d = %v dB, want 0", k, db)
		}
	}
}

func TestMeasureGain(t *testing.T) {
	r, err := Measure(func(x []float64) []float64 {
		for i := range x {
			x[i] *= 0.5
		}
		return x
	}, 128, 44100)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}
	want := 20 * math.Log10(0.5)
	if got := r.At(1000); math.Abs(got-want) > 1e-9 {
		t.Fatalf("At(1000) = %v, want %v", got, want)
	}
}

func TestSilenceHitsFloor(t *testing.T) {
	r, err := Measure(func(x []float64) []float64 { return make([]float64, len(x)) }, 16, 1000)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}
	if r.Max(0, 500) != Floor {
		t.Fatalf("Max = %v, want %v", r.Max(0, 500), Floor)
	}
}

func TestAtInterpolatesAndClamps(t *testing.T) {
	r := Response{Hz: []float64{0, 100, 200}, MagDB: []float64{0, -10, -30}}
	tests := []struct {
		hz, want float64
	}{
		{-5, 0}, {0, 0}, {50, -5}, {100, -10}, {150, -20}, {500, -30},
	}
	for _, tt := range tests {
		if got := r.At(tt.hz); math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("At(%v) = %v, want %v", tt.hz, got, tt.want)
		}
	}
	if got := (Response{}).At(1); got != Floor {
		t.Fatalf("empty At = %v, want %v", got, Floor)
	}
	if r.Min(50, 250) != -30 || r.Max(50, 250) != -10 {
		t.Fatalf("Min/Max = %v/%v, want -30/-10", r.Min(50, 250), r.Max(50, 250))
	}
}

func TestLowpassStopband(t *testing.T) {
	taps, err := fir.DesignLowpass(33, 0.225, 7.5, 1)
	if err != nil {
		t.Fatalf("DesignLowpass() error = %v", err)
	}
	f := fir.New(taps)
	r, err := Measure(func(x []float64) []float64 {
		f.ProcessBlock(x)
		return x
	}, 1024, 48000)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}
	if db := r.Max(0, 2000); math.Abs(db) > 0.1 {
		t.Fatalf("passband peak = %v dB, want ~0", db)
	}
	if db := r.Max(0.4*48000, 24000); db > -50 {
		t.Fatalf("stopband peak = %v dB, want < -50", db)
	}
}

func TestOversamplerPassband(t *testing.T) {
	o, err := oversample.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := o.Prepare(48000, 32, true); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	r, err := Measure(func(x []float64) []float64 {
		for start := 0; start < len(x); start += 32 {
			view := [][]float64{x[start : start+32]}
			o.Upsample(view, 1, 32)
			o.Downsample(view, 32)
		}
		return x
	}, 512, 48000)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}
	if lo, hi := r.Min(0, 2000), r.Max(0, 2000); lo < -0.2 || hi > 0.2 {
		t.Fatalf("passband = [%v, %v] dB, want within 0.2 dB", lo, hi)
	}
}
