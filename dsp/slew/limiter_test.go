package slew

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-slew/internal/testutil"
)

func TestFreqHzToSlewRate(t *testing.T) {
	tests := []struct {
		name      string
		hz, fs    float64
		want      float64
		tolerance float64
	}{
		{"nominal", 1000, 48000, 2 * math.Pi * 1000 / 48000, 1e-15},
		{"capped", 40000, 48000, MaxRate, 0},
		{"zero hz", 0, 48000, 0, 0},
		{"zero rate", 1000, 0, 0, 0},
		{"nan", math.NaN(), 48000, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FreqHzToSlewRate(tt.hz, tt.fs); math.Abs(got-tt.want) > tt.tolerance {
				t.Fatalf("FreqHzToSlewRate(%v, %v) = %v, want %v", tt.hz, tt.fs, got, tt.want)
			}
		})
	}
}

func TestTypeFromIndex(t *testing.T) {
	tests := []struct {
		in   int
		want Type
	}{
		{-3, Lowpass}, {0, Lowpass}, {1, Highpass}, {7, Highpass},
	}
	for _, tt := range tests {
		if got := TypeFromIndex(tt.in); got != tt.want {
			t.Fatalf("TypeFromIndex(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if Lowpass.String() != "LP" || Highpass.String() != "HP" || Type(9).String() != "?" {
		t.Fatal("unexpected Type names")
	}
}

func TestLowpassLimitsStep(t *testing.T) {
	l := New(1)
	buf := testutil.Planar(testutil.Step(8, 0, 1))
	l.Process(buf, 0.25, 1, 8, Lowpass)
	want := []float64{0.25, 0.5, 0.75, 1, 1, 1, 1, 1}
	testutil.RequireSliceNearlyEqual(t, buf[0], want, 1e-15)
}

func TestHighpassIsComplement(t *testing.T) {
	src := testutil.DeterministicNoise(7, 1, 64)
	lp := New(1)
	hp := New(1)
	a := testutil.Planar(src)
	b := testutil.Planar(src)
	lp.Process(a, 0.1, 1, 64, Lowpass)
	hp.Process(b, 0.1, 1, 64, Highpass)
	for i := range src {
		if d := math.Abs(a[0][i] + b[0][i] - src[i]); d > 1e-12 {
			t.Fatalf("sample %d: lp+hp = %v, want %v", i, a[0][i]+b[0][i], src[i])
		}
	}
}

func TestMaxRateIsTransparent(t *testing.T) {
	src := testutil.DeterministicNoise(11, 1, 128)
	l := New(2)
	buf := testutil.Planar(src, src)
	l.Process(buf, 10, 2, 128, Lowpass)
	for ch := range buf {
		testutil.RequireSliceNearlyEqual(t, buf[ch], src, 1e-15)
	}
}

func TestStateCarriesAcrossCalls(t *testing.T) {
	src := testutil.DeterministicSine(3000, 48000, 1, 96)
	whole := New(1)
	split := New(1)
	a := testutil.Planar(src)
	b := testutil.Planar(src)
	whole.Process(a, 0.05, 1, 96, Lowpass)
	split.Process([][]float64{b[0][:40]}, 0.05, 1, 40, Lowpass)
	split.Process([][]float64{b[0][40:]}, 0.05, 1, 56, Lowpass)
	testutil.RequireSliceNearlyEqual(t, b[0], a[0], 0)
}

func TestChannelsAreIndependent(t *testing.T) {
	l := New(2)
	buf := [][]float64{testutil.Step(4, 0, 1), make([]float64, 4)}
	l.Process(buf, 0.5, 2, 4, Lowpass)
	testutil.RequireSilent(t, buf[1:])
	if buf[0][0] != 0.5 {
		t.Fatalf("ch0[0] = %v, want 0.5", buf[0][0])
	}
}

func TestProcessSampleMatchesProcess(t *testing.T) {
	src := testutil.DeterministicNoise(5, 1, 32)
	a := New(1)
	b := New(1)
	buf := testutil.Planar(src)
	a.Process(buf, 0.2, 1, 32, Highpass)
	for i, x := range src {
		if got := b.ProcessSample(0, x, 0.2, Highpass); math.Abs(got-buf[0][i]) > 1e-15 {
			t.Fatalf("sample %d: got %v, want %v", i, got, buf[0][i])
		}
	}
}

func TestReset(t *testing.T) {
	l := New(1)
	l.Process(testutil.Planar(testutil.DC(1, 16)), 0.5, 1, 16, Lowpass)
	l.Reset()
	buf := testutil.Planar(make([]float64, 4))
	l.Process(buf, 0.5, 1, 4, Lowpass)
	testutil.RequireSilent(t, buf)
}
