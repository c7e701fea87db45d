package mix

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-slew/internal/testutil"
)

func prepared(t *testing.T, maxBlock, latency int) *Mixer {
	t.Helper()
	m := New()
	if err := m.Prepare(maxBlock, latency); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	return m
}

func TestPrepareValidation(t *testing.T) {
	m := New()
	if err := m.Prepare(0, 0); !errors.Is(err, ErrInvalidBlockSize) {
		t.Fatalf("err = %v, want ErrInvalidBlockSize", err)
	}
	if err := m.Prepare(32, -1); !errors.Is(err, ErrInvalidLatency) {
		t.Fatalf("err = %v, want ErrInvalidLatency", err)
	}
}

func TestJoinGain(t *testing.T) {
	tests := []struct {
		name   string
		gainDb float64
		want   float64
	}{
		{"unity", 0, 1},
		{"minus 6", -6, math.Pow(10, -6.0/20)},
		{"plus 12", 12, math.Pow(10, 12.0/20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := prepared(t, 8, 0)
			buf := testutil.Planar(testutil.DC(0.5, 8), testutil.DC(-0.25, 8))
			m.Split(buf, 2, 8)
			m.Join(buf, tt.gainDb, 1, 2, 8)
			testutil.RequireSliceNearlyEqual(t, buf[0], testutil.DC(0.5*tt.want, 8), 1e-12)
			testutil.RequireSliceNearlyEqual(t, buf[1], testutil.DC(-0.25*tt.want, 8), 1e-12)
			if math.Abs(m.Gain()-tt.want) > 1e-12 {
				t.Fatalf("Gain = %v, want %v", m.Gain(), tt.want)
			}
		})
	}
}

func TestJoinBlendsDryAndWet(t *testing.T) {
	m := prepared(t, 4, 0)
	buf := testutil.Planar(testutil.DC(1, 4))
	m.Split(buf, 1, 4)
	for i := range buf[0] {
		buf[0][i] = 0 // stage output
	}
	m.Join(buf, 0, 0.25, 1, 4)
	testutil.RequireSliceNearlyEqual(t, buf[0], testutil.DC(0.75, 4), 1e-15)
}

func TestMixIsClamped(t *testing.T) {
	m := prepared(t, 4, 0)
	buf := testutil.Planar(testutil.DC(1, 4))
	m.Split(buf, 1, 4)
	buf[0] = testutil.DC(0.5, 4)
	m.Join(buf, 0, 3, 1, 4)
	testutil.RequireSliceNearlyEqual(t, buf[0], testutil.DC(0.5, 4), 0)
}

func TestDryIsLatencyCompensated(t *testing.T) {
	const lat = 3
	m := prepared(t, 8, lat)
	src := testutil.Impulse(16, 1)
	buf := testutil.Planar(src)
	for start := 0; start < 16; start += 8 {
		view := [][]float64{buf[0][start : start+8]}
		m.Split(view, 1, 8)
		clear(view[0])
		m.Join(view, 0, 0, 1, 8)
	}
	testutil.RequireSliceNearlyEqual(t, buf[0], testutil.Impulse(16, 1+lat), 0)
}

func TestUnpreparedJoinOnlyGains(t *testing.T) {
	m := New()
	buf := testutil.Planar(testutil.DC(1, 4))
	m.Split(buf, 1, 4)
	m.Join(buf, -20, 0, 1, 4)
	testutil.RequireSliceNearlyEqual(t, buf[0], testutil.DC(0.1, 4), 1e-12)
}

func TestMidSideRoundTrip(t *testing.T) {
	l := testutil.DeterministicNoise(1, 1, 32)
	r := testutil.DeterministicNoise(2, 1, 32)
	a := append([]float64(nil), l...)
	b := append([]float64(nil), r...)

	EncodeMidSide(a, b)
	for i := range l {
		if math.Abs(a[i]-0.5*(l[i]+r[i])) > 1e-15 || math.Abs(b[i]-0.5*(l[i]-r[i])) > 1e-15 {
			t.Fatalf("sample %d: mid/side = %v/%v", i, a[i], b[i])
		}
	}
	DecodeMidSide(a, b)
	testutil.RequireSliceNearlyEqual(t, a, l, 1e-15)
	testutil.RequireSliceNearlyEqual(t, b, r, 1e-15)
}
