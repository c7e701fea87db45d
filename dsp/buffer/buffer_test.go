package buffer

import (
	"math"
	"testing"
)

func TestNewZeroFilled(t *testing.T) {
	b := New(2, 8)
	if b.NumChannels() != 2 || b.NumSamples() != 8 {
		t.Fatalf("shape = %dx%d, want 2x8", b.NumChannels(), b.NumSamples())
	}
	for ch := range b.NumChannels() {
		for i, v := range b.Channel(ch) {
			if v != 0 {
				t.Fatalf("Channel(%d)[%d] = %v, want 0", ch, i, v)
			}
		}
	}
}

func TestNewNegativeShape(t *testing.T) {
	b := New(-1, -1)
	if b.NumChannels() != 0 || b.NumSamples() != 0 {
		t.Fatalf("shape = %dx%d, want 0x0", b.NumChannels(), b.NumSamples())
	}
}

func TestChannelsDoNotOverlap(t *testing.T) {
	b := New(2, 4)
	for i := range b.Channel(0) {
		b.Channel(0)[i] = 1
	}
	for i, v := range b.Channel(1) {
		if v != 0 {
			t.Fatalf("Channel(1)[%d] = %v, want 0", i, v)
		}
	}
}

func TestSetSizeWithinCapacityReusesStorage(t *testing.T) {
	b := New(2, 16)
	b.Channel(1)[0] = 7
	before := &b.Channel(1)[0]

	b.SetSize(2, 5, true)
	if b.NumSamples() != 5 || b.Cap() != 16 {
		t.Fatalf("NumSamples=%d Cap=%d, want 5 and 16", b.NumSamples(), b.Cap())
	}
	if &b.Channel(1)[0] != before {
		t.Fatal("SetSize within capacity should not move storage")
	}
	if b.Channel(1)[0] != 7 {
		t.Fatal("SetSize within capacity should keep contents")
	}

	b.SetSize(1, 3, true)
	if b.NumChannels() != 1 {
		t.Fatalf("NumChannels = %d, want 1", b.NumChannels())
	}
	b.SetSize(2, 16, true)
	if b.NumChannels() != 2 || len(b.Channel(1)) != 16 {
		t.Fatal("channel count should be restorable within capacity")
	}
}

func TestSetSizeGrowKeepsData(t *testing.T) {
	b := New(1, 2)
	b.Channel(0)[0], b.Channel(0)[1] = 1, 2

	b.SetSize(2, 6, true)
	if b.Cap() < 6 || b.MaxChannels() < 2 {
		t.Fatalf("Cap=%d MaxChannels=%d, want >=6, >=2", b.Cap(), b.MaxChannels())
	}
	got := b.Channel(0)
	if got[0] != 1 || got[1] != 2 || got[2] != 0 {
		t.Fatalf("Channel(0) = %v, want [1 2 0 ...]", got)
	}
}

func TestZeroRange(t *testing.T) {
	b := New(2, 5)
	for ch := range 2 {
		for i := range b.Channel(ch) {
			b.Channel(ch)[i] = float64(i + 1)
		}
	}
	b.ZeroRange(1, 4)
	want := []float64{1, 0, 0, 0, 5}
	for ch := range 2 {
		for i, v := range b.Channel(ch) {
			if v != want[i] {
				t.Fatalf("Channel(%d) = %v, want %v", ch, b.Channel(ch), want)
			}
		}
	}
	b.ZeroRange(-3, 99)
	for i, v := range b.Channel(0) {
		if v != 0 {
			t.Fatalf("Channel(0)[%d] = %v after full ZeroRange", i, v)
		}
	}
}

func TestFloat32RoundTripIsExact(t *testing.T) {
	src := [][]float32{
		{0, 1, -1, 0.5, float32(math.Pi), math.SmallestNonzeroFloat32, math.MaxFloat32},
		{-0.25, 3e-8, 12345.678, -math.MaxFloat32, 0, 1e-3, -7},
	}
	b := New(2, 8)
	b.LoadFloat32(src)
	if b.NumChannels() != 2 || b.NumSamples() != len(src[0]) {
		t.Fatalf("shape = %dx%d, want 2x%d", b.NumChannels(), b.NumSamples(), len(src[0]))
	}

	dst := [][]float32{make([]float32, len(src[0])), make([]float32, len(src[1]))}
	b.StoreFloat32(dst)
	for ch := range src {
		for i := range src[ch] {
			if math.Float32bits(dst[ch][i]) != math.Float32bits(src[ch][i]) {
				t.Fatalf("ch %d sample %d: got %v, want %v", ch, i, dst[ch][i], src[ch][i])
			}
		}
	}
}

func TestLoadFloat32Empty(t *testing.T) {
	b := New(2, 4)
	b.LoadFloat32(nil)
	if b.NumChannels() != 0 || b.NumSamples() != 0 {
		t.Fatalf("shape = %dx%d, want 0x0", b.NumChannels(), b.NumSamples())
	}
}

func TestWidenNarrowShortest(t *testing.T) {
	dst := make([]float64, 2)
	if n := Widen(dst, []float32{1, 2, 3}); n != 2 {
		t.Fatalf("Widen = %d, want 2", n)
	}
	out := make([]float32, 3)
	if n := Narrow(out, dst); n != 2 {
		t.Fatalf("Narrow = %d, want 2", n)
	}
	if out[0] != 1 || out[1] != 2 || out[2] != 0 {
		t.Fatalf("Narrow result = %v", out)
	}
}
