package main

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-slew/param"
)

func run(t *testing.T, stdin io.Reader, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestParamFlagsApply(t *testing.T) {
	set := param.NewSet(param.WithFeatures(param.AllFeatures()))
	pf := paramFlags{gain: "-6", typ: "HP", mix: "50", set: []string{"hq=on"}}
	if err := pf.apply(set); err != nil {
		t.Fatalf("apply() error = %v", err)
	}
	if got := set.Param(param.GainOut).ValueDenorm(); math.Abs(got+6) > 1e-9 {
		t.Fatalf("GainOut = %v, want -6", got)
	}
	if got := set.Param(param.FilterType).ValueDenorm(); got != 1 {
		t.Fatalf("FilterType = %v, want 1", got)
	}
	if got := set.Param(param.Mix).ValueDenorm(); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("Mix = %v, want 0.5", got)
	}
	if got := set.Param(param.HQ).Value(); got != 1 {
		t.Fatalf("HQ = %v, want 1", got)
	}
}

func TestParamFlagsErrors(t *testing.T) {
	set := param.NewSet(param.WithFeatures(param.AllFeatures()))
	for _, pf := range []paramFlags{
		{set: []string{"nope=1"}},
		{set: []string{"gainout"}},
		{set: []string{"=3"}},
	} {
		if err := pf.apply(set); err == nil {
			t.Fatalf("apply(%v) succeeded, want an error", pf.set)
		}
	}
}

func TestToneLength(t *testing.T) {
	tn := newTone(1000, 8000, 1, true, 10)
	dst := [][]float32{make([]float32, 8), make([]float32, 8)}
	if n, err := tn.Read(dst); n != 8 || err != nil {
		t.Fatalf("Read = %d, %v, want 8, nil", n, err)
	}
	want := []float32{1, 1, 1, 1, -1, -1, -1, -1}
	for i := range want {
		if dst[0][i] != want[i] || dst[1][i] != want[i] {
			t.Fatalf("square = %v, want %v", dst[0], want)
		}
	}
	if n, _ := tn.Read(dst); n != 2 {
		t.Fatalf("second Read = %d, want 2", n)
	}
	if _, err := tn.Read(dst); err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}

func TestRawRoundTrip(t *testing.T) {
	src := [][]float32{{0.5, -1, 0.25}, {1, 0, -0.125}}
	raw := make([]byte, 3*4*numChannels)
	interleave(raw, src, 3)

	rr := newRawReader(bytes.NewReader(append(raw, 1, 2, 3)))
	dst := [][]float32{make([]float32, 4), make([]float32, 4)}
	n, err := rr.Read(dst)
	if n != 3 || err != nil {
		t.Fatalf("Read = %d, %v, want 3, nil", n, err)
	}
	for ch := range src {
		for i := range src[ch] {
			if dst[ch][i] != src[ch][i] {
				t.Fatalf("ch %d = %v, want %v", ch, dst[ch][:3], src[ch])
			}
		}
	}
	if _, err := rr.Read(dst); err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}

func TestRenderPassthrough(t *testing.T) {
	src := [][]float32{{0.5, -0.25, 0.125, 0}, {-0.5, 0.25, 1, 0.75}}
	raw := make([]byte, 4*4*numChannels)
	interleave(raw, src, 4)

	out := run(t, bytes.NewReader(raw), "render", "--in", "-", "--mix", "0", "--block", "3")
	if !bytes.Equal([]byte(out), raw) {
		t.Fatal("dry render did not reproduce the input")
	}
}

func TestRenderTone(t *testing.T) {
	out := run(t, nil, "render", "--seconds", "0.5", "--rate", "8000", "--wave", "square", "--slew", "C2")
	if len(out) != 4000*4*numChannels {
		t.Fatalf("output = %d bytes, want %d", len(out), 4000*4*numChannels)
	}
}

func TestParamsCommand(t *testing.T) {
	out := run(t, nil, "params", "--patch")
	for _, want := range []string{"Slew", "Gain Out", "params/slew/value", "params/moddepthlocked"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestAnalyze(t *testing.T) {
	r, err := analyze(analyzeFlags{rate: 48000, taps: 33, beta: 7.5, fft: 1024})
	if err != nil {
		t.Fatalf("analyze() error = %v", err)
	}
	if r.latency != 16 || r.sampleRateUp != 96000 {
		t.Fatalf("latency = %d rateUp = %v, want 16 and 96000", r.latency, r.sampleRateUp)
	}
	if db := r.roundTrip.At(1000); math.Abs(db) > 0.2 {
		t.Fatalf("round trip at 1 kHz = %v dB", db)
	}
	var buf bytes.Buffer
	r.write(&buf)
	if !strings.Contains(buf.String(), "latency 16 samples") {
		t.Fatalf("report:\n%s", buf.String())
	}
	if _, err := analyze(analyzeFlags{rate: 48000, taps: 32, beta: 7.5, fft: 1024}); err == nil {
		t.Fatal("analyze accepted an even tap count")
	}
}
