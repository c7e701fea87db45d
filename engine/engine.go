package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-slew/dsp/buffer"
	"github.com/cwbudde/algo-slew/dsp/core"
	"github.com/cwbudde/algo-slew/dsp/mix"
	"github.com/cwbudde/algo-slew/dsp/oversample"
	"github.com/cwbudde/algo-slew/param"
	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrInvalidSampleRate indicates a non-positive or non-finite sample rate.
	ErrInvalidSampleRate = errors.New("engine: invalid sample rate")
	// ErrInvalidBlockSize indicates a non-positive maximum block size.
	ErrInvalidBlockSize = errors.New("engine: invalid block size")
	// ErrNilSet indicates New was called without a parameter set.
	ErrNilSet = errors.New("engine: nil parameter set")
)

// State is the lifecycle state of an Engine.
type State int32

const (
	Unprepared State = iota
	Prepared
	Processing
)

func (s State) String() string {
	switch s {
	case Unprepared:
		return "unprepared"
	case Prepared:
		return "prepared"
	case Processing:
		return "processing"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Engine renders host buffers through the oversampler, the stage and the
// mixer.
type Engine struct {
	cfg    config
	set    *param.Set
	stage  Stage
	over   *oversample.Oversampler
	mixer  *mix.Mixer
	host   Host
	logger *slog.Logger

	// mu serializes Prepare, Reconcile and Release.
	mu         sync.Mutex
	sampleRate float64
	maxBlock   int

	scratch *buffer.Buffer
	chunk   [][]float64

	prepared  atomic.Bool
	suspended atomic.Bool
	inFlight  atomic.Int32
	latency   atomic.Int32
	peak      atomic.Uint64
}

// New builds an unprepared engine around set.
func New(set *param.Set, opts ...Option) (*Engine, error) {
	if set == nil {
		return nil, ErrNilSet
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	over, err := oversample.New(oversample.WithChannels(mix.MaxChannels))
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e := &Engine{
		cfg:    cfg,
		set:    set,
		stage:  cfg.stage,
		over:   over,
		mixer:  mix.New(),
		host:   cfg.host,
		logger: cfg.logger,
		chunk:  make([][]float64, max(cfg.inChannels, cfg.outChannels, mix.MaxChannels)),
	}
	if e.stage == nil {
		e.stage = NewSlewStage(set)
	}
	if e.host == nil {
		e.host = NopHost{}
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e, nil
}

// Set returns the parameter set the engine reads.
func (e *Engine) Set() *param.Set { return e.set }

// ChunkSize returns the sub-block length.
func (e *Engine) ChunkSize() int { return e.cfg.chunkSize }

// TotalInputChannels returns the configured input channel count.
func (e *Engine) TotalInputChannels() int { return e.cfg.inChannels }

// TotalOutputChannels returns the configured output channel count.
func (e *Engine) TotalOutputChannels() int { return e.cfg.outChannels }

// HQRequested reports whether the HQ parameter asks for oversampling. It is
// always false when the HQ feature is compiled out.
func (e *Engine) HQRequested() bool {
	p := e.set.Param(param.HQ)
	return p != nil && p.ValueDenorm() > 0.5
}

// Prepare configures every stage for sampleRate and host buffers of up to
// maxBlockSize samples, then reports the latency to the host.
func (e *Engine) Prepare(sampleRate float64, maxBlockSize int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.prepareLocked(sampleRate, maxBlockSize)
}

func (e *Engine) prepareLocked(sampleRate float64, maxBlockSize int) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	if maxBlockSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, maxBlockSize)
	}

	chunk := e.cfg.chunkSize
	hq := e.HQRequested()
	if err := e.over.Prepare(sampleRate, chunk, hq); err != nil {
		return fmt.Errorf("engine: prepare oversampler: %w", err)
	}
	latency := e.over.Latency()
	if err := e.mixer.Prepare(chunk, latency); err != nil {
		return fmt.Errorf("engine: prepare mixer: %w", err)
	}
	if err := e.stage.Prepare(e.over.SampleRateUp(), e.over.BlockSizeUp()); err != nil {
		return fmt.Errorf("engine: prepare stage: %w", err)
	}

	numCh := max(e.cfg.outChannels, mix.MaxChannels)
	if e.scratch == nil {
		e.scratch = buffer.New(numCh, maxBlockSize)
	} else {
		e.scratch.SetSize(numCh, maxBlockSize, false)
	}

	e.sampleRate = sampleRate
	e.maxBlock = maxBlockSize
	e.peak.Store(0)
	e.latency.Store(int32(latency))
	e.prepared.Store(true)

	e.logger.Info("engine prepared",
		slog.Float64("sample_rate", sampleRate),
		slog.Int("max_block", maxBlockSize),
		slog.Bool("hq", hq),
		slog.Float64("sample_rate_up", e.over.SampleRateUp()),
		slog.Int("latency", latency),
	)
	e.host.LatencyChanged(latency)
	return nil
}

// Release returns the engine to Unprepared. Process leaves buffers untouched
// until the next Prepare.
func (e *Engine) Release() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Suspend(true)
	e.prepared.Store(false)
	e.over.Reset()
	e.mixer.Reset()
	e.Suspend(false)
	e.logger.Debug("engine released")
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	switch {
	case !e.prepared.Load():
		return Unprepared
	case e.inFlight.Load() > 0:
		return Processing
	default:
		return Prepared
	}
}

// LatencySamples returns the latency added by the pipeline.
func (e *Engine) LatencySamples() int { return int(e.latency.Load()) }

// SampleRate returns the host rate of the last Prepare.
func (e *Engine) SampleRate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sampleRate
}

// MaxBlockSize returns the host block size of the last Prepare.
func (e *Engine) MaxBlockSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.maxBlock
}

// SampleRateUp returns the rate the stage runs at.
func (e *Engine) SampleRateUp() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.over.SampleRateUp()
}

// BlockSizeUp returns the largest sub-block the stage receives.
func (e *Engine) BlockSizeUp() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.over.BlockSizeUp()
}

// Oversampling reports whether the oversampler is currently enabled.
func (e *Engine) Oversampling() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.over.Enabled()
}

// Mismatches returns the ignored oversampler pairing violations.
func (e *Engine) Mismatches() uint64 { return e.over.Mismatches() }

// PeakLevel returns the largest absolute output sample since the last call.
func (e *Engine) PeakLevel() float64 {
	return math.Float64frombits(e.peak.Swap(0))
}

// Suspend(true) stops Process from touching engine state and waits for an
// in-flight call to return. Suspended calls output silence.
func (e *Engine) Suspend(suspended bool) {
	e.suspended.Store(suspended)
	if !suspended {
		return
	}
	for e.inFlight.Load() != 0 {
		runtime.Gosched()
	}
}

// Suspended reports whether processing is suspended.
func (e *Engine) Suspended() bool { return e.suspended.Load() }

// Reconcile compares the HQ parameter with the oversampler and re-prepares
// inside a Suspend bracket when they disagree. It reports whether a
// reconfiguration happened.
func (e *Engine) Reconcile() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.prepared.Load() {
		return false, nil
	}
	want := e.HQRequested()
	if want == e.over.Enabled() {
		return false, nil
	}

	e.logger.Info("engine reconfiguring", slog.Bool("hq", want))
	e.Suspend(true)
	defer e.Suspend(false)
	if err := e.prepareLocked(e.sampleRate, e.maxBlock); err != nil {
		return true, err
	}
	return true, nil
}

// SupportsLayout reports whether a main bus of main channels (in equals out)
// and a sidechain bus of sidechain channels can be processed. A sidechain is
// only accepted when the feature is compiled in.
func (e *Engine) SupportsLayout(main, sidechain int) bool {
	if main < 1 || main > mix.MaxChannels {
		return false
	}
	if sidechain == 0 {
		return true
	}
	return e.set.Features().Sidechain && sidechain > 0 && sidechain <= mix.MaxChannels
}

func (e *Engine) enter() bool {
	e.inFlight.Add(1)
	if e.suspended.Load() {
		e.inFlight.Add(-1)
		return false
	}
	return true
}

func (e *Engine) exit() { e.inFlight.Add(-1) }

func numSamples(buf [][]float64) int {
	if len(buf) == 0 {
		return 0
	}
	n := len(buf[0])
	for _, ch := range buf[1:] {
		n = min(n, len(ch))
	}
	return n
}

func silence(buf [][]float64) {
	for _, ch := range buf {
		clear(ch)
	}
}

func (e *Engine) zeroExtraOutputs(buf [][]float64) {
	for ch := e.cfg.inChannels; ch < min(e.cfg.outChannels, len(buf)); ch++ {
		clear(buf[ch])
	}
}

func (e *Engine) midSide(numChannels int) bool {
	if numChannels != 2 {
		return false
	}
	p := e.set.Param(param.StereoConfig)
	return p != nil && p.ValMod() > 0.5
}

// Process renders buf in place. buf holds one slice per host channel; the
// first TotalInputChannels channels are processed (at most two) and output
// channels beyond them are zero-filled. midi offsets are relative to the
// start of buf and must be sorted.
func (e *Engine) Process(buf [][]float64, midi MidiBuffer) {
	if !e.prepared.Load() {
		return
	}
	if !e.enter() {
		silence(buf)
		return
	}
	defer e.exit()
	e.render(buf, midi)
}

func (e *Engine) render(buf [][]float64, midi MidiBuffer) {
	e.zeroExtraOutputs(buf)
	n := numSamples(buf)
	if n == 0 {
		return
	}
	numCh := min(len(buf), e.cfg.inChannels, mix.MaxChannels)

	mixP := e.set.Param(param.Mix)
	gainP := e.set.Param(param.GainOut)
	chunk := e.cfg.chunkSize
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		m := end - start
		view := e.chunk[:numCh]
		for ch := range view {
			view[ch] = buf[ch][start:end]
		}

		e.set.ProcessMacroMod()
		e.mixer.Split(view, numCh, m)
		ms := e.midSide(numCh)
		if ms {
			mix.EncodeMidSide(view[0], view[1])
		}
		up := e.over.Upsample(view, numCh, m)
		e.stage.Process(up.Channels, midi.Window(start, end), numCh, up.NumSamples)
		e.over.Downsample(view, m)
		if ms {
			mix.DecodeMidSide(view[0], view[1])
		}
		e.mixer.Join(view, gainP.ValModDenorm(), mixP.ValModDenorm(), numCh, m)
	}

	var peak float64
	for ch := range numCh {
		out := buf[ch][:n]
		if debugClip {
			for i, x := range out {
				out[i] = core.HardClip(x, 1)
			}
		}
		peak = max(peak, vecmath.MaxAbs(out))
	}
	e.storePeak(peak)
}

func (e *Engine) storePeak(v float64) {
	for {
		old := e.peak.Load()
		if math.Float64frombits(old) >= v {
			return
		}
		if e.peak.CompareAndSwap(old, math.Float64bits(v)) {
			return
		}
	}
}

// ProcessBypassed runs macro modulation and the stage's bypass path over buf
// with the same chunking as Process. Gain and mixing are not applied.
func (e *Engine) ProcessBypassed(buf [][]float64, midi MidiBuffer) {
	if !e.prepared.Load() || !e.enter() {
		return
	}
	defer e.exit()
	e.renderBypassed(buf, midi)
}

func (e *Engine) renderBypassed(buf [][]float64, midi MidiBuffer) {
	n := numSamples(buf)
	numCh := min(len(buf), e.cfg.inChannels, mix.MaxChannels)
	chunk := e.cfg.chunkSize
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		view := e.chunk[:numCh]
		for ch := range view {
			view[ch] = buf[ch][start:end]
		}
		e.set.ProcessMacroMod()
		e.stage.ProcessBypassed(view, midi.Window(start, end), numCh, end-start)
	}
}

// ProcessFloat32 widens buf into the scratch buffer, renders it and narrows
// the result back. Samples that survive processing unchanged round-trip
// bit-exactly.
func (e *Engine) ProcessFloat32(buf [][]float32, midi MidiBuffer) {
	if !e.prepared.Load() {
		return
	}
	if !e.enter() {
		for _, ch := range buf {
			clear(ch)
		}
		return
	}
	defer e.exit()
	e.scratch.LoadFloat32(buf)
	e.render(e.scratch.Channels(), midi)
	e.scratch.StoreFloat32(buf)
}

// ProcessBypassedFloat32 is the single-precision form of ProcessBypassed.
func (e *Engine) ProcessBypassedFloat32(buf [][]float32, midi MidiBuffer) {
	if !e.prepared.Load() || !e.enter() {
		return
	}
	defer e.exit()
	e.scratch.LoadFloat32(buf)
	e.renderBypassed(e.scratch.Channels(), midi)
	e.scratch.StoreFloat32(buf)
}
