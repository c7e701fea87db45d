package main

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/cwbudde/algo-slew/automation"
	"github.com/cwbudde/algo-slew/engine"
)

const numChannels = 2

// source fills planar stereo frames and returns how many it wrote.
type source interface {
	Read(dst [][]float32) (int, error)
}

// tone is a generated test signal. A negative length never ends.
type tone struct {
	phase     float64
	inc       float64
	amp       float64
	square    bool
	remaining int64
}

func newTone(hz, sampleRate, amp float64, square bool, frames int64) *tone {
	return &tone{inc: hz / sampleRate, amp: amp, square: square, remaining: frames}
}

func (t *tone) Read(dst [][]float32) (int, error) {
	if t.remaining == 0 {
		return 0, io.EOF
	}
	n := len(dst[0])
	if t.remaining > 0 {
		n = int(min(int64(n), t.remaining))
		t.remaining -= int64(n)
	}
	for i := range n {
		var v float64
		if t.square {
			v = t.amp
			if t.phase >= 0.5 {
				v = -t.amp
			}
		} else {
			v = t.amp * math.Sin(2*math.Pi*t.phase)
		}
		for ch := range dst {
			dst[ch][i] = float32(v)
		}
		t.phase += t.inc
		t.phase -= math.Floor(t.phase)
	}
	return n, nil
}

// rawReader decodes interleaved stereo float32 little endian.
type rawReader struct {
	r   *bufio.Reader
	tmp []byte
}

func newRawReader(r io.Reader) *rawReader {
	return &rawReader{r: bufio.NewReader(r)}
}

func (rr *rawReader) Read(dst [][]float32) (int, error) {
	frame := 4 * numChannels
	need := len(dst[0]) * frame
	if cap(rr.tmp) < need {
		rr.tmp = make([]byte, need)
	}
	buf := rr.tmp[:need]
	got, err := io.ReadFull(rr.r, buf)
	n := got / frame
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = nil
	}
	if n == 0 && err == nil {
		err = io.EOF
	}
	deinterleave(dst, buf[:n*frame])
	return n, err
}

func deinterleave(dst [][]float32, src []byte) {
	frame := 4 * len(dst)
	for i := 0; i*frame < len(src); i++ {
		for ch := range dst {
			off := i*frame + 4*ch
			dst[ch][i] = math.Float32frombits(binary.LittleEndian.Uint32(src[off:]))
		}
	}
}

func interleave(dst []byte, src [][]float32, n int) {
	frame := 4 * len(src)
	for i := range n {
		for ch := range src {
			binary.LittleEndian.PutUint32(dst[i*frame+4*ch:], math.Float32bits(src[ch][i]))
		}
	}
}

// renderer pulls blocks from a source through the engine.
type renderer struct {
	engine    *engine.Engine
	src       source
	lanes     *automation.Player
	reconcile bool
	block     [][]float32
	view      [][]float32
	pos       int64
}

func newRenderer(e *engine.Engine, src source, blockSize int) *renderer {
	r := &renderer{
		engine: e,
		src:    src,
		block:  make([][]float32, numChannels),
		view:   make([][]float32, numChannels),
	}
	for ch := range r.block {
		r.block[ch] = make([]float32, blockSize)
	}
	return r
}

// next renders up to limit frames, at most one block, and returns the
// planar result.
func (r *renderer) next(limit int) ([][]float32, error) {
	limit = min(limit, len(r.block[0]))
	for ch := range r.view {
		r.view[ch] = r.block[ch][:limit]
	}
	n, err := r.src.Read(r.view)
	if n == 0 {
		return nil, err
	}
	if r.lanes != nil {
		r.lanes.Advance(r.pos + 1)
	}
	if r.reconcile {
		if _, rerr := r.engine.Reconcile(); rerr != nil {
			return nil, rerr
		}
	}
	for ch := range r.view {
		r.view[ch] = r.block[ch][:n]
	}
	r.engine.ProcessFloat32(r.view, nil)
	r.pos += int64(n)
	return r.view, err
}

// writeTo renders the whole source into w.
func (r *renderer) writeTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	out := make([]byte, len(r.block[0])*4*numChannels)
	var frames int64
	for {
		block, err := r.next(len(r.block[0]))
		if len(block) > 0 {
			n := len(block[0])
			interleave(out, block, n)
			if _, werr := bw.Write(out[:n*4*numChannels]); werr != nil {
				return frames, werr
			}
			frames += int64(n)
		}
		if errors.Is(err, io.EOF) {
			return frames, bw.Flush()
		}
		if err != nil {
			return frames, err
		}
	}
}
