package buffer

// Buffer is a planar multichannel float64 buffer backed by one contiguous
// allocation. Channel views are re-sliced in place, so resizing within the
// allocated capacity never allocates.
type Buffer struct {
	data       []float64
	views      [][]float64
	chanCap    int
	numSamples int
}

// New returns a zero-filled Buffer with numChannels channels of numSamples
// samples each.
func New(numChannels, numSamples int) *Buffer {
	if numChannels < 0 {
		numChannels = 0
	}
	if numSamples < 0 {
		numSamples = 0
	}
	b := &Buffer{}
	b.allocate(numChannels, numSamples)
	return b
}

func (b *Buffer) allocate(numChannels, chanCap int) {
	b.data = make([]float64, numChannels*chanCap)
	b.views = make([][]float64, numChannels, numChannels)
	b.chanCap = chanCap
	b.numSamples = chanCap
	b.reslice(numChannels)
}

func (b *Buffer) reslice(numChannels int) {
	b.views = b.views[:numChannels]
	for ch := range b.views {
		start := ch * b.chanCap
		b.views[ch] = b.data[start : start+b.numSamples : start+b.chanCap]
	}
}

// NumChannels returns the current channel count.
func (b *Buffer) NumChannels() int {
	return len(b.views)
}

// NumSamples returns the current per-channel length.
func (b *Buffer) NumSamples() int {
	return b.numSamples
}

// Cap returns the per-channel sample capacity.
func (b *Buffer) Cap() int {
	return b.chanCap
}

// MaxChannels returns the channel capacity.
func (b *Buffer) MaxChannels() int {
	return cap(b.views)
}

// Channel returns the sample view of channel ch.
func (b *Buffer) Channel(ch int) []float64 {
	return b.views[ch]
}

// Channels returns all channel views. The returned slice aliases the buffer.
func (b *Buffer) Channels() [][]float64 {
	return b.views
}

// SetSize changes the shape to numChannels x numSamples. When the request fits
// the current capacity the existing storage is reused and no allocation
// happens; sample contents are then left as they are. Growing beyond capacity
// reallocates and zero-fills, keeping existing samples when keep is set.
func (b *Buffer) SetSize(numChannels, numSamples int, keep bool) {
	if numChannels < 0 {
		numChannels = 0
	}
	if numSamples < 0 {
		numSamples = 0
	}

	if numChannels <= cap(b.views) && numSamples <= b.chanCap {
		b.numSamples = numSamples
		b.reslice(numChannels)
		return
	}

	old := b.views
	oldLen := b.numSamples

	newChans := max(numChannels, cap(b.views))
	newCap := max(numSamples, b.chanCap)
	b.data = make([]float64, newChans*newCap)
	b.views = make([][]float64, numChannels, newChans)
	b.chanCap = newCap
	b.numSamples = numSamples
	b.reslice(numChannels)

	if !keep {
		return
	}
	for ch := 0; ch < len(old) && ch < numChannels; ch++ {
		copy(b.views[ch], old[ch][:oldLen])
	}
}

// Zero clears all visible samples.
func (b *Buffer) Zero() {
	for _, ch := range b.views {
		clear(ch)
	}
}

// ZeroRange clears samples in [start, end) on every channel.
// Indices are clamped to valid bounds.
func (b *Buffer) ZeroRange(start, end int) {
	if start < 0 {
		start = 0
	}
	if end > b.numSamples {
		end = b.numSamples
	}
	if start >= end {
		return
	}
	for _, ch := range b.views {
		clear(ch[start:end])
	}
}

// LoadFloat32 resizes the buffer to the shape of src and widens every sample
// to float64. Channel order and values are preserved exactly.
func (b *Buffer) LoadFloat32(src [][]float32) {
	numSamples := 0
	if len(src) > 0 {
		numSamples = len(src[0])
	}
	b.SetSize(len(src), numSamples, false)
	for ch, s := range src {
		Widen(b.views[ch], s)
	}
}

// StoreFloat32 narrows the buffer contents into dst, channel by channel.
func (b *Buffer) StoreFloat32(dst [][]float32) {
	for ch := 0; ch < len(dst) && ch < len(b.views); ch++ {
		Narrow(dst[ch], b.views[ch])
	}
}

// Widen converts src into dst and returns the number of converted samples.
func Widen(dst []float64, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float64(src[i])
	}
	return n
}

// Narrow converts src into dst with float32 rounding and returns the number
// of converted samples.
func Narrow(dst []float32, src []float64) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float32(src[i])
	}
	return n
}
