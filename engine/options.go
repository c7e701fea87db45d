package engine

import "log/slog"

// BlockSize is the sub-block length the pipeline processes at once.
const BlockSize = 32

type config struct {
	chunkSize   int
	stage       Stage
	logger      *slog.Logger
	host        Host
	inChannels  int
	outChannels int
}

func defaultConfig() config {
	return config{
		chunkSize:   BlockSize,
		inChannels:  2,
		outChannels: 2,
	}
}

// Option configures an Engine.
type Option func(*config)

// WithChunkSize overrides BlockSize. Values below 1 are ignored.
func WithChunkSize(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.chunkSize = n
		}
	}
}

// WithStage replaces the default slew stage.
func WithStage(s Stage) Option {
	return func(cfg *config) {
		cfg.stage = s
	}
}

// WithLogger sets the logger used on control-thread paths.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}

// WithHost routes latency and parameter notifications to h.
func WithHost(h Host) Option {
	return func(cfg *config) {
		cfg.host = h
	}
}

// WithChannels sets the total input and output channel counts of the host
// bus layout. Output channels beyond the input count are zero-filled.
func WithChannels(in, out int) Option {
	return func(cfg *config) {
		if in > 0 {
			cfg.inChannels = in
		}
		if out > 0 {
			cfg.outChannels = out
		}
	}
}
