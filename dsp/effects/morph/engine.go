package morph

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-morphfilter/dsp/core"
	"github.com/cwbudde/algo-morphfilter/dsp/filter/secondorder"
	"github.com/cwbudde/algo-vecmath"
)

// tailSamples is how long the filter keeps ringing audibly after the input
// stops, as reported to hosts.
const tailSamples = 2

// Sample is the set of storage precisions Process accepts. Computation is
// always done in float64.
type Sample interface {
	~float32 | ~float64
}

// EngineOption mutates engine construction parameters.
type EngineOption func(*engineConfig) error

type engineConfig struct {
	proc         core.ProcessorConfig
	smoothing    float64
	perSample    bool
	newPrimitive func() Primitive
	logger       *slog.Logger
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		proc:      core.DefaultProcessorConfig(),
		smoothing: DefaultSmoothingFactor,
	}
}

// WithProcessorConfig sets sample rate, channel count and block size at once.
func WithProcessorConfig(cfg core.ProcessorConfig) EngineOption {
	return func(ec *engineConfig) error {
		if err := validateSampleRate(cfg.SampleRate); err != nil {
			return err
		}
		if cfg.Channels <= 0 {
			return fmt.Errorf("morph engine channel count must be > 0: %d", cfg.Channels)
		}
		if cfg.BlockSize <= 0 {
			return fmt.Errorf("morph engine block size must be > 0: %d", cfg.BlockSize)
		}

		ec.proc = cfg

		return nil
	}
}

// WithSampleRate sets the initial sample rate in Hz.
func WithSampleRate(sampleRate float64) EngineOption {
	return func(ec *engineConfig) error {
		if err := validateSampleRate(sampleRate); err != nil {
			return err
		}

		ec.proc.SampleRate = sampleRate

		return nil
	}
}

// WithChannels sets the number of independently filtered channels.
func WithChannels(channels int) EngineOption {
	return func(ec *engineConfig) error {
		if channels <= 0 {
			return fmt.Errorf("morph engine channel count must be > 0: %d", channels)
		}

		ec.proc.Channels = channels

		return nil
	}
}

// WithMaxBlockSize sets the scratch size. Longer blocks are processed in
// several passes without affecting the result.
func WithMaxBlockSize(blockSize int) EngineOption {
	return func(ec *engineConfig) error {
		if blockSize <= 0 {
			return fmt.Errorf("morph engine block size must be > 0: %d", blockSize)
		}

		ec.proc.BlockSize = blockSize

		return nil
	}
}

// WithSmoothingFactor sets the drive smoothing factor in (0, 1]. 1 disables
// smoothing.
func WithSmoothingFactor(factor float64) EngineOption {
	return func(ec *engineConfig) error {
		if factor <= 0 || factor > 1 || math.IsNaN(factor) {
			return fmt.Errorf("morph engine smoothing factor must be in (0, 1]: %f", factor)
		}

		ec.smoothing = factor

		return nil
	}
}

// WithPerSampleSmoothing advances the drive once per sample instead of once
// per block. This tracks automation with lower latency on large blocks at
// the cost of recomputing filter coefficients every sample.
func WithPerSampleSmoothing(enabled bool) EngineOption {
	return func(ec *engineConfig) error {
		ec.perSample = enabled
		return nil
	}
}

// WithPrimitiveFactory sets the constructor used for each channel's filter.
func WithPrimitiveFactory(newPrimitive func() Primitive) EngineOption {
	return func(ec *engineConfig) error {
		if newPrimitive == nil {
			return errors.New("morph engine primitive factory must not be nil")
		}

		ec.newPrimitive = newPrimitive

		return nil
	}
}

// WithLogger sets the logger for lifecycle events. The render path never
// logs.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(ec *engineConfig) error {
		ec.logger = logger
		return nil
	}
}

// Engine renders audio through per-channel morphing filters driven by a
// shared Store. Process, SetSampleRate and Suspend must be called from the
// same goroutine (the render side); the Store may be written concurrently.
type Engine struct {
	store *Store

	sampleRate float64
	blockSize  int
	smoothing  float64
	perSample  bool

	channels []*Channel

	wet []float64
	dry []float64

	logger *slog.Logger
}

// NewEngine creates an engine reading its parameters from store.
func NewEngine(store *Store, opts ...EngineOption) (*Engine, error) {
	if store == nil {
		return nil, errors.New("morph engine store must not be nil")
	}

	cfg := defaultEngineConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	e := &Engine{
		store:      store,
		sampleRate: cfg.proc.SampleRate,
		blockSize:  cfg.proc.BlockSize,
		smoothing:  cfg.smoothing,
		perSample:  cfg.perSample,
		channels:   make([]*Channel, cfg.proc.Channels),
		wet:        make([]float64, cfg.proc.BlockSize),
		dry:        make([]float64, cfg.proc.BlockSize),
		logger:     logger,
	}

	for ch := range e.channels {
		var p Primitive
		if cfg.newPrimitive != nil {
			p = cfg.newPrimitive()
		}
		e.channels[ch] = NewChannel(p)
	}

	e.logger.Debug("morph engine created",
		"channels", len(e.channels),
		"sample_rate", e.sampleRate,
		"block_size", e.blockSize,
		"smoothing", e.smoothing,
		"per_sample", e.perSample,
	)

	return e, nil
}

// Store returns the parameter store the engine reads.
func (e *Engine) Store() *Store { return e.store }

// SampleRate returns the sample rate used for filtering in Hz.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// Channels returns the number of filtered channels.
func (e *Engine) Channels() int { return len(e.channels) }

// Channel returns the filter state of channel ch.
func (e *Engine) Channel(ch int) *Channel { return e.channels[ch] }

// SmoothingFactor returns the drive smoothing factor.
func (e *Engine) SmoothingFactor() float64 { return e.smoothing }

// TailSamples returns the number of samples the effect keeps producing
// output after silent input.
func (e *Engine) TailSamples() int { return tailSamples }

// SetSampleRate changes the rate used by the next Process call. Smoothed
// drives and filter history are kept.
func (e *Engine) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate(sampleRate); err != nil {
		return err
	}

	e.logger.Debug("morph engine sample rate changed", "from", e.sampleRate, "to", sampleRate)
	e.sampleRate = sampleRate

	return nil
}

// Suspend clears the history of every channel so no residual energy is
// carried into the next stream. Drives are kept.
func (e *Engine) Suspend() {
	for _, c := range e.channels {
		c.Reset()
	}

	e.logger.Debug("morph engine suspended", "channels", len(e.channels))
}

// Process filters buf in place. buf holds one slice per channel; channels
// beyond Channels() are left untouched.
func (e *Engine) Process(buf [][]float64) {
	ProcessTo(e, buf, buf)
}

// ProcessFloat32 filters single-precision buf in place.
func (e *Engine) ProcessFloat32(buf [][]float32) {
	ProcessTo(e, buf, buf)
}

// ProcessTo filters src into dst. dst and src may be the same buffer. For
// each channel min(len(dst[ch]), len(src[ch])) samples are produced.
// Channels beyond Channels() are copied from src unchanged.
//
// All samples of the call use one parameter snapshot: the target drive and
// blend weights are computed once, then each channel's drive is advanced
// once before its first sample (or once per sample with per-sample
// smoothing enabled).
func ProcessTo[F Sample](e *Engine, dst, src [][]F) {
	p := e.store.Snapshot()
	blend := MorphToBlend(p.Morph)
	target := DriveFor(p.Frequency, p.Resonance)

	n := min(len(dst), len(src), len(e.channels))

	for ch := range n {
		c := e.channels[ch]
		out, in := dst[ch], src[ch]
		frames := min(len(out), len(in))

		if !e.perSample {
			c.Advance(target, e.smoothing)
		}

		for start := 0; start < frames; start += e.blockSize {
			end := min(start+e.blockSize, frames)
			renderChunk(e, c, out[start:end], in[start:end], blend, target, p.Mix)
		}
	}

	for ch := n; ch < min(len(dst), len(src)); ch++ {
		copy(dst[ch], src[ch])
	}
}

func renderChunk[F Sample](e *Engine, c *Channel, out, in []F, blend Blend, target secondorder.Drive, mix float64) {
	wet := e.wet[:len(in)]
	dry := e.dry[:len(in)]

	for i, s := range in {
		x := float64(s)
		if e.perSample {
			c.Advance(target, e.smoothing)
		}

		dry[i] = x
		wet[i] = blend.Apply(c.FilterSample(e.sampleRate, x))
	}

	// Fully dry output must not pick up NaN or Inf from the filter history.
	if mix == 0 {
		for i, x := range dry {
			out[i] = F(x)
		}
		return
	}

	// out = wet*mix + dry*(1-mix)
	vecmath.ScaleBlockInPlace(wet, mix)
	vecmath.ScaleBlockInPlace(dry, 1-mix)
	vecmath.AddBlockInPlace(wet, dry)

	for i, y := range wet {
		out[i] = F(y)
	}
}

func validateSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("morph engine sample rate must be > 0 and finite: %f", sampleRate)
	}
	return nil
}
