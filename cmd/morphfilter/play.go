package main

import (
	"context"
	"encoding/binary"
	"errors"
	"flag"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/cwbudde/algo-morphfilter/dsp/effects/morph"
	"github.com/hajimehoshi/oto/v2"
)

const (
	playChannels  = 2
	playBlockSize = 512
	// bytes per float32 sample
	sampleBytes = 4
)

func runPlay(args []string, logger *slog.Logger) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	pf := addParamFlags(fs)
	input := fs.String("input", "", "WAV file to loop (default: white noise)")
	rate := fs.Int("rate", 44100, "sample rate when playing noise")
	gain := fs.Float64("gain", 0.25, "noise level")
	duration := fs.Duration("duration", 10*time.Second, "playback length")
	period := fs.Duration("sweep-period", 0, "morph sweep period (0 keeps morph fixed)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *period < 0 {
		return errors.New("-sweep-period must not be negative")
	}

	store, err := pf.store(fs)
	if err != nil {
		return err
	}

	var src source = &noiseSource{rng: rand.New(rand.NewSource(1)), gain: float32(*gain)}
	sampleRate := *rate
	if *input != "" {
		c, err := readWAV(*input)
		if err != nil {
			return err
		}
		src = &loopSource{clip: c}
		sampleRate = c.sampleRate
	}

	engine, err := morph.NewEngine(store,
		morph.WithSampleRate(float64(sampleRate)),
		morph.WithChannels(playChannels),
		morph.WithMaxBlockSize(playBlockSize),
		morph.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	ctx, ready, err := oto.NewContext(sampleRate, playChannels, oto.FormatFloat32LE)
	if err != nil {
		return err
	}
	<-ready

	player := ctx.NewPlayer(newEngineReader(engine, src, playChannels, playBlockSize))
	defer player.Close()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	runCtx, cancel := context.WithTimeout(sigCtx, *duration)
	defer cancel()

	logger.Info("playing", "sample_rate", sampleRate, "duration", *duration, "sweep_period", *period)
	player.Play()

	if *period > 0 {
		go sweepMorph(runCtx, store, *period, 20*time.Millisecond, logger)
	}

	<-runCtx.Done()
	player.Pause()

	logger.Info("playback stopped")
	if err := player.Err(); err != nil {
		return err
	}
	return nil
}

// sweepMorph writes a raised-cosine morph sweep to store every tick until
// ctx is done. It is the control side; the player goroutine only reads.
func sweepMorph(ctx context.Context, store *morph.Store, period, tick time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := store.Set(morph.ParamMorph, sweepPosition(now.Sub(start), period)); err != nil {
				logger.Debug("morph sweep write failed", "error", err)
			}
		}
	}
}

// sweepPosition goes 0 -> 1 -> 0 once per period.
func sweepPosition(elapsed, period time.Duration) float64 {
	phase := float64(elapsed%period) / float64(period)
	return 0.5 - 0.5*math.Cos(2*math.Pi*phase)
}

// source fills planar float32 blocks with input audio.
type source interface {
	Fill(buf [][]float32)
}

type noiseSource struct {
	rng  *rand.Rand
	gain float32
}

func (s *noiseSource) Fill(buf [][]float32) {
	for i := range buf[0] {
		v := s.gain * (2*s.rng.Float32() - 1)
		for ch := range buf {
			buf[ch][i] = v
		}
	}
}

// loopSource repeats a clip, mapping missing channels to the clip's last one.
type loopSource struct {
	clip *clip
	pos  int
}

func (s *loopSource) Fill(buf [][]float32) {
	frames := s.clip.samples.Frames()
	if frames == 0 {
		for ch := range buf {
			clear(buf[ch])
		}
		return
	}

	last := s.clip.samples.NumChannels() - 1
	for i := range buf[0] {
		for ch := range buf {
			buf[ch][i] = float32(s.clip.samples.Channel(min(ch, last))[s.pos])
		}
		s.pos = (s.pos + 1) % frames
	}
}

// engineReader renders the engine block by block into interleaved float32
// little-endian bytes for the audio device.
type engineReader struct {
	engine  *morph.Engine
	src     source
	block   [][]float32
	out     []byte
	pending []byte
}

func newEngineReader(engine *morph.Engine, src source, channels, blockSize int) *engineReader {
	block := make([][]float32, channels)
	for ch := range block {
		block[ch] = make([]float32, blockSize)
	}
	return &engineReader{
		engine: engine,
		src:    src,
		block:  block,
		out:    make([]byte, channels*blockSize*sampleBytes),
	}
}

func (r *engineReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(r.pending) == 0 {
			r.render()
		}
		c := copy(p[n:], r.pending)
		r.pending = r.pending[c:]
		n += c
	}
	return n, nil
}

func (r *engineReader) render() {
	r.src.Fill(r.block)
	r.engine.ProcessFloat32(r.block)

	nch := len(r.block)
	for i := range r.block[0] {
		for ch, samples := range r.block {
			off := (i*nch + ch) * sampleBytes
			binary.LittleEndian.PutUint32(r.out[off:], math.Float32bits(samples[i]))
		}
	}
	r.pending = r.out
}
