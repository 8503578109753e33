package main

import (
	"errors"
	"flag"
	"log/slog"

	"github.com/cwbudde/algo-morphfilter/dsp/buffer"
	"github.com/cwbudde/algo-morphfilter/dsp/core"
	"github.com/cwbudde/algo-morphfilter/dsp/effects/morph"
)

func runRender(args []string, logger *slog.Logger) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	pf := addParamFlags(fs)
	blockSize := fs.Int("block", 512, "host block size in frames")
	sweep := fs.Bool("sweep", false, "automate morph from 0 to 1 across the file")
	bits := fs.Int("bits", 0, "output bit depth: 16, 24 or 32 (0 keeps the input depth)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.New("render needs an input and an output WAV path")
	}

	store, err := pf.store(fs)
	if err != nil {
		return err
	}

	in, err := readWAV(fs.Arg(0))
	if err != nil {
		return err
	}
	logger.Info("input loaded",
		"path", fs.Arg(0),
		"channels", in.samples.NumChannels(),
		"frames", in.samples.Frames(),
		"sample_rate", in.sampleRate,
		"bit_depth", in.bitDepth,
	)

	out, err := renderClip(in, store, *blockSize, *sweep, logger)
	if err != nil {
		return err
	}

	depth := *bits
	if depth == 0 {
		depth = in.bitDepth
	}
	if err := writeWAV(fs.Arg(1), out, depth); err != nil {
		return err
	}

	logger.Info("output written", "path", fs.Arg(1), "frames", out.samples.Frames(), "bit_depth", depth)

	return nil
}

// renderClip filters c in host-sized blocks and returns a new clip extended
// by the effect's tail. With sweep set, morph is written to the store before
// each block the way a host would automate it.
func renderClip(c *clip, store *morph.Store, blockSize int, sweep bool, logger *slog.Logger) (*clip, error) {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(float64(c.sampleRate)),
		core.WithChannels(c.samples.NumChannels()),
		core.WithBlockSize(blockSize),
	)

	engine, err := morph.NewEngine(store, morph.WithProcessorConfig(cfg), morph.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	frames := c.samples.Frames()
	total := frames + engine.TailSamples()

	out := buffer.NewPlanar(c.samples.NumChannels(), total)
	for ch := range out.NumChannels() {
		copy(out.Channel(ch), c.samples.Channel(ch))
	}

	window := make([][]float64, out.NumChannels())
	for start := 0; start < total; start += cfg.BlockSize {
		end := min(start+cfg.BlockSize, total)
		if sweep && total > 1 {
			if err := store.SetEngineering(morph.ParamMorph, float64(start)/float64(total-1)); err != nil {
				return nil, err
			}
		}
		engine.Process(out.Window(window, start, end))
	}

	return &clip{sampleRate: c.sampleRate, bitDepth: c.bitDepth, samples: out}, nil
}
