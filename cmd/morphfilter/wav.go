package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/algo-morphfilter/dsp/buffer"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavFormatPCM is the WAVE_FORMAT_PCM format tag.
const wavFormatPCM = 1

// clip is decoded audio held as planar float64 samples in [-1, 1).
type clip struct {
	sampleRate int
	bitDepth   int
	samples    *buffer.Planar
}

func readWAV(path string) (*clip, error) {
	expanded, err := expandPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(expanded)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("%s: not a valid WAV file", path)
	}

	ib, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	bitDepth := int(d.BitDepth)
	if err := checkBitDepth(bitDepth); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	nch := ib.Format.NumChannels
	if nch <= 0 {
		return nil, fmt.Errorf("%s: no channels", path)
	}

	frames := len(ib.Data) / nch
	scale := pcmScale(bitDepth)

	interleaved := make([]float64, frames*nch)
	for i := range interleaved {
		interleaved[i] = float64(ib.Data[i]) / scale
	}

	p := buffer.NewPlanar(nch, frames)
	if err := p.Deinterleave(interleaved); err != nil {
		return nil, err
	}

	return &clip{sampleRate: ib.Format.SampleRate, bitDepth: bitDepth, samples: p}, nil
}

func writeWAV(path string, c *clip, bitDepth int) error {
	if err := checkBitDepth(bitDepth); err != nil {
		return err
	}

	nch := c.samples.NumChannels()
	interleaved := make([]float64, nch*c.samples.Frames())
	if err := c.samples.Interleave(interleaved); err != nil {
		return err
	}

	scale := pcmScale(bitDepth)
	data := make([]int, len(interleaved))
	for i, v := range interleaved {
		data[i] = quantize(v, scale)
	}

	expanded, err := expandPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(expanded)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, c.sampleRate, bitDepth, nch, wavFormatPCM)
	ib := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: nch, SampleRate: c.sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(ib); err != nil {
		return errors.Join(err, f.Close())
	}
	if err := enc.Close(); err != nil {
		return errors.Join(err, f.Close())
	}

	return f.Close()
}

func checkBitDepth(bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("unsupported PCM bit depth %d (want 16, 24 or 32)", bitDepth)
	}
}

func pcmScale(bitDepth int) float64 {
	return float64(int64(1) << (bitDepth - 1))
}

// quantize rounds v to a signed PCM code, saturating at full scale.
func quantize(v, scale float64) int {
	if math.IsNaN(v) {
		return 0
	}
	q := math.Round(v * scale)
	if q > scale-1 {
		q = scale - 1
	}
	if q < -scale {
		q = -scale
	}
	return int(q)
}
