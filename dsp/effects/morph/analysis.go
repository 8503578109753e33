package morph

import (
	"fmt"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-morphfilter/dsp/core"
	"github.com/cwbudde/algo-morphfilter/dsp/filter/secondorder"
	"github.com/cwbudde/algo-vecmath"
)

// Response is a magnitude response over the non-negative FFT bins.
type Response struct {
	SampleRate    float64
	FrequenciesHz []float64
	Magnitude     []float64
	MagnitudeDB   []float64
}

// MagnitudeAt returns the linear magnitude of the bin closest to freqHz.
func (r Response) MagnitudeAt(freqHz float64) float64 {
	if len(r.Magnitude) == 0 {
		return 0
	}
	binHz := r.SampleRate / float64(2*(len(r.Magnitude)-1))
	bin := int(freqHz/binHz + 0.5)
	bin = max(0, min(bin, len(r.Magnitude)-1))
	return r.Magnitude[bin]
}

// MeasureResponse renders an impulse of the given power-of-two size through
// a fresh mono engine set to p (unsmoothed, so the drive sits at its target)
// and returns the magnitude spectrum of the result.
func MeasureResponse(p Params, sampleRate float64, size int) (Response, error) {
	if size < 16 || size&(size-1) != 0 {
		return Response{}, fmt.Errorf("morph response size must be a power of two >= 16: %d", size)
	}

	store, err := NewStoreWith(p)
	if err != nil {
		return Response{}, err
	}

	e, err := NewEngine(store,
		WithChannels(1),
		WithSampleRate(sampleRate),
		WithMaxBlockSize(size),
		WithSmoothingFactor(1),
	)
	if err != nil {
		return Response{}, err
	}

	ir := make([]float64, size)
	ir[0] = 1
	e.Process([][]float64{ir})

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return Response{}, fmt.Errorf("morph response FFT plan: %w", err)
	}

	in := make([]complex128, size)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return Response{}, fmt.Errorf("morph response FFT: %w", err)
	}

	bins := size/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	r := Response{
		SampleRate:    sampleRate,
		FrequenciesHz: make([]float64, bins),
		Magnitude:     make([]float64, bins),
		MagnitudeDB:   make([]float64, bins),
	}
	vecmath.Magnitude(r.Magnitude, re, im)

	for k := range bins {
		r.FrequenciesHz[k] = float64(k) * sampleRate / float64(size)
		r.MagnitudeDB[k] = core.LinearToDB(r.Magnitude[k])
	}

	return r, nil
}

// ExpectedResponse returns the steady-state complex response of the effect
// at freqHz for parameters p: the blended filter response cross-faded with
// the dry path.
func ExpectedResponse(p Params, sampleRate, freqHz float64) complex128 {
	c := secondorder.Design(DriveFor(p.Frequency, p.Resonance), sampleRate)
	wet := c.BlendResponse(MorphToBlend(p.Morph).Weights(), freqHz, sampleRate)
	return wet*complex(p.Mix, 0) + complex(1-p.Mix, 0)
}

// ExpectedMagnitudeDB is 20*log10 of |ExpectedResponse|.
func ExpectedMagnitudeDB(p Params, sampleRate, freqHz float64) float64 {
	return core.LinearToDB(cmplx.Abs(ExpectedResponse(p, sampleRate, freqHz)))
}
