package morph

import (
	"math"

	"github.com/cwbudde/algo-morphfilter/dsp/core"
	"github.com/cwbudde/algo-morphfilter/dsp/filter/secondorder"
)

// Epsilon keeps the damping finite at zero resonance.
const Epsilon = 2.220446049250313e-16

// NormalizedToFrequency maps v in [0, 1] to [MinFrequency, MaxFrequency] on a
// logarithmic scale.
func NormalizedToFrequency(v float64) float64 {
	return MinFrequency * math.Pow(MaxFrequency/MinFrequency, v)
}

// FrequencyToNormalized is the inverse of NormalizedToFrequency.
func FrequencyToNormalized(hz float64) float64 {
	return math.Log(hz/MinFrequency) / math.Log(MaxFrequency/MinFrequency)
}

// NormalizedToResonance maps v in [0, 1] to [MinResonance, MaxResonance]
// through a fourth-power curve, giving finer control at low resonance.
func NormalizedToResonance(v float64) float64 {
	v2 := v * v
	return MinResonance + (MaxResonance-MinResonance)*v2*v2
}

// ResonanceToNormalized is the inverse of NormalizedToResonance.
func ResonanceToNormalized(q float64) float64 {
	return math.Sqrt(math.Sqrt((q - MinResonance) / (MaxResonance - MinResonance)))
}

// NormalizedToEngineering maps a host value of parameter id to engineering
// units. Morph and mix are linear over [0, 1]. The input is not clamped.
func NormalizedToEngineering(id ParamID, v float64) float64 {
	switch id {
	case ParamFrequency:
		return NormalizedToFrequency(v)
	case ParamResonance:
		return NormalizedToResonance(v)
	case ParamMorph, ParamMix:
		return v
	default:
		return math.NaN()
	}
}

// EngineeringToNormalized maps an engineering value of parameter id back to
// the host range. The input is not clamped.
func EngineeringToNormalized(id ParamID, v float64) float64 {
	switch id {
	case ParamFrequency:
		return FrequencyToNormalized(v)
	case ParamResonance:
		return ResonanceToNormalized(v)
	case ParamMorph, ParamMix:
		return v
	default:
		return math.NaN()
	}
}

// Blend holds the weights applied to the filter's low-pass, peak and
// high-pass outputs. For morph in [0, 1] the weights are non-negative and
// sum to 1.
type Blend struct {
	Low, Peak, High float64
}

// Weights returns the blend indexed like the filter outputs.
func (b Blend) Weights() [secondorder.NumOutputs]float64 {
	return [secondorder.NumOutputs]float64{
		secondorder.LowPass:  b.Low,
		secondorder.Peak:     b.Peak,
		secondorder.HighPass: b.High,
	}
}

// Apply returns the weighted sum of the filter outputs y.
func (b Blend) Apply(y [secondorder.NumOutputs]float64) float64 {
	return y[secondorder.LowPass]*b.Low + y[secondorder.Peak]*b.Peak + y[secondorder.HighPass]*b.High
}

// MorphToBlend maps morph in [0, 1] to blend weights. The first half
// cross-fades low-pass into peak, the second half peak into high-pass:
// 0 is pure low-pass, 0.5 pure peak and 1 pure high-pass.
func MorphToBlend(morph float64) Blend {
	f := 2 * morph
	if f >= 1 {
		return Blend{Low: 0, Peak: 2 - f, High: f - 1}
	}
	return Blend{Low: 1 - f, Peak: f, High: 0}
}

// DriveFor returns the filter drive for a cutoff in Hz and a resonance Q.
// Zero resonance yields a very large but finite damping.
func DriveFor(frequencyHz, resonance float64) secondorder.Drive {
	return secondorder.Drive{
		Omega: 2 * math.Pi * frequencyHz,
		Zeta:  0.5 / (resonance + Epsilon),
	}
}

func clampParam(id ParamID, v float64) float64 {
	lo, hi, err := Range(id)
	if err != nil {
		return v
	}
	return core.Clamp(v, lo, hi)
}
