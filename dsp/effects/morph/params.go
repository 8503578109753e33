package morph

import (
	"errors"
	"fmt"
	"math"
)

// ParamID identifies one of the effect's parameters by host index.
type ParamID int

const (
	ParamMorph ParamID = iota
	ParamFrequency
	ParamResonance
	ParamMix

	NumParams
)

// Parameter ranges in engineering units.
const (
	MinMorph = 0.0
	MaxMorph = 1.0

	MinFrequency = 20.0
	MaxFrequency = 20000.0

	MinResonance   = 0.0
	MaxResonance   = 20.0
	ResonanceCurve = 4.0

	MinMix = 0.0
	MaxMix = 1.0
)

// Defaults used for a fresh store and for fields missing from a bank.
const (
	DefaultMorph     = 0.0
	DefaultFrequency = 880.0
	DefaultResonance = math.Sqrt2 / 2
	DefaultMix       = 1.0
)

var (
	// ErrNoSuchParameter is returned for a ParamID outside [0, NumParams).
	ErrNoSuchParameter = errors.New("morph: no such parameter")
	// ErrInvalidValue is returned for NaN or infinite parameter values.
	ErrInvalidValue = errors.New("morph: parameter value must be finite")
)

// Valid reports whether id names an existing parameter.
func (id ParamID) Valid() bool {
	return id >= 0 && id < NumParams
}

func (id ParamID) String() string {
	switch id {
	case ParamMorph:
		return "morph"
	case ParamFrequency:
		return "frequency"
	case ParamResonance:
		return "resonance"
	case ParamMix:
		return "mix"
	default:
		return fmt.Sprintf("ParamID(%d)", int(id))
	}
}

// Range returns the inclusive engineering-unit range of id.
func Range(id ParamID) (lo, hi float64, err error) {
	switch id {
	case ParamMorph:
		return MinMorph, MaxMorph, nil
	case ParamFrequency:
		return MinFrequency, MaxFrequency, nil
	case ParamResonance:
		return MinResonance, MaxResonance, nil
	case ParamMix:
		return MinMix, MaxMix, nil
	default:
		return 0, 0, fmt.Errorf("%w: %d", ErrNoSuchParameter, int(id))
	}
}

// Params is a snapshot of all parameters in engineering units.
type Params struct {
	Morph     float64
	Frequency float64
	Resonance float64
	Mix       float64
}

// DefaultParams returns low-pass at 880 Hz, Butterworth resonance, fully wet.
func DefaultParams() Params {
	return Params{
		Morph:     DefaultMorph,
		Frequency: DefaultFrequency,
		Resonance: DefaultResonance,
		Mix:       DefaultMix,
	}
}

// Get returns the value of parameter id, or NaN for an unknown id.
func (p Params) Get(id ParamID) float64 {
	switch id {
	case ParamMorph:
		return p.Morph
	case ParamFrequency:
		return p.Frequency
	case ParamResonance:
		return p.Resonance
	case ParamMix:
		return p.Mix
	default:
		return math.NaN()
	}
}

func (p *Params) set(id ParamID, v float64) {
	switch id {
	case ParamMorph:
		p.Morph = v
	case ParamFrequency:
		p.Frequency = v
	case ParamResonance:
		p.Resonance = v
	case ParamMix:
		p.Mix = v
	}
}

// Validate returns ErrInvalidValue if any field is NaN or infinite.
func (p Params) Validate() error {
	for id := range NumParams {
		v := p.Get(id)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidValue, id, v)
		}
	}
	return nil
}

// Clamped returns p with every field limited to its range.
func (p Params) Clamped() Params {
	var out Params
	for id := range NumParams {
		out.set(id, clampParam(id, p.Get(id)))
	}
	return out
}
