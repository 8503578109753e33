package secondorder

import (
	"math"

	"github.com/cwbudde/algo-morphfilter/dsp/core"
)

// Output indexes the responses returned by [Section.ProcessSample].
const (
	LowPass = iota
	Peak
	HighPass

	NumOutputs
)

// Drive is the angular frequency (rad/s) and damping factor pair that
// places the section's poles.
type Drive struct {
	Omega float64
	Zeta  float64
}

// DefaultDrive is 880 Hz with Butterworth damping (1/sqrt(2)).
var DefaultDrive = Drive{Omega: 2 * math.Pi * 880, Zeta: math.Sqrt2 / 2}

// Section is a stateful second-order filter producing low-pass, peak and
// high-pass outputs simultaneously.
type Section struct {
	drive Drive
	rate  float64
	stale bool

	// k = 2*zeta; a1..a3 are the trapezoidal solve coefficients.
	k, a1, a2, a3 float64

	ic1eq, ic2eq float64
}

// NewSection returns a Section driven by d with zero state. Coefficients are
// computed on the first ProcessSample call, once the sample rate is known.
func NewSection(d Drive) *Section {
	return &Section{drive: d, stale: true}
}

// Drive returns the drive the section is currently set to.
func (s *Section) Drive() Drive {
	return s.drive
}

// SetDrive changes the pole placement. The integrator state is kept so the
// response changes without a discontinuity.
func (s *Section) SetDrive(d Drive) {
	if d == s.drive {
		return
	}
	s.drive = d
	s.stale = true
}

// ProcessSample filters one input sample at the given sample rate and
// returns the [LowPass, Peak, HighPass] outputs.
func (s *Section) ProcessSample(sampleRate, x float64) [NumOutputs]float64 {
	if s.stale || sampleRate != s.rate {
		s.update(sampleRate)
	}

	v3 := x - s.ic2eq
	v1 := s.a1*s.ic1eq + s.a2*v3
	v2 := s.ic2eq + s.a2*s.ic1eq + s.a3*v3

	s.ic1eq = core.FlushDenormals(2*v1 - s.ic1eq)
	s.ic2eq = core.FlushDenormals(2*v2 - s.ic2eq)

	peak := s.k * v1

	return [NumOutputs]float64{v2, peak, x - peak - v2}
}

func (s *Section) update(sampleRate float64) {
	g := s.drive.Omega / (2 * sampleRate)
	s.k = 2 * s.drive.Zeta
	s.a1 = 1 / (1 + g*(g+s.k))
	s.a2 = g * s.a1
	s.a3 = g * s.a2
	s.rate = sampleRate
	s.stale = false
}

// Reset clears the integrator state. Drive and sample rate are kept.
func (s *Section) Reset() {
	s.ic1eq = 0
	s.ic2eq = 0
}

// State returns the current integrator state.
func (s *Section) State() [2]float64 {
	return [2]float64{s.ic1eq, s.ic2eq}
}

// SetState restores a previously saved integrator state.
func (s *Section) SetState(state [2]float64) {
	s.ic1eq = state[0]
	s.ic2eq = state[1]
}

// Coefficients returns the direct-form equivalent of the section at
// sampleRate, for response analysis.
func (s *Section) Coefficients(sampleRate float64) Coefficients {
	return Design(s.drive, sampleRate)
}

// ImpulseResponse computes n samples of each output's impulse response at
// sampleRate. The state is saved and restored, so the call does not disturb
// ongoing processing.
func (s *Section) ImpulseResponse(sampleRate float64, n int) [NumOutputs][]float64 {
	var ir [NumOutputs][]float64
	if n <= 0 {
		return ir
	}

	for k := range ir {
		ir[k] = make([]float64, n)
	}

	saved := s.State()
	s.Reset()

	x := 1.0
	for i := range n {
		y := s.ProcessSample(sampleRate, x)
		for k := range ir {
			ir[k][i] = y[k]
		}
		x = 0
	}

	s.SetState(saved)

	return ir
}
