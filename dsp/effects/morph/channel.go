package morph

import (
	"github.com/cwbudde/algo-morphfilter/dsp/core"
	"github.com/cwbudde/algo-morphfilter/dsp/filter/secondorder"
)

// DefaultSmoothingFactor is the fraction of the distance to the target drive
// covered per smoothing step.
const DefaultSmoothingFactor = 0.2

// snapTolerance is the relative distance below which a smoothed drive is
// replaced by its target, so the primitive stops recomputing coefficients.
const snapTolerance = 1e-12

// Primitive is the stateful second-order filter a Channel drives. Given the
// sample rate and one input sample it returns the low-pass, peak and
// high-pass outputs at once.
type Primitive interface {
	ProcessSample(sampleRate, x float64) [secondorder.NumOutputs]float64
	SetDrive(d secondorder.Drive)
	Reset()
}

// Channel is the per-channel filter state: a primitive plus the drive it is
// currently smoothed to. Channels never share state.
type Channel struct {
	drive secondorder.Drive
	prim  Primitive
}

// NewChannel wraps p, seeding it with secondorder.DefaultDrive. A nil p gets
// a fresh secondorder.Section.
func NewChannel(p Primitive) *Channel {
	if p == nil {
		p = secondorder.NewSection(secondorder.DefaultDrive)
	}

	c := &Channel{drive: secondorder.DefaultDrive, prim: p}
	p.SetDrive(c.drive)

	return c
}

// Drive returns the current smoothed drive.
func (c *Channel) Drive() secondorder.Drive {
	return c.drive
}

// Advance moves the drive towards target by factor using one-pole
// smoothing in parameter space: current = factor*target + (1-factor)*current.
// Once the drive is within rounding distance of target it is set to target.
func (c *Channel) Advance(target secondorder.Drive, factor float64) {
	next := secondorder.Drive{
		Omega: factor*target.Omega + (1-factor)*c.drive.Omega,
		Zeta:  factor*target.Zeta + (1-factor)*c.drive.Zeta,
	}
	if core.NearlyEqual(next.Omega, target.Omega, snapTolerance) &&
		core.NearlyEqual(next.Zeta, target.Zeta, snapTolerance) {
		next = target
	}

	c.drive = next
	c.prim.SetDrive(c.drive)
}

// FilterSample runs one sample through the primitive with the current drive.
func (c *Channel) FilterSample(sampleRate, x float64) [secondorder.NumOutputs]float64 {
	return c.prim.ProcessSample(sampleRate, x)
}

// Reset clears the primitive's history. The smoothed drive is kept.
func (c *Channel) Reset() {
	c.prim.Reset()
}
