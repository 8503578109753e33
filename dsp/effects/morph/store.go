package morph

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Store is the parameter state shared between the control side and the
// render side. Each parameter is a float64 held as its bit pattern in an
// atomic slot, so a reader never observes a torn value and neither side ever
// blocks or allocates. Distinct parameters are not ordered with respect to
// each other; last write wins per slot.
//
// Values are stored in engineering units and are always within their
// ranges.
type Store struct {
	slots [NumParams]atomic.Uint64
}

// NewStore returns a store holding DefaultParams.
func NewStore() *Store {
	s := &Store{}
	s.write(DefaultParams())
	return s
}

// NewStoreWith returns a store holding p, clamped to the parameter ranges.
func NewStoreWith(p Params) (*Store, error) {
	s := &Store{}
	if err := s.StoreParams(p); err != nil {
		return nil, err
	}
	return s, nil
}

// Set writes a host-normalized value for parameter id. The value is clamped
// to [0, 1] and mapped to engineering units before it is stored.
func (s *Store) Set(id ParamID, normalized float64) error {
	if !id.Valid() {
		return fmt.Errorf("%w: %d", ErrNoSuchParameter, int(id))
	}
	if math.IsNaN(normalized) {
		return fmt.Errorf("%w: %s = %v", ErrInvalidValue, id, normalized)
	}

	v := NormalizedToEngineering(id, clampUnit(normalized))
	s.slots[id].Store(math.Float64bits(clampParam(id, v)))

	return nil
}

// Get returns the host-normalized value of parameter id.
func (s *Store) Get(id ParamID) (float64, error) {
	if !id.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrNoSuchParameter, int(id))
	}
	return clampUnit(EngineeringToNormalized(id, s.load(id))), nil
}

// Engineering returns the value of parameter id in engineering units.
func (s *Store) Engineering(id ParamID) (float64, error) {
	if !id.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrNoSuchParameter, int(id))
	}
	return s.load(id), nil
}

// SetEngineering writes parameter id in engineering units, clamped to its
// range.
func (s *Store) SetEngineering(id ParamID, v float64) error {
	if !id.Valid() {
		return fmt.Errorf("%w: %d", ErrNoSuchParameter, int(id))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s = %v", ErrInvalidValue, id, v)
	}

	s.slots[id].Store(math.Float64bits(clampParam(id, v)))

	return nil
}

// Snapshot reads every parameter once. The render side calls it once per
// block.
func (s *Store) Snapshot() Params {
	return Params{
		Morph:     s.load(ParamMorph),
		Frequency: s.load(ParamFrequency),
		Resonance: s.load(ParamResonance),
		Mix:       s.load(ParamMix),
	}
}

// StoreParams replaces all parameters with p, clamped to their ranges. If any
// value is NaN or infinite nothing is written.
func (s *Store) StoreParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.write(p.Clamped())
	return nil
}

// CanAutomate reports whether the host may automate parameter id.
func (s *Store) CanAutomate(id ParamID) bool {
	return id.Valid()
}

func (s *Store) write(p Params) {
	for id := range NumParams {
		s.slots[id].Store(math.Float64bits(p.Get(id)))
	}
}

func (s *Store) load(id ParamID) float64 {
	return math.Float64frombits(s.slots[id].Load())
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
