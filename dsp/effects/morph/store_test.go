package morph

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func TestNewStoreDefaults(t *testing.T) {
	s := NewStore()
	if got := s.Snapshot(); got != DefaultParams() {
		t.Fatalf("Snapshot() = %+v, want %+v", got, DefaultParams())
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	s := NewStore()

	for id := range NumParams {
		for _, v := range []float64{0, 0.1, 0.5, 0.9, 1} {
			if err := s.Set(id, v); err != nil {
				t.Fatalf("Set(%v, %v) error = %v", id, v, err)
			}
			got, err := s.Get(id)
			if err != nil {
				t.Fatalf("Get(%v) error = %v", id, err)
			}
			if math.Abs(got-v) > 1e-12 {
				t.Fatalf("Get(%v) = %v after Set(%v)", id, got, v)
			}
		}
	}
}

func TestSetStoresEngineeringUnits(t *testing.T) {
	s := NewStore()
	if err := s.Set(ParamFrequency, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ParamResonance, 1); err != nil {
		t.Fatal(err)
	}

	if f, _ := s.Engineering(ParamFrequency); f != MaxFrequency {
		t.Fatalf("frequency = %v, want %v", f, MaxFrequency)
	}
	if q, _ := s.Engineering(ParamResonance); q != MaxResonance {
		t.Fatalf("resonance = %v, want %v", q, MaxResonance)
	}
}

func TestSetClampsNormalized(t *testing.T) {
	s := NewStore()
	if err := s.Set(ParamFrequency, 3); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ParamMix, -2); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ParamMorph, math.Inf(1)); err != nil {
		t.Fatal(err)
	}

	p := s.Snapshot()
	if p.Frequency != MaxFrequency || p.Mix != 0 || p.Morph != 1 {
		t.Fatalf("Snapshot() = %+v, want clamped values", p)
	}
}

func TestInvalidParameterLeavesStateUntouched(t *testing.T) {
	s := NewStore()
	before := s.Snapshot()

	for _, id := range []ParamID{-1, NumParams, 42} {
		if err := s.Set(id, 0.5); !errors.Is(err, ErrNoSuchParameter) {
			t.Fatalf("Set(%d) error = %v, want ErrNoSuchParameter", id, err)
		}
		if err := s.SetEngineering(id, 0.5); !errors.Is(err, ErrNoSuchParameter) {
			t.Fatalf("SetEngineering(%d) error = %v, want ErrNoSuchParameter", id, err)
		}
		if _, err := s.Get(id); !errors.Is(err, ErrNoSuchParameter) {
			t.Fatalf("Get(%d) error = %v, want ErrNoSuchParameter", id, err)
		}
		if _, err := s.Engineering(id); !errors.Is(err, ErrNoSuchParameter) {
			t.Fatalf("Engineering(%d) error = %v, want ErrNoSuchParameter", id, err)
		}
		if s.CanAutomate(id) {
			t.Fatalf("CanAutomate(%d) = true", id)
		}
	}

	if got := s.Snapshot(); got != before {
		t.Fatalf("Snapshot() = %+v, want %+v", got, before)
	}
}

func TestRejectsNaN(t *testing.T) {
	s := NewStore()
	before := s.Snapshot()

	if err := s.Set(ParamMix, math.NaN()); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("Set(NaN) error = %v, want ErrInvalidValue", err)
	}
	if err := s.SetEngineering(ParamFrequency, math.Inf(1)); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("SetEngineering(Inf) error = %v, want ErrInvalidValue", err)
	}
	if got := s.Snapshot(); got != before {
		t.Fatalf("state changed after rejected writes: %+v", got)
	}
}

func TestSetEngineeringClamps(t *testing.T) {
	s := NewStore()
	if err := s.SetEngineering(ParamFrequency, 5); err != nil {
		t.Fatal(err)
	}
	if err := s.SetEngineering(ParamResonance, 100); err != nil {
		t.Fatal(err)
	}

	p := s.Snapshot()
	if p.Frequency != MinFrequency || p.Resonance != MaxResonance {
		t.Fatalf("Snapshot() = %+v", p)
	}
}

func TestStoreParamsAllOrNothing(t *testing.T) {
	s := NewStore()
	before := s.Snapshot()

	bad := Params{Morph: 0.5, Frequency: 1000, Resonance: math.NaN(), Mix: 0.5}
	if err := s.StoreParams(bad); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("StoreParams() error = %v, want ErrInvalidValue", err)
	}
	if got := s.Snapshot(); got != before {
		t.Fatalf("partial write: %+v", got)
	}

	good := Params{Morph: 0.25, Frequency: 4000, Resonance: 3, Mix: 0.75}
	if err := s.StoreParams(good); err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot(); got != good {
		t.Fatalf("Snapshot() = %+v, want %+v", got, good)
	}
}

func TestNewStoreWith(t *testing.T) {
	s, err := NewStoreWith(Params{Morph: 2, Frequency: 1, Resonance: -1, Mix: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	want := Params{Morph: 1, Frequency: MinFrequency, Resonance: 0, Mix: 0.5}
	if got := s.Snapshot(); got != want {
		t.Fatalf("Snapshot() = %+v, want %+v", got, want)
	}

	if _, err := NewStoreWith(Params{Frequency: math.Inf(-1)}); err == nil {
		t.Fatal("expected error for infinite frequency")
	}
}

func TestConcurrentWriterReader(t *testing.T) {
	s := NewStore()
	const iterations = 20000

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		for i := range iterations {
			v := float64(i%101) / 100
			_ = s.Set(ParamID(i%int(NumParams)), v)
		}
	}()

	for range iterations {
		p := s.Snapshot()
		for id := range NumParams {
			lo, hi, _ := Range(id)
			if v := p.Get(id); v < lo || v > hi || math.IsNaN(v) {
				t.Fatalf("reader observed %v = %v outside [%v, %v]", id, v, lo, hi)
			}
		}
	}

	wg.Wait()
}

func TestParamIDString(t *testing.T) {
	if ParamResonance.String() != "resonance" {
		t.Fatalf("String() = %q", ParamResonance.String())
	}
	if NumParams.String() != "ParamID(4)" {
		t.Fatalf("String() = %q", NumParams.String())
	}
}
