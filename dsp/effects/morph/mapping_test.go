package morph

import (
	"math"
	"testing"
)

func TestMorphToBlendSumsToOne(t *testing.T) {
	for i := 0; i <= 1000; i++ {
		morph := float64(i) / 1000
		b := MorphToBlend(morph)

		if b.Low < 0 || b.Peak < 0 || b.High < 0 {
			t.Fatalf("morph=%v: negative weight %+v", morph, b)
		}
		if sum := b.Low + b.Peak + b.High; math.Abs(sum-1) > 1e-12 {
			t.Fatalf("morph=%v: weights sum to %v", morph, sum)
		}
		if b.Low != 0 && b.High != 0 {
			t.Fatalf("morph=%v: low and high both active %+v", morph, b)
		}
	}
}

func TestMorphToBlendEndpoints(t *testing.T) {
	tests := []struct {
		morph float64
		want  Blend
	}{
		{morph: 0, want: Blend{Low: 1}},
		{morph: 0.25, want: Blend{Low: 0.5, Peak: 0.5}},
		{morph: 0.5, want: Blend{Peak: 1}},
		{morph: 0.75, want: Blend{Peak: 0.5, High: 0.5}},
		{morph: 1, want: Blend{High: 1}},
	}

	for _, tt := range tests {
		if got := MorphToBlend(tt.morph); got != tt.want {
			t.Fatalf("MorphToBlend(%v) = %+v, want %+v", tt.morph, got, tt.want)
		}
	}
}

func TestFilterTypesSampleTheMorphCurve(t *testing.T) {
	want := map[FilterType]Blend{
		LowPass:  {Low: 1},
		Peak:     {Peak: 1},
		HighPass: {High: 1},
	}
	for ft, b := range want {
		if got := MorphToBlend(ft.Morph()); got != b {
			t.Fatalf("%v: blend %+v, want %+v", ft, got, b)
		}
	}
}

func TestBlendApply(t *testing.T) {
	y := [3]float64{2, 3, 5}
	if got := (Blend{Low: 0.5, Peak: 0.5}).Apply(y); got != 2.5 {
		t.Fatalf("Apply = %v, want 2.5", got)
	}
	if got := (Blend{High: 1}).Apply(y); got != 5 {
		t.Fatalf("Apply = %v, want 5", got)
	}
}

func TestFrequencyMapping(t *testing.T) {
	if got := NormalizedToFrequency(0); got != MinFrequency {
		t.Fatalf("NormalizedToFrequency(0) = %v, want %v", got, MinFrequency)
	}
	if got := NormalizedToFrequency(1); got != MaxFrequency {
		t.Fatalf("NormalizedToFrequency(1) = %v, want %v", got, MaxFrequency)
	}
	// One decade per third of the range.
	if got := NormalizedToFrequency(1.0 / 3); math.Abs(got-200) > 1e-9 {
		t.Fatalf("NormalizedToFrequency(1/3) = %v, want 200", got)
	}

	for i := 0; i <= 100; i++ {
		v := float64(i) / 100
		if got := FrequencyToNormalized(NormalizedToFrequency(v)); math.Abs(got-v) > 1e-12 {
			t.Fatalf("frequency round trip of %v = %v", v, got)
		}
	}
}

func TestResonanceMapping(t *testing.T) {
	if got := NormalizedToResonance(0); got != 0 {
		t.Fatalf("NormalizedToResonance(0) = %v, want 0", got)
	}
	if got := NormalizedToResonance(1); got != MaxResonance {
		t.Fatalf("NormalizedToResonance(1) = %v, want %v", got, MaxResonance)
	}
	if got := NormalizedToResonance(0.5); math.Abs(got-20.0/16) > 1e-12 {
		t.Fatalf("NormalizedToResonance(0.5) = %v, want 1.25", got)
	}

	for i := 0; i <= 100; i++ {
		v := float64(i) / 100
		if got := ResonanceToNormalized(NormalizedToResonance(v)); math.Abs(got-v) > 1e-12 {
			t.Fatalf("resonance round trip of %v = %v", v, got)
		}
	}
}

func TestEngineeringMappingDispatch(t *testing.T) {
	for _, id := range []ParamID{ParamMorph, ParamMix} {
		if got := NormalizedToEngineering(id, 0.3); got != 0.3 {
			t.Fatalf("%v should map linearly, got %v", id, got)
		}
		if got := EngineeringToNormalized(id, 0.3); got != 0.3 {
			t.Fatalf("%v should map linearly, got %v", id, got)
		}
	}

	if got := NormalizedToEngineering(ParamFrequency, 1); got != MaxFrequency {
		t.Fatalf("frequency dispatch = %v", got)
	}
	if got := EngineeringToNormalized(ParamResonance, MaxResonance); got != 1 {
		t.Fatalf("resonance dispatch = %v", got)
	}
	if !math.IsNaN(NormalizedToEngineering(NumParams, 0.5)) {
		t.Fatal("unknown parameter should map to NaN")
	}
}

func TestDriveForZeroResonanceIsFinite(t *testing.T) {
	for _, f := range []float64{MinFrequency, 880, MaxFrequency} {
		d := DriveFor(f, 0)
		if math.IsNaN(d.Zeta) || math.IsInf(d.Zeta, 0) {
			t.Fatalf("DriveFor(%v, 0) damping = %v", f, d.Zeta)
		}
		if d.Omega != 2*math.Pi*f {
			t.Fatalf("DriveFor(%v, 0) omega = %v", f, d.Omega)
		}
	}
}

func TestDriveForDefaults(t *testing.T) {
	d := DriveFor(DefaultFrequency, DefaultResonance)
	if math.Abs(d.Zeta-math.Sqrt2/2) > 1e-15 {
		t.Fatalf("default damping = %v, want 1/sqrt(2)", d.Zeta)
	}
	if got := DriveFor(1000, 10).Zeta; math.Abs(got-0.05) > 1e-15 {
		t.Fatalf("damping for Q=10 = %v, want 0.05", got)
	}
}
