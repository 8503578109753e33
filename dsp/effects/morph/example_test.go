package morph_test

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-morphfilter/dsp/effects/morph"
)

func Example() {
	store := morph.NewStore()
	_ = store.Set(morph.ParamMorph, 0.5)
	_ = store.SetEngineering(morph.ParamFrequency, 1000)

	engine, err := morph.NewEngine(store, morph.WithChannels(1), morph.WithSampleRate(48000))
	if err != nil {
		fmt.Println(err)
		return
	}

	buf := [][]float64{make([]float64, 256)}
	buf[0][0] = 1
	engine.Process(buf)

	for id := range morph.NumParams {
		line := fmt.Sprintf("%-9s %s %s", morph.ParamName(id), store.ParamText(id), morph.ParamLabel(id))
		fmt.Println(strings.TrimSpace(line))
	}

	// Output:
	// Filter    50.000 %
	// Frequency 1000.000 Hz
	// Resonance 0.707
	// Mix       100.000 %
}

func ExampleMorphToBlend() {
	for _, m := range []float64{0, 0.25, 0.5, 0.75, 1} {
		fmt.Printf("%.2f %+v\n", m, morph.MorphToBlend(m))
	}

	// Output:
	// 0.00 {Low:1 Peak:0 High:0}
	// 0.25 {Low:0.5 Peak:0.5 High:0}
	// 0.50 {Low:0 Peak:1 High:0}
	// 0.75 {Low:0 Peak:0.5 High:0.5}
	// 1.00 {Low:0 Peak:0 High:1}
}

func ExampleDecodeBank() {
	b, err := morph.DecodeBank([]byte(`{"filter":"HighPass","frequency":4000}`))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("morph=%.1f frequency=%.0f mix=%.0f\n", b.Filter, b.Frequency, b.Mix)

	// Output:
	// morph=1.0 frequency=4000 mix=1
}
