// Package testutil holds deterministic test signals and tolerance helpers
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// Sample is the set of storage precisions the engine accepts.
type Sample interface {
	~float32 | ~float64
}

// DeterministicSine generates a sine wave starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Channels returns n independent copies of src, one per channel.
func Channels(src []float64, n int) [][]float64 {
	out := make([][]float64, n)
	for ch := range out {
		out[ch] = append([]float64(nil), src...)
	}
	return out
}

// Convert copies src into a new slice of another sample precision.
func Convert[To, From Sample](src []From) []To {
	out := make([]To, len(src))
	for i, v := range src {
		out[i] = To(v)
	}
	return out
}

// RMS returns the root-mean-square level of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}
