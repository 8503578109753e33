// Package secondorder provides a multi-output second-order IIR section
// parameterized by angular frequency and damping.
//
// A [Section] discretizes the analog prototypes
//
//	H_low(s)  = w^2     / (s^2 + 2*z*w*s + w^2)
//	H_peak(s) = 2*z*w*s / (s^2 + 2*z*w*s + w^2)
//	H_high(s) = s^2     / (s^2 + 2*z*w*s + w^2)
//
// with trapezoidal integration (the bilinear transform without frequency
// prewarping), using a topology-preserving state-variable structure so that
// one shared state yields the low-pass, peak and high-pass output of the same
// input sample. The peak response has unity gain at its center frequency and
// the three outputs always sum to the input.
//
// Filter coefficients are recomputed lazily whenever the drive or the sample
// rate passed to ProcessSample changes. [Design] returns the equivalent
// direct-form coefficients for frequency-response analysis.
package secondorder
