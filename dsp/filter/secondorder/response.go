package secondorder

import (
	"math"
	"math/cmplx"
)

// Response computes the complex frequency response H(e^jw) of output out at
// the given frequency (Hz) and sample rate (Hz).
func (c *Coefficients) Response(out int, freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	ejw := cmplx.Exp(complex(0, -w))
	ej2w := cmplx.Exp(complex(0, -2*w))

	b := c.B[out]
	num := complex(b[0], 0) + complex(b[1], 0)*ejw + complex(b[2], 0)*ej2w
	den := complex(1, 0) + complex(c.A1, 0)*ejw + complex(c.A2, 0)*ej2w
	return num / den
}

// MagnitudeDB returns 20*log10(|H(f)|) of output out.
func (c *Coefficients) MagnitudeDB(out int, freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(out, freqHz, sampleRate)))
}

// BlendResponse returns the response of the weighted sum of all outputs,
// sum_k weights[k] * H_k(f).
func (c *Coefficients) BlendResponse(weights [NumOutputs]float64, freqHz, sampleRate float64) complex128 {
	var h complex128
	for k, wk := range weights {
		if wk == 0 {
			continue
		}
		h += complex(wk, 0) * c.Response(k, freqHz, sampleRate)
	}
	return h
}

// CenterHz returns the digital frequency (Hz) the analog natural frequency
// of d maps to under the bilinear transform at sampleRate. The peak output
// reaches unity gain there.
func CenterHz(d Drive, sampleRate float64) float64 {
	return sampleRate / math.Pi * math.Atan(d.Omega/(2*sampleRate))
}
