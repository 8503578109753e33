package secondorder

// Coefficients holds the direct-form transfer functions of all outputs.
// The shared denominator is normalized so that a0 == 1; B[k] is the
// numerator [b0, b1, b2] of output k.
type Coefficients struct {
	A1, A2 float64
	B      [NumOutputs][3]float64
}

// Design returns the direct-form coefficients of d discretized at
// sampleRate with the same transform [Section] uses.
func Design(d Drive, sampleRate float64) Coefficients {
	k := 2 * sampleRate
	kk := k * k
	ww := d.Omega * d.Omega
	damp := 2 * d.Zeta * d.Omega * k

	inv := 1 / (kk + damp + ww)

	var c Coefficients
	c.A1 = 2 * (ww - kk) * inv
	c.A2 = (kk - damp + ww) * inv

	c.B[LowPass] = [3]float64{ww * inv, 2 * ww * inv, ww * inv}
	c.B[Peak] = [3]float64{damp * inv, 0, -damp * inv}
	c.B[HighPass] = [3]float64{kk * inv, -2 * kk * inv, kk * inv}

	return c
}
