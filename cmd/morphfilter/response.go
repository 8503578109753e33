package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-morphfilter/dsp/effects/morph"
)

func runResponse(args []string, w io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("response", flag.ContinueOnError)
	pf := addParamFlags(fs)
	rate := fs.Float64("rate", 44100, "sample rate in Hz")
	size := fs.Int("size", 8192, "FFT size, a power of two")
	points := fs.Int("points", 31, "number of log-spaced frequencies to print")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := pf.store(fs)
	if err != nil {
		return err
	}

	p := store.Snapshot()
	logger.Debug("measuring response", "params", p, "sample_rate", *rate, "size", *size)

	r, err := morph.MeasureResponse(p, *rate, *size)
	if err != nil {
		return err
	}

	return printResponse(w, r, p, *points)
}

// printResponse writes the measured and closed-form magnitude at points
// log-spaced bins between 20 Hz and just below Nyquist.
func printResponse(w io.Writer, r morph.Response, p morph.Params, points int) error {
	if points < 2 {
		points = 2
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Frequency [Hz]\tMeasured [dB]\tExpected [dB]\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "--------------\t-------------\t-------------\n"); err != nil {
		return err
	}

	lo := morph.MinFrequency
	hi := math.Min(morph.MaxFrequency, 0.99*r.SampleRate/2)
	binHz := r.SampleRate / float64(2*(len(r.Magnitude)-1))

	last := -1
	for i := range points {
		f := lo * math.Pow(hi/lo, float64(i)/float64(points-1))
		k := int(f/binHz + 0.5)
		k = max(0, min(k, len(r.Magnitude)-1))
		if k == last {
			continue
		}
		last = k

		fk := r.FrequenciesHz[k]
		if _, err := fmt.Fprintf(tw, "%.1f\t%.2f\t%.2f\n",
			fk,
			r.MagnitudeDB[k],
			morph.ExpectedMagnitudeDB(p, r.SampleRate, fk),
		); err != nil {
			return err
		}
	}

	return tw.Flush()
}
