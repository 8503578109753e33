package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/cwbudde/algo-morphfilter/dsp/effects/morph"
)

func runPreset(args []string, w io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("preset", flag.ContinueOnError)
	pf := addParamFlags(fs)
	out := fs.String("o", "", "write the bank to this path instead of printing the parameters")
	asJSON := fs.Bool("json", false, "print the bank as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if pf.preset == "" && fs.NArg() > 0 {
		pf.preset = fs.Arg(0)
	}

	store, err := pf.store(fs)
	if err != nil {
		return err
	}

	if *out != "" || *asJSON {
		data, err := store.BankData()
		if err != nil {
			return err
		}
		if *out == "" {
			_, err := fmt.Fprintf(w, "%s\n", data)
			return err
		}
		if err := writeFile(*out, data); err != nil {
			return err
		}
		logger.Info("preset written", "path", *out)
		return nil
	}

	return printParams(w, store)
}

func printParams(w io.Writer, s *morph.Store) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Parameter\tValue\tNormalized\tAutomatable\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "---------\t-----\t----------\t-----------\n"); err != nil {
		return err
	}

	for id := range morph.NumParams {
		norm, err := s.Get(id)
		if err != nil {
			return err
		}
		value := s.ParamText(id)
		if label := morph.ParamLabel(id); label != "" {
			value += " " + label
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%.4f\t%t\n", morph.ParamName(id), value, norm, s.CanAutomate(id)); err != nil {
			return err
		}
	}

	return tw.Flush()
}
