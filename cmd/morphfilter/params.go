package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-morphfilter/dsp/effects/morph"
	"github.com/mitchellh/go-homedir"
)

// paramFlags are the parameter flags shared by every command.
type paramFlags struct {
	preset    string
	filter    string
	morph     float64
	frequency float64
	resonance float64
	mix       float64
}

func addParamFlags(fs *flag.FlagSet) *paramFlags {
	pf := &paramFlags{}
	fs.StringVar(&pf.preset, "preset", "", "JSON preset bank to start from")
	fs.StringVar(&pf.filter, "filter", "", "filter type: LowPass, Peak or HighPass (overrides -morph)")
	fs.Float64Var(&pf.morph, "morph", morph.DefaultMorph, "morph position: 0 low-pass, 0.5 peak, 1 high-pass")
	fs.Float64Var(&pf.frequency, "frequency", morph.DefaultFrequency, "cutoff frequency in Hz")
	fs.Float64Var(&pf.resonance, "resonance", morph.DefaultResonance, "resonance (Q)")
	fs.Float64Var(&pf.mix, "mix", morph.DefaultMix, "dry/wet mix: 0 dry, 1 wet")
	return pf
}

// store builds a parameter store from the preset, if any, then applies the
// parameter flags explicitly set on fs. Values are clamped to their ranges.
func (pf *paramFlags) store(fs *flag.FlagSet) (*morph.Store, error) {
	s := morph.NewStore()

	if pf.preset != "" {
		data, err := readFile(pf.preset)
		if err != nil {
			return nil, err
		}
		if err := s.LoadBankData(data); err != nil {
			return nil, fmt.Errorf("preset %s: %w", pf.preset, err)
		}
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	overrides := []struct {
		flag string
		id   morph.ParamID
		v    float64
	}{
		{"morph", morph.ParamMorph, pf.morph},
		{"frequency", morph.ParamFrequency, pf.frequency},
		{"resonance", morph.ParamResonance, pf.resonance},
		{"mix", morph.ParamMix, pf.mix},
	}
	for _, o := range overrides {
		if !set[o.flag] {
			continue
		}
		if err := s.SetEngineering(o.id, o.v); err != nil {
			return nil, fmt.Errorf("-%s: %w", o.flag, err)
		}
	}

	if set["filter"] {
		t, err := morph.ParseFilterType(pf.filter)
		if err != nil {
			return nil, fmt.Errorf("-filter: %w", err)
		}
		if err := s.SetEngineering(morph.ParamMorph, t.Morph()); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func expandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	return expanded, nil
}

func readFile(path string) ([]byte, error) {
	expanded, err := expandPath(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(expanded)
}

func writeFile(path string, data []byte) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	return os.WriteFile(expanded, data, 0o644)
}
