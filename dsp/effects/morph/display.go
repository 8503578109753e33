package morph

import "fmt"

// ParamName returns the host-facing name of parameter id, or "" for an
// unknown id.
func ParamName(id ParamID) string {
	switch id {
	case ParamMorph:
		return "Filter"
	case ParamFrequency:
		return "Frequency"
	case ParamResonance:
		return "Resonance"
	case ParamMix:
		return "Mix"
	default:
		return ""
	}
}

// ParamLabel returns the unit label shown next to the value of id.
func ParamLabel(id ParamID) string {
	switch id {
	case ParamMorph, ParamMix:
		return "%"
	case ParamFrequency:
		return "Hz"
	default:
		return ""
	}
}

// ParamText formats the current value of id for display. Morph and mix are
// shown as percentages.
func (s *Store) ParamText(id ParamID) string {
	v, err := s.Engineering(id)
	if err != nil {
		return ""
	}

	switch id {
	case ParamMorph, ParamMix:
		return fmt.Sprintf("%.3f", 100*v)
	default:
		return fmt.Sprintf("%.3f", v)
	}
}
