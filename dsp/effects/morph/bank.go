package morph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidBank is returned when bank data cannot be decoded or holds
// unusable values. The store is never modified in that case.
var ErrInvalidBank = errors.New("morph: invalid bank data")

// FilterType is the discrete filter selector of older preset banks. Each
// type is a point on the continuous morph curve.
type FilterType uint8

const (
	LowPass FilterType = iota
	Peak
	HighPass
)

func (t FilterType) String() string {
	switch t {
	case LowPass:
		return "LowPass"
	case Peak:
		return "Peak"
	case HighPass:
		return "HighPass"
	default:
		return fmt.Sprintf("FilterType(%d)", uint8(t))
	}
}

// Morph returns the morph position that selects only t's response.
func (t FilterType) Morph() float64 {
	switch t {
	case Peak:
		return 0.5
	case HighPass:
		return 1
	default:
		return 0
	}
}

// ParseFilterType parses the names produced by String, ignoring case.
func ParseFilterType(name string) (FilterType, error) {
	for _, t := range []FilterType{LowPass, Peak, HighPass} {
		if strings.EqualFold(name, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown filter type %q", name)
}

// Bank is the persisted form of the parameters. Fields missing from decoded
// data take their defaults. The "filter" field is the morph position; a
// string naming a FilterType is accepted as well.
type Bank struct {
	Filter    float64 `json:"filter"`
	Frequency float64 `json:"frequency"`
	Resonance float64 `json:"resonance"`
	Mix       float64 `json:"mix"`
}

// DefaultBank returns the bank of DefaultParams.
func DefaultBank() Bank {
	return BankFromParams(DefaultParams())
}

// BankFromParams converts a parameter snapshot to a bank.
func BankFromParams(p Params) Bank {
	return Bank{
		Filter:    p.Morph,
		Frequency: p.Frequency,
		Resonance: p.Resonance,
		Mix:       p.Mix,
	}
}

// Params converts the bank to a parameter snapshot.
func (b Bank) Params() Params {
	return Params{
		Morph:     b.Filter,
		Frequency: b.Frequency,
		Resonance: b.Resonance,
		Mix:       b.Mix,
	}
}

// UnmarshalJSON decodes a bank, filling missing fields with defaults.
func (b *Bank) UnmarshalJSON(data []byte) error {
	var raw struct {
		Filter    json.RawMessage `json:"filter"`
		Frequency *float64        `json:"frequency"`
		Resonance *float64        `json:"resonance"`
		Mix       *float64        `json:"mix"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := DefaultBank()

	if len(raw.Filter) > 0 && !bytes.Equal(raw.Filter, []byte("null")) {
		morph, err := decodeFilter(raw.Filter)
		if err != nil {
			return err
		}
		out.Filter = morph
	}
	if raw.Frequency != nil {
		out.Frequency = *raw.Frequency
	}
	if raw.Resonance != nil {
		out.Resonance = *raw.Resonance
	}
	if raw.Mix != nil {
		out.Mix = *raw.Mix
	}

	*b = out

	return nil
}

func decodeFilter(raw json.RawMessage) (float64, error) {
	var morph float64
	if err := json.Unmarshal(raw, &morph); err == nil {
		return morph, nil
	}

	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return 0, fmt.Errorf("filter must be a number or a filter type name: %s", raw)
	}

	t, err := ParseFilterType(name)
	if err != nil {
		return 0, err
	}

	return t.Morph(), nil
}

// DecodeBank parses JSON bank data. It fails with ErrInvalidBank on
// malformed input or non-finite values.
func DecodeBank(data []byte) (Bank, error) {
	var b Bank
	if err := json.Unmarshal(data, &b); err != nil {
		return Bank{}, fmt.Errorf("%w: %w", ErrInvalidBank, err)
	}
	if err := b.Params().Validate(); err != nil {
		return Bank{}, fmt.Errorf("%w: %w", ErrInvalidBank, err)
	}
	return b, nil
}

// EncodeBank serializes b as JSON.
func EncodeBank(b Bank) ([]byte, error) {
	return json.Marshal(b)
}

// StoreBank replaces all parameters with the bank's values, clamped to their
// ranges. Nothing is written if the bank holds a non-finite value.
func (s *Store) StoreBank(b Bank) error {
	if err := s.StoreParams(b.Params()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBank, err)
	}
	return nil
}

// LoadBank returns the current parameters as a bank.
func (s *Store) LoadBank() Bank {
	return BankFromParams(s.Snapshot())
}

// BankData serializes the current parameters.
func (s *Store) BankData() ([]byte, error) {
	return EncodeBank(s.LoadBank())
}

// LoadBankData decodes data and stores it. On any error the store is left
// unchanged.
func (s *Store) LoadBankData(data []byte) error {
	b, err := DecodeBank(data)
	if err != nil {
		return err
	}
	return s.StoreBank(b)
}
