package domain

import "encoding/json"

// Per-unit logo surcharges, currency-unit-agnostic flat amounts. This table is
// the single source of the defaults; products override individual keys through
// CustomizationOptions.
var (
	DefaultSizeSurcharges = map[string]float64{
		"small":  50,
		"medium": 100,
		"large":  150,
	}
	DefaultPositionSurcharges = map[string]float64{
		"center":   0,
		"corner":   25,
		"repeated": 75,
	}
)

type customizationOverrides struct {
	Sizes     map[string]float64 `json:"sizes"`
	Positions map[string]float64 `json:"positions"`
}

// CustomizationSurcharge resolves the per-unit surcharge for a logo size and
// position against the product's overrides, falling back to the defaults.
// Unknown keys are reported so callers can reject bad input instead of
// silently pricing it at zero.
func CustomizationSurcharge(opts json.RawMessage, size, position string) (float64, bool) {
	var ov customizationOverrides
	if len(opts) > 0 {
		// Malformed overrides fall back to the default table.
		_ = json.Unmarshal(opts, &ov)
	}

	total := 0.0
	if size != "" {
		v, ok := lookupSurcharge(ov.Sizes, DefaultSizeSurcharges, size)
		if !ok {
			return 0, false
		}
		total += v
	}
	if position != "" {
		v, ok := lookupSurcharge(ov.Positions, DefaultPositionSurcharges, position)
		if !ok {
			return 0, false
		}
		total += v
	}
	return total, true
}

func lookupSurcharge(overrides, defaults map[string]float64, key string) (float64, bool) {
	if overrides != nil {
		if v, ok := overrides[key]; ok {
			return v, true
		}
	}
	v, ok := defaults[key]
	return v, ok
}
