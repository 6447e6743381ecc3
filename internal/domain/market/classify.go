package market

import (
	"fmt"
	"math"
)

// Category is one of five ordered bands a change percentage falls into.
type Category int

const (
	StrongNegative Category = iota - 2
	ModerateNegative
	Neutral
	ModeratePositive
	StrongPositive
)

const (
	strongPositiveFloor   = 75.0
	moderatePositiveFloor = 50.0
	neutralFloor          = -49.0
	moderateNegativeFloor = -74.0
)

// Classify maps a change percentage to its category. NaN carries no signal and is Neutral.
// The bands are intentionally asymmetric: positive bands start at 50 and 75, negative ones at -49 and -74.
func Classify(change float64) Category {
	switch {
	case math.IsNaN(change):
		return Neutral
	case change >= strongPositiveFloor:
		return StrongPositive
	case change >= moderatePositiveFloor:
		return ModeratePositive
	case change >= neutralFloor:
		return Neutral
	case change >= moderateNegativeFloor:
		return ModerateNegative
	default:
		return StrongNegative
	}
}

// String returns a stable lowercase name used in logs and JSON payloads.
func (c Category) String() string {
	switch c {
	case StrongPositive:
		return "strong_positive"
	case ModeratePositive:
		return "moderate_positive"
	case ModerateNegative:
		return "moderate_negative"
	case StrongNegative:
		return "strong_negative"
	default:
		return "neutral"
	}
}

// Color is the traffic-light class consumers attach to a row. Neutral has no color.
func (c Category) Color() string {
	switch c {
	case StrongPositive:
		return "green"
	case ModeratePositive:
		return "lightgreen"
	case ModerateNegative:
		return "lightred"
	case StrongNegative:
		return "red"
	default:
		return ""
	}
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name produced by MarshalText.
func (c *Category) UnmarshalText(text []byte) error {
	for _, cat := range []Category{StrongNegative, ModerateNegative, Neutral, ModeratePositive, StrongPositive} {
		if cat.String() == string(text) {
			*c = cat
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", text)
}
