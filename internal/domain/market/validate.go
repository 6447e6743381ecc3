package market

import (
	"errors"
	"fmt"
	"math"
)

// ErrMissingID is returned when a snapshot entry has no identifier.
var ErrMissingID = errors.New("instrument id is required")

// ValidationError reports the first invalid entry of a snapshot.
type ValidationError struct {
	Index int
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("snapshot entry %d: %s: %v", e.Index, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var errNotFinite = errors.New("value must be finite")

// Validate checks a decoded snapshot before it reaches reconciliation.
// Duplicate identifiers are tolerated.
func Validate(snapshot []Instrument) error {
	for i, inst := range snapshot {
		if inst.ID == "" {
			return &ValidationError{Index: i, Field: "id", Err: ErrMissingID}
		}
		fields := []struct {
			name string
			val  *float64
		}{
			{"current", inst.Current},
			{"high", inst.High},
			{"low", inst.Low},
			{"open", inst.Open},
			{"peRatio", inst.PERatio},
		}
		for _, f := range fields {
			if f.val != nil && (math.IsNaN(*f.val) || math.IsInf(*f.val, 0)) {
				return &ValidationError{Index: i, Field: f.name, Err: errNotFinite}
			}
		}
	}
	return nil
}
