package market

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// InstrumentID is the stable key of an instrument within a snapshot.
// Upstream feeds send it either as a JSON number or a string; both decode to the same value.
type InstrumentID string

// UnmarshalJSON accepts numeric and string identifiers.
func (id *InstrumentID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = InstrumentID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("instrument id: %w", err)
	}
	*id = canonicalNumber(n)
	return nil
}

// canonicalNumber maps equal numeric spellings (1, 1.0, 1e0) to one key.
func canonicalNumber(n json.Number) InstrumentID {
	if i, err := n.Int64(); err == nil {
		return InstrumentID(strconv.FormatInt(i, 10))
	}
	if f, err := n.Float64(); err == nil {
		return InstrumentID(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return InstrumentID(n.String())
}

// MarshalJSON emits numeric identifiers as numbers so the payload round-trips to the same shape.
func (id InstrumentID) MarshalJSON() ([]byte, error) {
	if isJSONNumber(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func isJSONNumber(s string) bool {
	if s == "" || (s[0] != '-' && (s[0] < '0' || s[0] > '9')) {
		return false
	}
	return json.Valid([]byte(s))
}

// Instrument is one entry of a fetched snapshot. Numeric fields are nil when upstream omits them.
type Instrument struct {
	ID      InstrumentID `json:"id"`
	Current *float64     `json:"current"`
	High    *float64     `json:"high"`
	Low     *float64     `json:"low"`
	Open    *float64     `json:"open"`
	PERatio *float64     `json:"peRatio"`
}

// Record is an instrument annotated with its change against the previous snapshot.
type Record struct {
	Instrument
	Change float64 `json:"change"`
}

// Category returns the classification of the record's change.
func (r Record) Category() Category {
	return Classify(r.Change)
}

// Price returns a pointer to v, for building instruments in code.
func Price(v float64) *float64 {
	return &v
}
