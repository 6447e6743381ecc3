package present

import (
	"testing"

	"github.com/preston-bernstein/market-data-watch/internal/domain/market"
	"github.com/preston-bernstein/market-data-watch/internal/state"
)

func record(id market.InstrumentID, current, change float64) market.Record {
	return market.Record{Instrument: market.Instrument{ID: id, Current: market.Price(current)}, Change: change}
}

func TestSelectView(t *testing.T) {
	held := []market.Record{record("1", 10, 0)}
	tests := []struct {
		name string
		st   state.PollState
		want View
	}{
		{"initial", state.PollState{}, ViewEmpty},
		{"first fetch in flight", state.PollState{Loading: true}, ViewLoading},
		{"refresh over held data", state.PollState{Loading: true, Records: held}, ViewPopulated},
		{"populated", state.PollState{Records: held}, ViewPopulated},
		{"error without data", state.PollState{Err: true}, ViewError},
		{"error with data", state.PollState{Err: true, Records: held}, ViewError},
		{"error while loading", state.PollState{Err: true, Loading: true}, ViewError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectView(tt.st); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestViewMessage(t *testing.T) {
	if ViewError.Message() != MessageError || ViewLoading.Message() != MessageLoading || ViewEmpty.Message() != MessageEmpty {
		t.Fatalf("unexpected view messages")
	}
	if ViewPopulated.Message() != "" {
		t.Fatalf("expected no banner for populated view")
	}
}

func TestRowsFormatsAttributesAndClass(t *testing.T) {
	rec := market.Record{
		Instrument: market.Instrument{
			ID:      "7",
			Current: market.Price(175),
			High:    market.Price(180.5),
			Low:     market.Price(99.25),
			Open:    market.Price(100),
		},
		Change: 75,
	}
	rows := Rows(state.PollState{Records: []market.Record{rec, record("8", 1, -80)}})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	got := rows[0]
	if got.ID != "7" || got.Current != "175" || got.High != "180.5" || got.Low != "99.25" || got.Open != "100" {
		t.Fatalf("unexpected formatting %+v", got)
	}
	if got.PERatio != "" {
		t.Fatalf("expected absent P/E to render empty, got %q", got.PERatio)
	}
	if got.Category != market.StrongPositive || got.Class != "green" {
		t.Fatalf("unexpected class %s/%q", got.Category, got.Class)
	}
	if rows[1].Class != "red" {
		t.Fatalf("expected red for -80, got %q", rows[1].Class)
	}
	if len(got.Cells()) != len(Columns) {
		t.Fatalf("cells and columns out of step")
	}
}

func TestRowsEmptyState(t *testing.T) {
	rows := Rows(state.PollState{})
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil rows, got %#v", rows)
	}
}
