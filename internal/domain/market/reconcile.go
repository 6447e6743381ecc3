package market

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Reconcile annotates next with the percentage change of each instrument against previous.
// Output order follows next; instruments missing from next are dropped. An instrument without
// a usable previous price (not found, absent, or zero) gets a change of 0.
func Reconcile(previous []Record, next []Instrument) []Record {
	prior := indexCurrent(previous)
	out := make([]Record, 0, len(next))
	for _, inst := range next {
		out = append(out, Record{
			Instrument: inst,
			Change:     change(prior[inst.ID], inst.Current),
		})
	}
	return out
}

// indexCurrent keeps the first occurrence of each ID.
func indexCurrent(records []Record) map[InstrumentID]*float64 {
	idx := make(map[InstrumentID]*float64, len(records))
	for _, r := range records {
		if _, seen := idx[r.ID]; seen {
			continue
		}
		idx[r.ID] = r.Current
	}
	return idx
}

func change(previous, current *float64) float64 {
	if previous == nil || current == nil || *previous == 0 {
		return 0
	}
	p := decimal.NewFromFloat(*previous)
	c := decimal.NewFromFloat(*current)
	pct, _ := c.Sub(p).Div(p).Mul(hundred).Float64()
	return pct
}
