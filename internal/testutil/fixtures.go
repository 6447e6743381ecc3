package testutil

import "github.com/preston-bernstein/market-data-watch/internal/domain/market"

// SampleRecord returns a record with a current price and change.
func SampleRecord(id market.InstrumentID, current, change float64) market.Record {
	return market.Record{
		Instrument: market.Instrument{
			ID:      id,
			Current: market.Price(current),
			High:    market.Price(current * 1.1),
			Low:     market.Price(current * 0.9),
			Open:    market.Price(current),
			PERatio: market.Price(15),
		},
		Change: change,
	}
}
