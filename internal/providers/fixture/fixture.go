package fixture

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"github.com/preston-bernstein/market-data-watch/internal/domain/market"
)

const (
	defaultVolatility = 0.8
	minPrice          = 0.01
)

type quote struct {
	id      market.InstrumentID
	current float64
	open    float64
	high    float64
	low     float64
	eps     float64
}

// Provider serves an in-process random walk over a fixed set of instruments.
// It is used for local runs and demos when no upstream endpoint is configured.
type Provider struct {
	mu         sync.Mutex
	rnd        *rand.Rand
	volatility float64
	quotes     []*quote
}

// New creates a fixture provider seeded for reproducible walks.
// volatility bounds the per-fetch move as a fraction of price (0.8 = up to ±80%).
func New(seed int64, volatility float64) *Provider {
	if volatility <= 0 {
		volatility = defaultVolatility
	}
	base := []struct {
		id    market.InstrumentID
		price float64
		eps   float64
	}{
		{"1", 100, 4.2},
		{"2", 42.5, 1.9},
		{"3", 310, 11.3},
		{"4", 12.8, -0.6},
		{"5", 75.25, 3.1},
	}
	quotes := make([]*quote, 0, len(base))
	for _, b := range base {
		quotes = append(quotes, &quote{id: b.id, current: b.price, open: b.price, high: b.price, low: b.price, eps: b.eps})
	}
	return &Provider{
		rnd:        rand.New(rand.NewSource(seed)),
		volatility: volatility,
		quotes:     quotes,
	}
}

// FetchSnapshot advances every instrument one step and returns the new snapshot.
func (p *Provider) FetchSnapshot(ctx context.Context) ([]market.Instrument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]market.Instrument, 0, len(p.quotes))
	for _, q := range p.quotes {
		move := (p.rnd.Float64()*2 - 1) * p.volatility
		q.current = math.Max(minPrice, round2(q.current*(1+move)))
		q.high = math.Max(q.high, q.current)
		q.low = math.Min(q.low, q.current)
		out = append(out, q.instrument())
	}
	return out, nil
}

func (q *quote) instrument() market.Instrument {
	inst := market.Instrument{
		ID:      q.id,
		Current: market.Price(q.current),
		High:    market.Price(q.high),
		Low:     market.Price(q.low),
		Open:    market.Price(q.open),
	}
	// Negative earnings have no meaningful P/E; leave it absent like upstream feeds do.
	if q.eps > 0 {
		inst.PERatio = market.Price(round2(q.current / q.eps))
	}
	return inst
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
