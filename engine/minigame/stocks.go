package minigame

import (
	"fmt"
	"math"

	"github.com/marell/teolife/types"
)

// The stock simulator: fifteen trading days, three assets with fixed
// volatility and drift, prices driven by the session RNG so a given seed
// and action script always replays the same market.

const (
	MarketDays   = 15
	StartingCash = 1000.0
)

// Asset is one tradable instrument with its current price.
type Asset struct {
	ID         string
	Name       string
	Price      float64
	Volatility float64
	Trend      float64
}

func defaultAssets() []Asset {
	return []Asset{
		{ID: "bluebrick", Name: "BlueBrick Corp", Price: 50, Volatility: 0.08, Trend: 0.02},
		{ID: "neomind", Name: "NeoMind AI", Price: 120, Volatility: 0.15, Trend: 0.05},
		{ID: "mooncat", Name: "MoonCat Coin", Price: 10, Volatility: 0.25, Trend: -0.01},
	}
}

// Market is one simulator session.
type Market struct {
	day      int
	cash     float64
	assets   []Asset
	holdings map[string]int
	rng      Rand
}

// NewMarket opens a market session draped over the session RNG.
func NewMarket(rng Rand) *Market {
	return &Market{
		cash:     StartingCash,
		assets:   defaultAssets(),
		holdings: make(map[string]int),
		rng:      rng,
	}
}

// Day returns the current trading day, starting at 0.
func (m *Market) Day() int {
	return m.day
}

// Done reports whether the trading window has closed.
func (m *Market) Done() bool {
	return m.day >= MarketDays
}

// Cash returns uninvested funds.
func (m *Market) Cash() float64 {
	return m.cash
}

// Assets returns the instruments at their current prices.
func (m *Market) Assets() []Asset {
	return m.assets
}

// Holding returns the owned quantity of an asset.
func (m *Market) Holding(assetID string) int {
	return m.holdings[assetID]
}

func (m *Market) asset(id string) *Asset {
	for i := range m.assets {
		if m.assets[i].ID == id {
			return &m.assets[i]
		}
	}
	return nil
}

// Buy purchases qty shares at the current price.
func (m *Market) Buy(assetID string, qty int) error {
	if m.Done() {
		return fmt.Errorf("market: trading window closed")
	}
	if qty <= 0 {
		return fmt.Errorf("market: quantity must be positive, got %d", qty)
	}
	a := m.asset(assetID)
	if a == nil {
		return fmt.Errorf("market: unknown asset %q", assetID)
	}
	cost := a.Price * float64(qty)
	if cost > m.cash {
		return fmt.Errorf("market: need %.2f for %d %s, have %.2f", cost, qty, a.Name, m.cash)
	}
	m.cash = roundCents(m.cash - cost)
	m.holdings[assetID] += qty
	return nil
}

// Sell liquidates qty shares at the current price.
func (m *Market) Sell(assetID string, qty int) error {
	if m.Done() {
		return fmt.Errorf("market: trading window closed")
	}
	if qty <= 0 {
		return fmt.Errorf("market: quantity must be positive, got %d", qty)
	}
	a := m.asset(assetID)
	if a == nil {
		return fmt.Errorf("market: unknown asset %q", assetID)
	}
	if m.holdings[assetID] < qty {
		return fmt.Errorf("market: own %d %s, cannot sell %d", m.holdings[assetID], a.Name, qty)
	}
	m.cash = roundCents(m.cash + a.Price*float64(qty))
	m.holdings[assetID] -= qty
	return nil
}

// Advance closes the day and reprices every asset from its drift plus a
// volatility draw. Prices floor at 1.
func (m *Market) Advance() {
	if m.Done() {
		return
	}
	for i := range m.assets {
		a := &m.assets[i]
		move := a.Trend + (m.rng.Float64()-0.5)*2*a.Volatility
		a.Price = math.Max(1, roundCents(a.Price*(1+move)))
	}
	m.day++
}

// PortfolioValue is cash plus holdings at current prices.
func (m *Market) PortfolioValue() float64 {
	total := m.cash
	for i := range m.assets {
		total += m.assets[i].Price * float64(m.holdings[m.assets[i].ID])
	}
	return roundCents(total)
}

// Profit is the gain or loss against the starting stake.
func (m *Market) Profit() float64 {
	return roundCents(m.PortfolioValue() - StartingCash)
}

// Finish terminates the session. Big wins feed ambition, big losses feed
// chaos; breaking even leaves no mark.
func (m *Market) Finish() types.MinigameResult {
	profit := m.Profit()
	r := types.MinigameResult{
		Success: profit > 0,
		Metadata: map[string]any{
			"profit": profit,
			"value":  m.PortfolioValue(),
			"days":   m.day,
		},
	}
	switch {
	case profit > 200:
		r.Deltas.Ambition = 3
	case profit > 0:
		r.Deltas.Ambition = 1
	}
	switch {
	case profit < -200:
		r.Deltas.Chaos = 3
	case profit < 0:
		r.Deltas.Chaos = 1
	}
	return r
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
