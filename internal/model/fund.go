package model

import (
	"math"

	"finsim/internal/marketdata"
)

// GrowthRule scales a fund balance across a step. year is the clock after
// the advance; the returned factor covers [year, year+dt] of the rule's own
// timeline.
type GrowthRule interface {
	Factor(year, dt float64) (float64, error)
	CloneRule() GrowthRule
}

// FixedGrowth compounds continuously at a fixed annual rate.
type FixedGrowth struct {
	Rate float64
}

func (g FixedGrowth) Factor(_, dt float64) (float64, error) {
	return math.Exp(g.Rate * dt), nil
}

func (g FixedGrowth) CloneRule() GrowthRule { return g }

// MarketGrowth tracks a historical price series: the balance scales by the
// ratio of the series price one step ahead to the price at the current
// clock, independent of the balance's absolute size. Each run pins its own
// day offset into the series.
type MarketGrowth struct {
	src       *marketdata.Source
	dayOffset float64
}

func NewMarketGrowth(src *marketdata.Source) *MarketGrowth {
	return &MarketGrowth{src: src}
}

// SetOffsetPercent pins the run's historical starting point: p in [0,1)
// maps to a day offset of p times the recorded sample count.
func (g *MarketGrowth) SetOffsetPercent(p float64) {
	g.dayOffset = p * float64(g.src.Len())
}

func (g *MarketGrowth) Factor(year, dt float64) (float64, error) {
	from, err := g.src.Price(year, g.dayOffset)
	if err != nil {
		return 0, err
	}
	to, err := g.src.Price(year+dt, g.dayOffset)
	if err != nil {
		return 0, err
	}
	return to / from, nil
}

func (g *MarketGrowth) CloneRule() GrowthRule {
	c := *g
	return &c
}

// Fund is a balance-holding account. Unlike flow models it accrues growth on
// every advance, active window or not: the balance is persisted capital, not
// a flow. The window only gates withdrawals.
type Fund struct {
	span        Span
	amount      float64
	limit       float64 // annual contribution cap; 0 = unlimited
	contributed map[int]float64
	growth      GrowthRule
	name        string
}

func NewFund(name string, span Span, amount, limit float64, growth GrowthRule) *Fund {
	return &Fund{
		name:        name,
		span:        span,
		amount:      amount,
		limit:       limit,
		contributed: map[int]float64{},
		growth:      growth,
	}
}

func (f *Fund) Name() string { return f.name }

// Amount is the current balance.
func (f *Fund) Amount() float64 { return f.amount }

// Grow advances the balance to year through the growth rule and returns the
// new balance. A market-backed rule fails when the requested year runs past
// the extrapolation range of the data.
func (f *Fund) Grow(year float64) (float64, error) {
	dt := f.span.advance(year)
	factor, err := f.growth.Factor(year, dt)
	if err != nil {
		return 0, err
	}
	f.amount *= factor
	return f.amount, nil
}

// Buy deposits up to amount and returns what was actually absorbed. With a
// positive limit the deposit is capped by the room left in the current
// calendar year's contribution bucket.
func (f *Fund) Buy(amount float64) float64 {
	if amount < 0 {
		return 0
	}
	if f.limit > 0 {
		yr := int(math.Floor(f.span.Year()))
		room := f.limit - f.contributed[yr]
		if amount > room {
			amount = room
		}
		f.contributed[yr] += amount
	}
	f.amount += amount
	return amount
}

// Sell withdraws up to amount, clamped to the balance, and returns what was
// actually withdrawn. A fund that has not reached its start year sells
// nothing; tracking the shortfall is the caller's job.
func (f *Fund) Sell(amount float64) float64 {
	if f.span.Year() < f.span.Start || amount < 0 {
		return 0
	}
	if amount > f.amount {
		amount = f.amount
	}
	f.amount -= amount
	return amount
}

// SetOffsetPercent pins the historical starting point for market-backed
// growth. Fixed-rate funds ignore it.
func (f *Fund) SetOffsetPercent(p float64) {
	if g, ok := f.growth.(*MarketGrowth); ok {
		g.SetOffsetPercent(p)
	}
}

// Clone returns an independent copy for one simulation run.
func (f *Fund) Clone() *Fund {
	c := *f
	c.contributed = make(map[int]float64, len(f.contributed))
	for yr, v := range f.contributed {
		c.contributed[yr] = v
	}
	c.growth = f.growth.CloneRule()
	return &c
}
