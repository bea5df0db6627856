package model

import "math"

// Spending is a recurring expense with a drifting annual rate. Linear mode
// adds rate dollars per year to the annual amount; exponential mode compounds
// it continuously. The rate change applies before the step's cost is
// computed, so it is retroactive within the step.
type Spending struct {
	span        Span
	annual      float64
	rate        float64
	exponential bool
	name        string
}

func NewSpending(name string, span Span, annual, rate float64, exponential bool) *Spending {
	return &Spending{name: name, span: span, annual: annual, rate: rate, exponential: exponential}
}

func (s *Spending) Name() string { return s.name }

func (s *Spending) AdvanceTo(year float64) float64 {
	return s.span.step(year, func(dt float64) float64 {
		if s.exponential {
			s.annual *= math.Exp(s.rate * dt)
		} else {
			s.annual += dt * s.rate
		}
		return dt * s.annual
	})
}

func (s *Spending) Clone() Model {
	c := *s
	return &c
}
