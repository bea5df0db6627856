package model

import "math"

// Model is a time-windowed financial participant. AdvanceTo moves the model's
// clock to year (non-decreasing within one run) and returns the cash flow
// produced over the elapsed interval: income for income models, cost for
// expense models. There are no error conditions; outside the activation
// window the flow is zero.
type Model interface {
	Name() string
	AdvanceTo(year float64) float64
	Clone() Model
}

// Span is the activation window shared by flow-style models.
// Start is the year the model becomes active. Duration <= 0 means unbounded.
type Span struct {
	Start    float64
	Duration float64

	year float64
}

// End is the first year the window is no longer active.
func (s *Span) End() float64 {
	if s.Duration <= 0 {
		return math.Inf(1)
	}
	return s.Start + s.Duration
}

// Year returns the model clock.
func (s *Span) Year() float64 { return s.year }

// advance moves the clock to year and returns the elapsed interval.
// The clock moves even outside the activation window so a later in-window
// call computes a correct dt.
func (s *Span) advance(year float64) float64 {
	prev := s.year
	s.year = year
	return year - prev
}

// step applies fn over the elapsed interval when the window is active.
// Outside [Start, End), or for a non-positive interval, only the clock moves
// and the flow is zero.
func (s *Span) step(year float64, fn func(dt float64) float64) float64 {
	dt := s.advance(year)
	if year < s.Start || year >= s.End() || dt <= 0 {
		return 0
	}
	return fn(dt)
}
