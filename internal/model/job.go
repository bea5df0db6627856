package model

import "math"

// Job is an income source: a salary growing by a fixed annual rate.
// The raise applies once per crossed calendar-year boundary. Weekly steps
// cross at most one boundary per advance; crossing several in a single call
// is out of contract and applies only one raise.
type Job struct {
	span   Span
	salary float64
	rate   float64
	name   string
}

func NewJob(name string, span Span, salary, rate float64) *Job {
	return &Job{name: name, span: span, salary: salary, rate: rate}
}

func (j *Job) Name() string { return j.name }

func (j *Job) AdvanceTo(year float64) float64 {
	return j.span.step(year, func(dt float64) float64 {
		if math.Floor(year-dt) != math.Floor(year) {
			j.salary *= math.Exp(j.rate)
		}
		return dt * j.salary
	})
}

func (j *Job) Clone() Model {
	c := *j
	return &c
}
