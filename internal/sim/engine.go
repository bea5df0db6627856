package sim

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
)

// Period is the simulation timestep: one week in years.
const Period = 1.0 / 52.0

// Params are the global run controls.
type Params struct {
	Years float64
	Runs  int
	Seed  int64

	// OffsetPercent fixes the historical starting point for every run;
	// a negative value randomizes it per run.
	OffsetPercent float64

	// Workers bounds concurrent runs; <= 1 runs sequentially.
	Workers int

	// RecordLedger keeps per-step rows for verbose output.
	RecordLedger bool
}

// Engine drives Monte Carlo batches over an immutable template portfolio.
type Engine struct {
	params   Params
	template *Portfolio
}

func New(params Params, template *Portfolio) *Engine {
	return &Engine{params: params, template: template}
}

// Run executes the full batch. Per-run offsets are drawn up front from one
// seeded generator, so the output is identical for any worker count.
func (e *Engine) Run() (*Result, error) {
	if e.params.Runs <= 0 {
		return nil, fmt.Errorf("sim: runs must be positive, got %d", e.params.Runs)
	}
	if e.params.Years <= 0 {
		return nil, fmt.Errorf("sim: years must be positive, got %v", e.params.Years)
	}

	offsets := make([]float64, e.params.Runs)
	if e.params.OffsetPercent >= 0 {
		for i := range offsets {
			offsets[i] = e.params.OffsetPercent
		}
	} else {
		rng := rand.New(rand.NewSource(e.params.Seed))
		for i := range offsets {
			offsets[i] = rng.Float64()
		}
	}

	res := &Result{
		Runs:      make([]RunResult, e.params.Runs),
		FundNames: e.template.FundNames(),
	}
	ledgers := make([][]LedgerRow, e.params.Runs)
	errs := make([]error, e.params.Runs)

	workers := e.params.Workers
	if workers > e.params.Runs {
		workers = e.params.Runs
	}
	if workers <= 1 {
		for id := range res.Runs {
			res.Runs[id], ledgers[id], errs[id] = e.runOne(id, offsets[id])
		}
	} else {
		var wg sync.WaitGroup
		sem := make(chan struct{}, workers)
		for id := range res.Runs {
			wg.Add(1)
			sem <- struct{}{}
			go func(id int) {
				defer wg.Done()
				defer func() { <-sem }()
				res.Runs[id], ledgers[id], errs[id] = e.runOne(id, offsets[id])
			}(id)
		}
		wg.Wait()
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if e.params.RecordLedger {
		for _, rows := range ledgers {
			res.Ledger = append(res.Ledger, rows...)
		}
	}
	return res, nil
}

func (e *Engine) runOne(id int, offset float64) (RunResult, []LedgerRow, error) {
	p := e.template.Clone()
	for _, f := range p.Funds {
		f.SetOffsetPercent(offset)
	}

	out := RunResult{Run: id, OffsetPercent: offset, RetirementValue: math.NaN()}
	var ledger []LedgerRow
	retired := false

	steps := int(e.params.Years / Period)
	for i := 1; i <= steps; i++ {
		year := float64(i) * Period

		totalIncome := 0.0
		for _, m := range p.Incomes {
			totalIncome += m.AdvanceTo(year)
		}

		// Income stopping is the retirement moment; snapshot the funds once.
		if totalIncome == 0 && !retired {
			retired = true
			total := 0.0
			for _, f := range p.Funds {
				total += f.Amount()
			}
			out.RetirementValue = total
		}

		totalExpense := 0.0
		for _, m := range p.Expenses {
			totalExpense += m.AdvanceTo(year)
		}

		toInvest := math.Max(totalIncome-totalExpense, 0)
		toSpend := math.Max(totalExpense-totalIncome, 0)

		for _, f := range p.Funds {
			if _, err := f.Grow(year); err != nil {
				return out, nil, fmt.Errorf("run %d year %.3f fund %s: %w", id, year, f.Name(), err)
			}
		}

		var flows []FundFlow
		if e.params.RecordLedger {
			flows = make([]FundFlow, len(p.Funds))
		}

		// Surplus flows down the fund list: each fund absorbs what its
		// contribution limit allows before the rest moves on.
		for fi, f := range p.Funds {
			bought := f.Buy(toInvest)
			toInvest -= bought
			if flows != nil {
				flows[fi].Contributed = bought
			}
		}

		// Deficits drain the list from the back, lowest priority first.
		for fi := len(p.Funds) - 1; fi >= 0; fi-- {
			sold := p.Funds[fi].Sell(toSpend)
			toSpend -= sold
			if flows != nil {
				flows[fi].Withdrawn = sold
			}
		}

		// Uncovered expenses mean bankruptcy, and the flag stays set for
		// the rest of the run.
		if toSpend > 0 {
			out.Bankrupt = true
		}

		if e.params.RecordLedger {
			for fi, f := range p.Funds {
				flows[fi].Value = f.Amount()
			}
			ledger = append(ledger, LedgerRow{
				Run:          id,
				Year:         year,
				TotalIncome:  totalIncome,
				TotalExpense: totalExpense,
				Funds:        flows,
				Bankrupt:     out.Bankrupt,
			})
		}
	}

	total := 0.0
	for _, f := range p.Funds {
		total += f.Amount()
	}
	out.FinalValue = total
	return out, ledger, nil
}
