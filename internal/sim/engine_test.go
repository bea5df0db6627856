package sim

import (
	"math"
	"testing"

	"finsim/internal/marketdata"
	"finsim/internal/model"
)

func fixedPortfolio(salary, spending, fundRate float64) *Portfolio {
	return &Portfolio{
		Incomes: []model.Model{
			model.NewJob("job", model.Span{}, salary, 0),
		},
		Expenses: []model.Model{
			model.NewSpending("spending", model.Span{}, spending, 0, false),
		},
		Funds: []*model.Fund{
			model.NewFund("savings", model.Span{}, 0, 0, model.FixedGrowth{Rate: fundRate}),
		},
	}
}

func TestSurplusCompoundsWeekly(t *testing.T) {
	engine := New(Params{
		Years:         10,
		Runs:          1,
		Seed:          1,
		OffsetPercent: 0,
		RecordLedger:  true,
	}, fixedPortfolio(50000, 40000, 0.05))

	res, err := engine.Run()
	if err != nil {
		t.Fatal(err)
	}

	run := res.Runs[0]
	if run.Bankrupt {
		t.Error("surplus household went bankrupt")
	}
	if !math.IsNaN(run.RetirementValue) {
		t.Errorf("income never stopped; retirement snapshot should be NaN, got %.2f", run.RetirementValue)
	}

	// A 10000/year surplus at 5% compounded weekly lands near the
	// continuous-annuity value of ~129700, well above the flat 100000 sum.
	if run.FinalValue < 120000 || run.FinalValue > 140000 {
		t.Errorf("final value out of band: %.2f", run.FinalValue)
	}
	if run.FinalValue <= 110000 {
		t.Errorf("growth not visible in final value: %.2f", run.FinalValue)
	}

	prev := 0.0
	for _, row := range res.Ledger {
		if v := row.Funds[0].Value; v < prev {
			t.Fatalf("fund balance decreased at year %.3f: %.2f < %.2f", row.Year, v, prev)
		} else {
			prev = v
		}
	}
}

func TestBankruptcyIsSticky(t *testing.T) {
	portfolio := &Portfolio{
		Incomes: []model.Model{
			model.NewJob("job", model.Span{}, 10000, 0),
		},
		Expenses: []model.Model{
			// Crushing expenses for the first year only; later years run a
			// surplus, but the flag must not clear.
			model.NewSpending("spending", model.Span{Duration: 1}, 100000, 0, false),
		},
		Funds: []*model.Fund{
			model.NewFund("savings", model.Span{}, 0, 0, model.FixedGrowth{}),
		},
	}
	engine := New(Params{Years: 3, Runs: 1, Seed: 1, OffsetPercent: 0}, portfolio)

	res, err := engine.Run()
	if err != nil {
		t.Fatal(err)
	}
	run := res.Runs[0]
	if !run.Bankrupt {
		t.Error("expected bankruptcy from the deficit year")
	}
	if run.FinalValue <= 0 {
		t.Errorf("later surplus should still accumulate, got %.2f", run.FinalValue)
	}
}

func TestRetirementSnapshotTakenOnce(t *testing.T) {
	portfolio := &Portfolio{
		Incomes: []model.Model{
			model.NewJob("job", model.Span{Duration: 5}, 60000, 0),
		},
		Expenses: []model.Model{
			model.NewSpending("spending", model.Span{}, 30000, 0, false),
		},
		Funds: []*model.Fund{
			model.NewFund("savings", model.Span{}, 0, 0, model.FixedGrowth{}),
		},
	}
	engine := New(Params{Years: 10, Runs: 1, Seed: 1, OffsetPercent: 0}, portfolio)

	res, err := engine.Run()
	if err != nil {
		t.Fatal(err)
	}
	run := res.Runs[0]

	// 30000/year surplus for 5 working years, captured the first week the
	// job stops producing income.
	if math.IsNaN(run.RetirementValue) {
		t.Fatal("expected a retirement snapshot")
	}
	if run.RetirementValue < 140000 || run.RetirementValue > 151000 {
		t.Errorf("retirement snapshot out of band: %.2f", run.RetirementValue)
	}
	// After retirement the household keeps drawing down; the final value
	// reflects 5 more years of spending.
	if run.FinalValue >= run.RetirementValue {
		t.Errorf("expected drawdown after retirement: final %.2f >= snapshot %.2f",
			run.FinalValue, run.RetirementValue)
	}
}

func marketPortfolio(t *testing.T) *Portfolio {
	t.Helper()
	samples := make([]float32, 1500)
	for i := range samples {
		samples[i] = float32(100 * math.Exp(0.0003*float64(i)))
	}
	src, err := marketdata.FromSamples(samples)
	if err != nil {
		t.Fatal(err)
	}
	return &Portfolio{
		Incomes: []model.Model{
			model.NewJob("job", model.Span{}, 80000, 0.03),
		},
		Expenses: []model.Model{
			model.NewSpending("spending", model.Span{}, 50000, 0.01, true),
		},
		Funds: []*model.Fund{
			model.NewFund("market", model.Span{}, 10000, 0, model.NewMarketGrowth(src)),
			model.NewFund("retirement", model.Span{}, 5000, 2400, model.NewMarketGrowth(src)),
		},
	}
}

// runsEqual compares terminal outcomes, treating NaN retirement sentinels as
// equal.
func runsEqual(a, b RunResult) bool {
	if a.Run != b.Run || a.OffsetPercent != b.OffsetPercent ||
		a.FinalValue != b.FinalValue || a.Bankrupt != b.Bankrupt {
		return false
	}
	if math.IsNaN(a.RetirementValue) || math.IsNaN(b.RetirementValue) {
		return math.IsNaN(a.RetirementValue) && math.IsNaN(b.RetirementValue)
	}
	return a.RetirementValue == b.RetirementValue
}

func TestSameSeedIsDeterministic(t *testing.T) {
	params := Params{Years: 2, Runs: 20, Seed: 7, OffsetPercent: -1}
	portfolio := marketPortfolio(t)

	a, err := New(params, portfolio).Run()
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(params, portfolio).Run()
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Runs {
		if !runsEqual(a.Runs[i], b.Runs[i]) {
			t.Fatalf("run %d differs between identical batches: %+v vs %+v", i, a.Runs[i], b.Runs[i])
		}
	}
}

func TestWorkerCountDoesNotChangeResults(t *testing.T) {
	portfolio := marketPortfolio(t)

	seq, err := New(Params{Years: 2, Runs: 20, Seed: 7, OffsetPercent: -1, Workers: 1}, portfolio).Run()
	if err != nil {
		t.Fatal(err)
	}
	par, err := New(Params{Years: 2, Runs: 20, Seed: 7, OffsetPercent: -1, Workers: 8}, portfolio).Run()
	if err != nil {
		t.Fatal(err)
	}
	for i := range seq.Runs {
		if !runsEqual(seq.Runs[i], par.Runs[i]) {
			t.Fatalf("run %d differs under parallel execution: %+v vs %+v", i, seq.Runs[i], par.Runs[i])
		}
	}
}

func TestContributionPriorityOrder(t *testing.T) {
	portfolio := &Portfolio{
		Incomes: []model.Model{
			model.NewJob("job", model.Span{}, 52000, 0),
		},
		Funds: []*model.Fund{
			model.NewFund("limited", model.Span{}, 0, 1000, model.FixedGrowth{}),
			model.NewFund("overflow", model.Span{}, 0, 0, model.FixedGrowth{}),
		},
	}
	engine := New(Params{Years: 1, Runs: 1, Seed: 1, OffsetPercent: 0, RecordLedger: true}, portfolio)

	res, err := engine.Run()
	if err != nil {
		t.Fatal(err)
	}

	// Week 1's 1000 surplus fills the limited fund's whole annual room; the
	// overflow fund takes everything after that until the calendar rolls.
	first := res.Ledger[0]
	if got := first.Funds[0].Contributed; math.Abs(got-1000) > 1e-6 {
		t.Errorf("week 1: limited fund should absorb 1000, got %.2f", got)
	}
	if got := first.Funds[1].Contributed; got > 1e-6 {
		t.Errorf("week 1: overflow fund should absorb nothing, got %.6f", got)
	}
	second := res.Ledger[1]
	if got := second.Funds[1].Contributed; math.Abs(got-1000) > 1e-6 {
		t.Errorf("week 2: overflow fund should absorb 1000, got %.2f", got)
	}
}

func TestWithdrawalsDrainReversePriority(t *testing.T) {
	portfolio := &Portfolio{
		Expenses: []model.Model{
			model.NewSpending("spending", model.Span{}, 5200, 0, false),
		},
		Funds: []*model.Fund{
			model.NewFund("keep", model.Span{}, 500, 0, model.FixedGrowth{}),
			model.NewFund("drain", model.Span{}, 500, 0, model.FixedGrowth{}),
		},
	}
	engine := New(Params{Years: 0.25, Runs: 1, Seed: 1, OffsetPercent: 0, RecordLedger: true}, portfolio)

	res, err := engine.Run()
	if err != nil {
		t.Fatal(err)
	}

	first := res.Ledger[0]
	if got := first.Funds[1].Withdrawn; math.Abs(got-100) > 1e-6 {
		t.Errorf("week 1: last-priority fund should cover the 100 deficit, got %.2f", got)
	}
	if got := first.Funds[0].Withdrawn; got != 0 {
		t.Errorf("week 1: first-priority fund should be untouched, got %.2f", got)
	}

	// With no income at all, the snapshot lands on week 1 and the funds run
	// dry before the quarter ends.
	run := res.Runs[0]
	if !run.Bankrupt {
		t.Error("expected bankruptcy once both funds are empty")
	}
}

func TestOffsetZeroPinsEveryRun(t *testing.T) {
	res, err := New(Params{Years: 2, Runs: 10, Seed: 7, OffsetPercent: 0}, marketPortfolio(t)).Run()
	if err != nil {
		t.Fatal(err)
	}
	first := res.Runs[0]
	for i, run := range res.Runs {
		if run.OffsetPercent != 0 {
			t.Fatalf("run %d: offset 0 should pin the start, got %v", i, run.OffsetPercent)
		}
		if run.FinalValue != first.FinalValue {
			t.Fatalf("run %d: pinned runs must be identical, got final %v vs %v",
				i, run.FinalValue, first.FinalValue)
		}
	}
}

func TestRunValidation(t *testing.T) {
	if _, err := New(Params{Years: 1, Runs: 0}, fixedPortfolio(1, 1, 0)).Run(); err == nil {
		t.Error("expected an error for zero runs")
	}
	if _, err := New(Params{Years: 0, Runs: 1}, fixedPortfolio(1, 1, 0)).Run(); err == nil {
		t.Error("expected an error for zero years")
	}
}
