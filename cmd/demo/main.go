package main

import (
	"flag"
	"fmt"

	"finsim/internal/analysis"
	"finsim/internal/model"
	"finsim/internal/sim"
)

// Demo:
// - Build a small household with fixed-rate funds (no market data file needed)
// - Run a single deterministic simulation
// - Print the outcome to show how models fit together
func main() {
	years := flag.Float64("years", 30, "Simulated years")
	salary := flag.Float64("salary", 90000, "Starting salary")
	workYears := flag.Float64("work-years", 12, "Years of income")
	spending := flag.Float64("spending", 55000, "Annual spending")
	flag.Parse()

	portfolio := &sim.Portfolio{
		Incomes: []model.Model{
			model.NewJob("job", model.Span{Duration: *workYears}, *salary, 0.04),
		},
		Expenses: []model.Model{
			model.NewSpending("spending", model.Span{}, *spending, 0.02, false),
			model.NewCost("car", model.Span{Start: 2, Duration: 3}, 45000, 9000, 500),
		},
		Funds: []*model.Fund{
			model.NewFund("retirement", model.Span{Start: 10}, 40000, 23000, model.FixedGrowth{Rate: 0.06}),
			model.NewFund("savings", model.Span{}, 20000, 0, model.FixedGrowth{Rate: 0.03}),
		},
	}

	params := sim.Params{
		Years:         *years,
		Runs:          1,
		Seed:          42,
		OffsetPercent: 0,
	}

	result, err := sim.New(params, portfolio).Run()
	if err != nil {
		panic(err)
	}

	run := result.Runs[0]
	fmt.Printf("Simulated %.0f years at weekly steps\n", *years)
	fmt.Printf("Final fund value: $%.2f (%s)\n", run.FinalValue, run.Status())

	d := analysis.Summarize(result.Runs)
	if d.Retired > 0 {
		fmt.Printf("Retired with $%.2f after %.0f working years\n", run.RetirementValue, *workYears)
	} else {
		fmt.Println("Income never stopped during the horizon")
	}
}
