package sim

// Run status labels. Keep these values stable; they go into CSV output.
const (
	StatusBankrupt = "bankrupt"
	StatusOkay     = "okay"
)

// RunResult is the terminal outcome of one Monte Carlo run.
type RunResult struct {
	Run           int
	OffsetPercent float64
	FinalValue    float64
	Bankrupt      bool

	// RetirementValue is the total fund balance at the first step where
	// income reached zero; NaN when income never stopped during the run.
	RetirementValue float64
}

func (r RunResult) Status() string {
	if r.Bankrupt {
		return StatusBankrupt
	}
	return StatusOkay
}

// FundFlow is the per-fund slice of one ledger row.
type FundFlow struct {
	Contributed float64
	Withdrawn   float64
	Value       float64
}

// LedgerRow is one weekly step of one run, recorded in verbose mode.
// Funds line up with Portfolio.FundNames.
type LedgerRow struct {
	Run          int
	Year         float64
	TotalIncome  float64
	TotalExpense float64
	Funds        []FundFlow
	Bankrupt     bool
}

// Result is the output of a full batch.
type Result struct {
	Runs      []RunResult
	FundNames []string

	// Ledger is populated only when the engine records steps.
	Ledger []LedgerRow
}
