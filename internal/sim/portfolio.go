package sim

import "finsim/internal/model"

// Portfolio is the template model set for one household. Fund order encodes
// contribution priority: earlier funds get first call on surplus cash, and
// withdrawals drain the list from the back.
type Portfolio struct {
	Incomes  []model.Model
	Expenses []model.Model
	Funds    []*model.Fund
}

// Clone deep-copies the portfolio for one run. Fund order is preserved
// exactly; it carries the buy/sell priority.
func (p *Portfolio) Clone() *Portfolio {
	c := &Portfolio{
		Incomes:  make([]model.Model, len(p.Incomes)),
		Expenses: make([]model.Model, len(p.Expenses)),
		Funds:    make([]*model.Fund, len(p.Funds)),
	}
	for i, m := range p.Incomes {
		c.Incomes[i] = m.Clone()
	}
	for i, m := range p.Expenses {
		c.Expenses[i] = m.Clone()
	}
	for i, f := range p.Funds {
		c.Funds[i] = f.Clone()
	}
	return c
}

// FundNames returns fund names in priority order, for ledger headers.
func (p *Portfolio) FundNames() []string {
	names := make([]string, len(p.Funds))
	for i, f := range p.Funds {
		names[i] = f.Name()
	}
	return names
}
