package config

import (
	"errors"
	"fmt"
	"os"

	"finsim/internal/marketdata"
	"finsim/internal/model"
	"finsim/internal/sim"

	"gopkg.in/yaml.v3"
)

// Model type names accepted in configuration.
const (
	TypeJob      = "job"
	TypeSpending = "spending"
	TypeCost     = "cost"
	TypeFixed    = "fixed"
	TypeMarket   = "market"
)

// Config is the on-disk configuration shape (YAML). The same shapes bind
// from JSON for the API's inline-config requests.
type Config struct {
	// MarketData is the path to the packed float32 sample file. Required
	// only when a market-backed fund is configured.
	MarketData string `yaml:"market_data" json:"market_data,omitempty"`

	Simulation SimulationConfig `yaml:"simulation" json:"simulation"`

	// Fund order is the contribution priority; withdrawals go in reverse.
	Incomes  []ModelConfig `yaml:"incomes" json:"incomes"`
	Expenses []ModelConfig `yaml:"expenses" json:"expenses"`
	Funds    []FundConfig  `yaml:"funds" json:"funds"`
}

type SimulationConfig struct {
	Years float64 `yaml:"years" json:"years"`
	Runs  int     `yaml:"runs" json:"runs"`
	Seed  int64   `yaml:"seed" json:"seed"`

	// OffsetPercent overrides the per-run randomized historical offset.
	// Omitted or negative means randomize.
	OffsetPercent *float64 `yaml:"offset_percent" json:"offset_percent,omitempty"`

	Workers int `yaml:"workers" json:"workers,omitempty"`
}

// ModelConfig configures one income or expense model. Duration omitted or 0
// means unbounded.
type ModelConfig struct {
	Name     string  `yaml:"name" json:"name"`
	Type     string  `yaml:"type" json:"type"`
	Start    float64 `yaml:"start" json:"start,omitempty"`
	Duration float64 `yaml:"duration" json:"duration,omitempty"`

	// job: starting salary and annual raise rate.
	Salary float64 `yaml:"salary" json:"salary,omitempty"`

	// spending: starting annual amount, drift rate, and growth mode.
	Annual      float64 `yaml:"annual" json:"annual,omitempty"`
	Exponential bool    `yaml:"exponential" json:"exponential,omitempty"`

	// Rate is the job raise rate or the spending drift rate.
	Rate float64 `yaml:"rate" json:"rate,omitempty"`

	// cost: total to amortize over the window, down payment at the start,
	// closing cost at the end.
	Total float64 `yaml:"total" json:"total,omitempty"`
	Down  float64 `yaml:"down" json:"down,omitempty"`
	Close float64 `yaml:"close" json:"close,omitempty"`
}

type FundConfig struct {
	Name     string  `yaml:"name" json:"name"`
	Type     string  `yaml:"type" json:"type"`
	Start    float64 `yaml:"start" json:"start,omitempty"`
	Duration float64 `yaml:"duration" json:"duration,omitempty"`

	Amount float64 `yaml:"amount" json:"amount"`
	Limit  float64 `yaml:"limit" json:"limit,omitempty"`

	// Rate is the annual return of a fixed-rate fund.
	Rate float64 `yaml:"rate" json:"rate,omitempty"`
}

// Load reads a YAML config, applies defaults, and validates it.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ApplyDefaults fills zero-valued run parameters.
func (c *Config) ApplyDefaults() {
	if c.Simulation.Years == 0 {
		c.Simulation.Years = 1
	}
	if c.Simulation.Runs == 0 {
		c.Simulation.Runs = 1
	}
	if c.Simulation.Seed == 0 {
		c.Simulation.Seed = 42
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Simulation.Years <= 0 {
		return fmt.Errorf("simulation.years must be positive, got %v", c.Simulation.Years)
	}
	if c.Simulation.Runs <= 0 {
		return fmt.Errorf("simulation.runs must be positive, got %d", c.Simulation.Runs)
	}
	if p := c.Simulation.OffsetPercent; p != nil && *p >= 1 {
		return fmt.Errorf("simulation.offset_percent must be below 1, got %v", *p)
	}

	seen := map[string]bool{}
	check := func(name string) error {
		if name == "" {
			return errors.New("model name is required")
		}
		if seen[name] {
			return fmt.Errorf("duplicate model name %q", name)
		}
		seen[name] = true
		return nil
	}

	for _, m := range c.Incomes {
		if err := check(m.Name); err != nil {
			return err
		}
		if m.Type != TypeJob {
			return fmt.Errorf("income %q: unknown type %q", m.Name, m.Type)
		}
	}
	for _, m := range c.Expenses {
		if err := check(m.Name); err != nil {
			return err
		}
		switch m.Type {
		case TypeSpending:
		case TypeCost:
			if m.Duration <= 0 {
				return fmt.Errorf("cost %q: a finite duration is required to amortize over", m.Name)
			}
		default:
			return fmt.Errorf("expense %q: unknown type %q", m.Name, m.Type)
		}
	}
	for _, f := range c.Funds {
		if err := check(f.Name); err != nil {
			return err
		}
		if f.Amount < 0 {
			return fmt.Errorf("fund %q: amount must not be negative", f.Name)
		}
		if f.Limit < 0 {
			return fmt.Errorf("fund %q: limit must not be negative", f.Name)
		}
		switch f.Type {
		case TypeFixed:
		case TypeMarket:
			if c.MarketData == "" {
				return fmt.Errorf("fund %q: market_data path is required for market funds", f.Name)
			}
		default:
			return fmt.Errorf("fund %q: unknown type %q", f.Name, f.Type)
		}
	}
	return nil
}

// NeedsMarketData reports whether any fund is market-backed.
func (c *Config) NeedsMarketData() bool {
	for _, f := range c.Funds {
		if f.Type == TypeMarket {
			return true
		}
	}
	return false
}

// Build constructs the template portfolio and run parameters. Market-backed
// funds share the process-wide data source; a missing or unreadable file is
// fatal here, before any run starts.
func (c *Config) Build() (*sim.Portfolio, sim.Params, error) {
	var src *marketdata.Source
	if c.NeedsMarketData() {
		var err error
		src, err = marketdata.Shared(c.MarketData)
		if err != nil {
			return nil, sim.Params{}, err
		}
	}
	return c.BuildWith(src)
}

// BuildWith constructs the portfolio against an explicit data source,
// bypassing the shared handle.
func (c *Config) BuildWith(src *marketdata.Source) (*sim.Portfolio, sim.Params, error) {
	portfolio := &sim.Portfolio{}

	for _, m := range c.Incomes {
		span := model.Span{Start: m.Start, Duration: m.Duration}
		switch m.Type {
		case TypeJob:
			portfolio.Incomes = append(portfolio.Incomes, model.NewJob(m.Name, span, m.Salary, m.Rate))
		default:
			return nil, sim.Params{}, fmt.Errorf("income %q: unknown type %q", m.Name, m.Type)
		}
	}
	for _, m := range c.Expenses {
		span := model.Span{Start: m.Start, Duration: m.Duration}
		switch m.Type {
		case TypeSpending:
			portfolio.Expenses = append(portfolio.Expenses, model.NewSpending(m.Name, span, m.Annual, m.Rate, m.Exponential))
		case TypeCost:
			portfolio.Expenses = append(portfolio.Expenses, model.NewCost(m.Name, span, m.Total, m.Down, m.Close))
		default:
			return nil, sim.Params{}, fmt.Errorf("expense %q: unknown type %q", m.Name, m.Type)
		}
	}
	for _, f := range c.Funds {
		span := model.Span{Start: f.Start, Duration: f.Duration}
		switch f.Type {
		case TypeFixed:
			portfolio.Funds = append(portfolio.Funds, model.NewFund(f.Name, span, f.Amount, f.Limit, model.FixedGrowth{Rate: f.Rate}))
		case TypeMarket:
			if src == nil {
				return nil, sim.Params{}, fmt.Errorf("fund %q: no market data source", f.Name)
			}
			portfolio.Funds = append(portfolio.Funds, model.NewFund(f.Name, span, f.Amount, f.Limit, model.NewMarketGrowth(src)))
		default:
			return nil, sim.Params{}, fmt.Errorf("fund %q: unknown type %q", f.Name, f.Type)
		}
	}

	params := sim.Params{
		Years:         c.Simulation.Years,
		Runs:          c.Simulation.Runs,
		Seed:          c.Simulation.Seed,
		OffsetPercent: -1,
		Workers:       c.Simulation.Workers,
	}
	if c.Simulation.OffsetPercent != nil && *c.Simulation.OffsetPercent >= 0 {
		params.OffsetPercent = *c.Simulation.OffsetPercent
	}
	return portfolio, params, nil
}
