package model

// Cost is a fixed-total expense amortized evenly across its window, with an
// optional down payment on entering the window and a closing cost at the end.
// It handles the window itself rather than going through Span.step: the down
// payment and close-out must land exactly on the boundary steps, which the
// shared gate cannot express.
type Cost struct {
	span      Span
	total     float64
	remaining float64
	down      float64
	close     float64
	name      string
}

func NewCost(name string, span Span, total, down, close float64) *Cost {
	return &Cost{
		name:      name,
		span:      span,
		total:     total,
		remaining: total,
		down:      down,
		close:     close,
	}
}

func (c *Cost) Name() string { return c.name }

func (c *Cost) AdvanceTo(year float64) float64 {
	dt := c.span.advance(year)
	if year < c.span.Start {
		return 0
	}
	if year >= c.span.End() {
		// Disburse whatever is left plus the closing cost. Both zero out, so
		// every later call returns 0.
		out := c.remaining + c.close
		c.remaining = 0
		c.close = 0
		return out
	}

	if c.down > 0 {
		// The down payment consumes the entire step's disbursement; the
		// amortized portion for this step is skipped.
		out := c.down
		c.total -= c.down
		c.remaining -= c.down
		c.down = 0
		return out
	}

	amount := dt * c.total / (c.span.End() - c.span.Start)
	if amount > c.remaining {
		amount = c.remaining
	}
	c.remaining -= amount
	return amount
}

func (c *Cost) Clone() Model {
	cp := *c
	return &cp
}
