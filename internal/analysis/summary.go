package analysis

import (
	"math"
	"sort"

	"finsim/internal/sim"
)

// Distribution summarizes outcomes across a batch of runs.
type Distribution struct {
	Runs         int
	Bankruptcies int
	SolventRate  float64

	MeanFinal   float64
	MedianFinal float64
	P05Final    float64
	P95Final    float64

	// Retired counts runs where income stopped and a snapshot was taken.
	Retired int
	// MedianRetirement is NaN when no run retired.
	MedianRetirement float64
}

// Summarize computes the outcome distribution for a batch.
func Summarize(runs []sim.RunResult) Distribution {
	d := Distribution{Runs: len(runs), MedianRetirement: math.NaN()}
	if len(runs) == 0 {
		return d
	}

	finals := make([]float64, 0, len(runs))
	var retirements []float64
	sum := 0.0
	for _, r := range runs {
		finals = append(finals, r.FinalValue)
		sum += r.FinalValue
		if r.Bankrupt {
			d.Bankruptcies++
		}
		if !math.IsNaN(r.RetirementValue) {
			retirements = append(retirements, r.RetirementValue)
		}
	}
	sort.Float64s(finals)

	d.SolventRate = float64(len(runs)-d.Bankruptcies) / float64(len(runs))
	d.MeanFinal = sum / float64(len(runs))
	d.MedianFinal = percentileSorted(finals, 0.50)
	d.P05Final = percentileSorted(finals, 0.05)
	d.P95Final = percentileSorted(finals, 0.95)

	d.Retired = len(retirements)
	if len(retirements) > 0 {
		sort.Float64s(retirements)
		d.MedianRetirement = percentileSorted(retirements, 0.50)
	}
	return d
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
