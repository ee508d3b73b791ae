package analysis

import "math"

// Summary aggregates the headline numbers of one analysis run for the results
// table and log output.
type Summary struct {
	Method       Method
	SampledRadii int
	SumInters    float64
	AvgInters    float64
	ZeroCounts   int

	Decay         float64
	DecayRSquared float64

	CriticalValue     float64
	CriticalRadius    float64
	MeanValue         float64
	RamificationIndex float64
	PolynomialDegree  float64 // NaN for non-polynomial fits
	RSquared          float64
	FitPerformed      bool
}

// NewSummary builds the summary from the raw profile and the analysis result.
func NewSummary(radii, counts []float64, res *Result, opts Options) Summary {
	s := Summary{
		Method:            opts.Method,
		SampledRadii:      len(radii),
		Decay:             res.Decay,
		DecayRSquared:     res.DecayRSquared,
		CriticalValue:     res.CriticalValue,
		CriticalRadius:    res.CriticalRadius,
		MeanValue:         res.MeanValue,
		RamificationIndex: res.RamificationIndex,
		PolynomialDegree:  math.NaN(),
		RSquared:          res.RSquared,
		FitPerformed:      res.FitPerformed,
	}
	for _, c := range counts {
		s.SumInters += c
		if c == 0 {
			s.ZeroCounts++
		}
	}
	if len(counts) > 0 {
		s.AvgInters = s.SumInters / float64(len(counts))
	}
	if res.FitPerformed && opts.Method == MethodLinear {
		s.PolynomialDegree = float64(len(res.Coeffs) - 1)
	}
	return s
}
