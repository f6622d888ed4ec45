package statistics

import (
	"fmt"
	"math"
	"sort"
)

// Sample accumulates a stream of per-hand results (net units won or lost)
// for mean, variance and percentile estimates
type Sample struct {
	N      int
	Sum    float64
	SumSq  float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation
}

// Add incorporates a new value
func (s *Sample) Add(v float64) {
	s.N++
	s.Sum += v
	s.SumSq += v * v
	s.Values = append(s.Values, v)
}

// Mean returns the arithmetic mean
func (s *Sample) Mean() float64 {
	if s.N == 0 {
		return 0
	}
	return s.Sum / float64(s.N)
}

// Variance returns the sample variance
func (s *Sample) Variance() float64 {
	if s.N < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumSq - float64(s.N)*mean*mean) / float64(s.N-1)
	if v < 0 {
		return 0 // rounding on near-constant samples
	}
	return v
}

// StdDev returns the sample standard deviation
func (s *Sample) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Sample) StdError() float64 {
	if s.N == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.N))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Sample) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

func (s *Sample) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// Median returns the median value
func (s *Sample) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Sample) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks the sample's internal bookkeeping
func (s *Sample) Validate() error {
	if len(s.Values) != s.N {
		return fmt.Errorf("values array length (%d) does not match count (%d)", len(s.Values), s.N)
	}
	var sum float64
	for _, v := range s.Values {
		sum += v
	}
	if math.Abs(sum-s.Sum) > 1e-6 {
		return fmt.Errorf("sum mismatch: stored %.6f, recomputed %.6f", s.Sum, sum)
	}
	return nil
}
