package statistic

import (
	"fmt"
	"math"

	"github.com/myerscody16/DSC530/domain/core"
	"github.com/myerscody16/DSC530/domain/sample"
)

// CategoricalAbsDeviation measures total absolute deviation from expected
// counts, sum |observed_i - expected_i|. Two-sided by construction.
//
// Expected counts are fixed once at Bind time from the configured category
// probabilities (uniform unless supplied) scaled to the observed total, and
// reused unchanged for every simulated arrangement.
type CategoricalAbsDeviation struct {
	probs    []float64 // nil means uniform
	expected []float64 // fixed at Bind
}

// NewCategoricalAbsDeviation creates the deviation statistic under a uniform null
func NewCategoricalAbsDeviation() *CategoricalAbsDeviation {
	return &CategoricalAbsDeviation{}
}

// NewCategoricalAbsDeviationWithExpected creates the deviation statistic with
// explicit per-category probabilities
func NewCategoricalAbsDeviationWithExpected(probs []float64) *CategoricalAbsDeviation {
	return &CategoricalAbsDeviation{probs: append([]float64(nil), probs...)}
}

func (s *CategoricalAbsDeviation) Name() string        { return "categorical_abs_deviation" }
func (s *CategoricalAbsDeviation) Shape() sample.Shape { return sample.ShapeCategoryCounts }

func (s *CategoricalAbsDeviation) Bind(arr sample.Arrangement) error {
	expected, err := calibrateExpected(s.Name(), arr, s.probs, false)
	if err != nil {
		return err
	}
	s.expected = expected
	return nil
}

func (s *CategoricalAbsDeviation) Compute(arr sample.Arrangement) float64 {
	counts := arr.(sample.CategoryCounts).Counts
	total := 0.0
	for i, observed := range counts {
		total += math.Abs(observed - s.expected[i])
	}
	return total
}

// CategoricalChiSquared measures sum (observed_i - expected_i)^2 / expected_i.
// Two-sided by construction; weights deviations by their expected rarity, so
// it is more sensitive than raw deviation to surpluses in unlikely categories.
//
// Every category sits in a denominator, so every expected count must be
// strictly positive; Bind rejects arrangements that would divide by zero.
type CategoricalChiSquared struct {
	probs    []float64
	expected []float64
}

// NewCategoricalChiSquared creates the chi-squared statistic under a uniform null
func NewCategoricalChiSquared() *CategoricalChiSquared {
	return &CategoricalChiSquared{}
}

// NewCategoricalChiSquaredWithExpected creates the chi-squared statistic with
// explicit per-category probabilities
func NewCategoricalChiSquaredWithExpected(probs []float64) *CategoricalChiSquared {
	return &CategoricalChiSquared{probs: append([]float64(nil), probs...)}
}

func (s *CategoricalChiSquared) Name() string        { return "categorical_chi_squared" }
func (s *CategoricalChiSquared) Shape() sample.Shape { return sample.ShapeCategoryCounts }

func (s *CategoricalChiSquared) Bind(arr sample.Arrangement) error {
	expected, err := calibrateExpected(s.Name(), arr, s.probs, true)
	if err != nil {
		return err
	}
	s.expected = expected
	return nil
}

func (s *CategoricalChiSquared) Compute(arr sample.Arrangement) float64 {
	counts := arr.(sample.CategoryCounts).Counts
	chiSq := 0.0
	for i, observed := range counts {
		deviation := observed - s.expected[i]
		chiSq += deviation * deviation / s.expected[i]
	}
	return chiSq
}

// calibrateExpected validates the categorical shape and fixes expected counts
// from the observed total. With strict set, every category with nonzero
// probability weight must yield a strictly positive expected count.
func calibrateExpected(name string, arr sample.Arrangement, probs []float64, strict bool) ([]float64, error) {
	counts, ok := arr.(sample.CategoryCounts)
	if !ok {
		return nil, core.NewShapeError(string(sample.ShapeCategoryCounts), string(arr.Shape()))
	}

	k := counts.K()
	total := counts.Total()

	if probs == nil {
		// Uniform null: each of the k outcomes equally likely
		probs = make([]float64, k)
		for i := range probs {
			probs[i] = 1.0 / float64(k)
		}
	}
	if len(probs) != k {
		return nil, core.NewInvalidDataError(
			fmt.Sprintf("%s: %d expected probabilities for %d categories", name, len(probs), k))
	}

	expected := make([]float64, k)
	for i, p := range probs {
		if p < 0 {
			return nil, core.NewInvalidDataError(
				fmt.Sprintf("%s: negative probability %g in category %d", name, p, i))
		}
		expected[i] = p * total
		if strict && expected[i] <= 0 {
			return nil, fmt.Errorf("%w: %s category %d", core.ErrZeroExpected, name, i)
		}
	}
	return expected, nil
}
