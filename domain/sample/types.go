package sample

import (
	"fmt"

	"github.com/myerscody16/DSC530/domain/core"
)

// Sample is an ordered, finite sequence of numeric observations.
// Immutable once captured by a harness: consumers clone before mutating.
type Sample []float64

// NewSample copies the given values into a fresh Sample
func NewSample(values []float64) Sample {
	s := make(Sample, len(values))
	copy(s, values)
	return s
}

// Clone returns an independent copy of the sample
func (s Sample) Clone() Sample {
	out := make(Sample, len(s))
	copy(out, s)
	return out
}

// Len returns the number of observations
func (s Sample) Len() int {
	return len(s)
}

// Shape identifies which arrangement form a statistic/model pair operates on.
// Statistic and null model agree on shape by construction.
type Shape string

const (
	ShapeTwoGroups      Shape = "two_groups"      // Pair of samples (unpaired two-group tests)
	ShapePairedSeries   Shape = "paired_series"   // Pair of equal-length samples (correlation tests)
	ShapeCategoryCounts Shape = "category_counts" // Single sample of per-category counts
)

// Arrangement is the structure a statistic/model pair operates on
type Arrangement interface {
	Shape() Shape
	Size() int // total observation count across the arrangement
}

// ============================================================================
// TWO GROUPS
// ============================================================================

// TwoGroups holds two unpaired samples
type TwoGroups struct {
	G1 Sample `json:"group1"`
	G2 Sample `json:"group2"`
}

// NewTwoGroups creates a two-group arrangement with validation
func NewTwoGroups(g1, g2 []float64) (TwoGroups, error) {
	if len(g1) == 0 {
		return TwoGroups{}, core.NewEmptyGroupError("group1")
	}
	if len(g2) == 0 {
		return TwoGroups{}, core.NewEmptyGroupError("group2")
	}
	return TwoGroups{G1: NewSample(g1), G2: NewSample(g2)}, nil
}

// MustTwoGroups creates a two-group arrangement (panics on invalid input).
// Use only in tests and development.
func MustTwoGroups(g1, g2 []float64) TwoGroups {
	arr, err := NewTwoGroups(g1, g2)
	if err != nil {
		panic(err)
	}
	return arr
}

func (a TwoGroups) Shape() Shape { return ShapeTwoGroups }
func (a TwoGroups) Size() int    { return len(a.G1) + len(a.G2) }

// ============================================================================
// PAIRED SERIES
// ============================================================================

// PairedSeries holds two equal-length samples paired index-for-index
type PairedSeries struct {
	X Sample `json:"x"`
	Y Sample `json:"y"`
}

// NewPairedSeries creates a paired arrangement with validation
func NewPairedSeries(x, y []float64) (PairedSeries, error) {
	if len(x) == 0 || len(y) == 0 {
		return PairedSeries{}, core.NewEmptyGroupError("paired series")
	}
	if len(x) != len(y) {
		return PairedSeries{}, core.NewInvalidDataError(
			fmt.Sprintf("paired series length mismatch: %d vs %d", len(x), len(y)))
	}
	return PairedSeries{X: NewSample(x), Y: NewSample(y)}, nil
}

// MustPairedSeries creates a paired arrangement (panics on invalid input)
func MustPairedSeries(x, y []float64) PairedSeries {
	arr, err := NewPairedSeries(x, y)
	if err != nil {
		panic(err)
	}
	return arr
}

func (a PairedSeries) Shape() Shape { return ShapePairedSeries }
func (a PairedSeries) Size() int    { return len(a.X) }

// ============================================================================
// CATEGORY COUNTS
// ============================================================================

// CategoryCounts holds observed counts per category, index = category
type CategoryCounts struct {
	Counts Sample `json:"counts"`
}

// NewCategoryCounts creates a categorical arrangement with validation.
// Counts must be non-negative and sum to a positive total.
func NewCategoryCounts(counts []float64) (CategoryCounts, error) {
	if len(counts) < 2 {
		return CategoryCounts{}, core.NewInvalidDataError(
			fmt.Sprintf("need at least 2 categories, got %d", len(counts)))
	}
	total := 0.0
	for i, c := range counts {
		if c < 0 {
			return CategoryCounts{}, core.NewInvalidDataError(
				fmt.Sprintf("negative count %g in category %d", c, i))
		}
		total += c
	}
	if total <= 0 {
		return CategoryCounts{}, core.NewEmptyGroupError("category counts")
	}
	return CategoryCounts{Counts: NewSample(counts)}, nil
}

// MustCategoryCounts creates a categorical arrangement (panics on invalid input)
func MustCategoryCounts(counts []float64) CategoryCounts {
	arr, err := NewCategoryCounts(counts)
	if err != nil {
		panic(err)
	}
	return arr
}

func (a CategoryCounts) Shape() Shape { return ShapeCategoryCounts }

// K returns the number of categories
func (a CategoryCounts) K() int { return len(a.Counts) }

// Total returns the total observation count across categories
func (a CategoryCounts) Total() float64 {
	total := 0.0
	for _, c := range a.Counts {
		total += c
	}
	return total
}

func (a CategoryCounts) Size() int { return int(a.Total()) }
