package statistic

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/myerscody16/DSC530/domain/core"
	"github.com/myerscody16/DSC530/domain/sample"
)

// AbsDiffMeans measures |mean(g1) - mean(g2)| over two groups.
// Two-sided: the absolute value folds both directions into the right tail.
type AbsDiffMeans struct{}

// NewAbsDiffMeans creates the two-sided mean-difference statistic
func NewAbsDiffMeans() *AbsDiffMeans {
	return &AbsDiffMeans{}
}

func (s *AbsDiffMeans) Name() string        { return "abs_diff_means" }
func (s *AbsDiffMeans) Shape() sample.Shape { return sample.ShapeTwoGroups }

// Bind validates the observed arrangement
func (s *AbsDiffMeans) Bind(arr sample.Arrangement) error {
	_, err := requireTwoGroups(s.Name(), arr)
	return err
}

// Compute returns the absolute difference of group means
func (s *AbsDiffMeans) Compute(arr sample.Arrangement) float64 {
	groups := arr.(sample.TwoGroups)
	m1, _ := stats.Mean(stats.Float64Data(groups.G1))
	m2, _ := stats.Mean(stats.Float64Data(groups.G2))
	return math.Abs(m1 - m2)
}

// SignedDiffMeans measures mean(g1) - mean(g2) over two groups.
// One-sided: only excesses of group 1 over group 2 count as extreme.
type SignedDiffMeans struct{}

// NewSignedDiffMeans creates the one-sided mean-difference statistic
func NewSignedDiffMeans() *SignedDiffMeans {
	return &SignedDiffMeans{}
}

func (s *SignedDiffMeans) Name() string        { return "signed_diff_means" }
func (s *SignedDiffMeans) Shape() sample.Shape { return sample.ShapeTwoGroups }

func (s *SignedDiffMeans) Bind(arr sample.Arrangement) error {
	_, err := requireTwoGroups(s.Name(), arr)
	return err
}

func (s *SignedDiffMeans) Compute(arr sample.Arrangement) float64 {
	groups := arr.(sample.TwoGroups)
	m1, _ := stats.Mean(stats.Float64Data(groups.G1))
	m2, _ := stats.Mean(stats.Float64Data(groups.G2))
	return m1 - m2
}

// requireTwoGroups asserts the two-group shape with non-empty groups
func requireTwoGroups(name string, arr sample.Arrangement) (sample.TwoGroups, error) {
	groups, ok := arr.(sample.TwoGroups)
	if !ok {
		return sample.TwoGroups{}, core.NewShapeError(string(sample.ShapeTwoGroups), string(arr.Shape()))
	}
	if len(groups.G1) == 0 {
		return sample.TwoGroups{}, core.NewEmptyGroupError(name + ": group1")
	}
	if len(groups.G2) == 0 {
		return sample.TwoGroups{}, core.NewEmptyGroupError(name + ": group2")
	}
	return groups, nil
}
