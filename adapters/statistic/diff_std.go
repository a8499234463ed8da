package statistic

import (
	"github.com/montanaflynn/stats"

	"github.com/myerscody16/DSC530/domain/sample"
)

// DiffStd measures std(g1) - std(g2) over two groups.
// One-sided as used: extreme means group 1 is more spread than group 2.
type DiffStd struct{}

// NewDiffStd creates the one-sided spread-difference statistic
func NewDiffStd() *DiffStd {
	return &DiffStd{}
}

func (s *DiffStd) Name() string        { return "diff_std" }
func (s *DiffStd) Shape() sample.Shape { return sample.ShapeTwoGroups }

func (s *DiffStd) Bind(arr sample.Arrangement) error {
	_, err := requireTwoGroups(s.Name(), arr)
	return err
}

func (s *DiffStd) Compute(arr sample.Arrangement) float64 {
	groups := arr.(sample.TwoGroups)
	s1, _ := stats.StandardDeviationPopulation(stats.Float64Data(groups.G1))
	s2, _ := stats.StandardDeviationPopulation(stats.Float64Data(groups.G2))
	return s1 - s2
}
