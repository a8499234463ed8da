package statistic

import (
	"fmt"
	"sort"

	"github.com/myerscody16/DSC530/domain/core"
	"github.com/myerscody16/DSC530/domain/sample"
)

// PooledChiSquared measures chi-squared goodness of fit of each group against
// a shared expected distribution, summed over both groups. The shared expected
// distribution is the pooled-sample empirical distribution of the *observed*
// data, computed once at Bind and scaled to each group's size per evaluation.
//
// The baseline is a property of the null hypothesis and is never re-derived
// from simulated arrangements: per trial only the observed split changes.
type PooledChiSquared struct {
	support []float64           // distinct pooled values, sorted
	probs   map[float64]float64 // pooled empirical probability per value
}

// NewPooledChiSquared creates the pooled two-group chi-squared statistic
func NewPooledChiSquared() *PooledChiSquared {
	return &PooledChiSquared{}
}

func (s *PooledChiSquared) Name() string        { return "pooled_chi_squared" }
func (s *PooledChiSquared) Shape() sample.Shape { return sample.ShapeTwoGroups }

// Bind fixes the pooled expected distribution from the observed groups
func (s *PooledChiSquared) Bind(arr sample.Arrangement) error {
	groups, err := requireTwoGroups(s.Name(), arr)
	if err != nil {
		return err
	}

	pooledN := float64(groups.Size())
	freq := make(map[float64]float64)
	for _, v := range groups.G1 {
		freq[v]++
	}
	for _, v := range groups.G2 {
		freq[v]++
	}

	s.probs = make(map[float64]float64, len(freq))
	s.support = make([]float64, 0, len(freq))
	for v, count := range freq {
		s.probs[v] = count / pooledN
		s.support = append(s.support, v)
	}
	sort.Float64s(s.support)

	// Every support value appears in the pooled data, so expected counts are
	// strictly positive for any non-empty group; guard anyway.
	for _, v := range s.support {
		if s.probs[v] <= 0 {
			return fmt.Errorf("%w: %s value %g", core.ErrZeroExpected, s.Name(), v)
		}
	}
	return nil
}

// Compute sums each group's goodness of fit against the pooled baseline
func (s *PooledChiSquared) Compute(arr sample.Arrangement) float64 {
	groups := arr.(sample.TwoGroups)
	return s.groupChiSquared(groups.G1) + s.groupChiSquared(groups.G2)
}

func (s *PooledChiSquared) groupChiSquared(group sample.Sample) float64 {
	observed := make(map[float64]float64, len(s.support))
	for _, v := range group {
		observed[v]++
	}

	n := float64(len(group))
	chiSq := 0.0
	for _, v := range s.support {
		expected := s.probs[v] * n
		deviation := observed[v] - expected
		chiSq += deviation * deviation / expected
	}
	return chiSq
}
