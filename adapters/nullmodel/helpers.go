package nullmodel

import (
	"fmt"
	"math/rand"

	"github.com/myerscody16/DSC530/domain/core"
	"github.com/myerscody16/DSC530/domain/sample"
	"github.com/myerscody16/DSC530/ports"
)

// requireTwoGroups asserts the two-group shape with non-empty groups
func requireTwoGroups(name string, arr sample.Arrangement) (sample.TwoGroups, error) {
	groups, ok := arr.(sample.TwoGroups)
	if !ok {
		return sample.TwoGroups{}, core.NewShapeError(string(sample.ShapeTwoGroups), string(arr.Shape()))
	}
	if len(groups.G1) == 0 || len(groups.G2) == 0 {
		return sample.TwoGroups{}, core.NewEmptyGroupError(name)
	}
	return groups, nil
}

// requirePairedSeries asserts the paired shape
func requirePairedSeries(name string, arr sample.Arrangement) (sample.PairedSeries, error) {
	series, ok := arr.(sample.PairedSeries)
	if !ok {
		return sample.PairedSeries{}, core.NewShapeError(string(sample.ShapePairedSeries), string(arr.Shape()))
	}
	if len(series.X) == 0 {
		return sample.PairedSeries{}, core.NewEmptyGroupError(name)
	}
	return series, nil
}

// requireCategoryCounts asserts the categorical shape
func requireCategoryCounts(name string, arr sample.Arrangement) (sample.CategoryCounts, error) {
	counts, ok := arr.(sample.CategoryCounts)
	if !ok {
		return sample.CategoryCounts{}, core.NewShapeError(string(sample.ShapeCategoryCounts), string(arr.Shape()))
	}
	if counts.Total() <= 0 {
		return sample.CategoryCounts{}, core.NewEmptyGroupError(name)
	}
	return counts, nil
}

// badState reports model state handed to the wrong variant
func badState(name string, state ports.NullState) error {
	got := "nil"
	if state != nil {
		got = state.ModelName()
	}
	return fmt.Errorf("%w: model %s given state from %s", core.ErrInvalidData, name, got)
}

// poolGroups concatenates both groups into one fresh sample
func poolGroups(groups sample.TwoGroups) sample.Sample {
	pooled := make(sample.Sample, 0, groups.Size())
	pooled = append(pooled, groups.G1...)
	pooled = append(pooled, groups.G2...)
	return pooled
}

// shuffleCopy returns a uniformly random permutation of s, leaving s untouched
func shuffleCopy(s sample.Sample, rng *rand.Rand) sample.Sample {
	out := s.Clone()
	// Fisher-Yates shuffle
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
