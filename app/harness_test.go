package app

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myerscody16/DSC530/adapters/nullmodel"
	"github.com/myerscody16/DSC530/adapters/rng"
	"github.com/myerscody16/DSC530/adapters/statistic"
	"github.com/myerscody16/DSC530/domain/core"
	"github.com/myerscody16/DSC530/domain/sample"
	"github.com/myerscody16/DSC530/internal/testkit"
)

var dieRolls = []float64{8, 9, 19, 5, 8, 11}

func TestNewHypothesisTest_ConstructionErrors(t *testing.T) {
	groups := sample.MustTwoGroups([]float64{1, 2}, []float64{3, 4})

	t.Run("nil statistic", func(t *testing.T) {
		_, err := NewHypothesisTest(groups, nil, nullmodel.NewPermutationSplit(), nil)
		assert.True(t, core.IsUnimplementedVariantError(err))
	})

	t.Run("nil model", func(t *testing.T) {
		_, err := NewHypothesisTest(groups, statistic.NewAbsDiffMeans(), nil, nil)
		assert.True(t, core.IsUnimplementedVariantError(err))
	})

	t.Run("nil data", func(t *testing.T) {
		_, err := NewHypothesisTest(nil, statistic.NewAbsDiffMeans(), nullmodel.NewPermutationSplit(), nil)
		assert.True(t, core.IsInvalidDataError(err))
	})

	t.Run("statistic and model disagree on shape", func(t *testing.T) {
		_, err := NewHypothesisTest(groups, statistic.NewAbsDiffMeans(), nullmodel.NewCategoricalRedraw(), nil)
		assert.True(t, core.IsInvalidDataError(err))
	})

	t.Run("data mismatched with pair", func(t *testing.T) {
		counts := sample.MustCategoryCounts(dieRolls)
		_, err := NewHypothesisTest(counts, statistic.NewAbsDiffMeans(), nullmodel.NewPermutationSplit(), nil)
		assert.True(t, core.IsInvalidDataError(err))
	})
}

func TestEstimatePValue_InvalidIterations(t *testing.T) {
	h := newMeansHarness(t, []float64{1, 2, 3}, []float64{4, 5, 6})

	for _, iterations := range []int{0, -1, -100} {
		_, err := h.EstimatePValue(context.Background(), iterations)
		assert.True(t, core.IsInvalidArgumentError(err), "iterations=%d", iterations)
	}
}

func TestDiagnostics_BeforeEstimation(t *testing.T) {
	h := newMeansHarness(t, []float64{1, 2, 3}, []float64{4, 5, 6})

	_, err := h.MaxSimulatedStatistic()
	assert.True(t, core.IsNotYetEstimatedError(err))

	_, err = h.SimulatedStatistics()
	assert.True(t, core.IsNotYetEstimatedError(err))

	_, err = h.LastReport()
	assert.True(t, core.IsNotYetEstimatedError(err))

	// ActualStatistic is available immediately after construction
	assert.InDelta(t, 3.0, h.ActualStatistic(), 1e-9)
}

func TestEstimatePValue_InUnitInterval(t *testing.T) {
	r := testkit.NewRNG(7)
	groups := testkit.NormalGroups(r, 20, 25, 0, 0.4, 1)

	for _, iterations := range []int{1, 10, 500} {
		h, err := NewHypothesisTest(groups, statistic.NewAbsDiffMeans(),
			nullmodel.NewPermutationSplit(), rng.NewSeededAdapter())
		require.NoError(t, err)

		p, err := h.EstimatePValue(context.Background(), iterations)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestEstimatePValue_SeededReproducibility(t *testing.T) {
	r := testkit.NewRNG(3)
	groups := testkit.NormalGroups(r, 30, 30, 0, 0.3, 1)

	run := func(workers int) (float64, []float64) {
		h, err := NewHypothesisTest(groups, statistic.NewAbsDiffMeans(),
			nullmodel.NewPermutationSplit(), rng.NewSeededAdapter(),
			WithSeed(12345), WithWorkers(workers))
		require.NoError(t, err)

		p, err := h.EstimatePValue(context.Background(), 500)
		require.NoError(t, err)
		dist, err := h.SimulatedStatistics()
		require.NoError(t, err)
		return p, dist
	}

	p1, dist1 := run(1)
	p2, dist2 := run(1)
	assert.Equal(t, p1, p2)
	assert.Equal(t, dist1, dist2)

	p3, dist3 := run(4)
	p4, dist4 := run(4)
	assert.Equal(t, p3, p4)
	assert.Equal(t, dist3, dist4)
}

func TestPermutation_IdenticalGroups(t *testing.T) {
	// Every permutation of a constant pool reproduces zero difference
	groups := sample.MustTwoGroups(
		[]float64{5, 5, 5, 5}, []float64{5, 5, 5})

	h, err := NewHypothesisTest(groups, statistic.NewAbsDiffMeans(),
		nullmodel.NewPermutationSplit(), rng.NewSeededAdapter())
	require.NoError(t, err)

	p, err := h.EstimatePValue(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)
}

func TestCategoricalRedraw_UniformObserved(t *testing.T) {
	// Observed chi-squared is 0; every simulated draw is at least as extreme
	counts := sample.MustCategoryCounts([]float64{10, 10, 10, 10, 10, 10})

	h, err := NewHypothesisTest(counts, statistic.NewCategoricalChiSquared(),
		nullmodel.NewCategoricalRedraw(), rng.NewSeededAdapter())
	require.NoError(t, err)

	p, err := h.EstimatePValue(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)
}

func TestDieRolls_WorkedExample(t *testing.T) {
	counts := sample.MustCategoryCounts(dieRolls)

	t.Run("abs deviation", func(t *testing.T) {
		h, err := NewHypothesisTest(counts, statistic.NewCategoricalAbsDeviation(),
			nullmodel.NewCategoricalRedraw(), rng.NewSeededAdapter())
		require.NoError(t, err)

		p, err := h.EstimatePValue(context.Background(), 10000)
		require.NoError(t, err)
		assert.InDelta(t, 0.14, p, 0.05)
	})

	t.Run("chi squared", func(t *testing.T) {
		h, err := NewHypothesisTest(counts, statistic.NewCategoricalChiSquared(),
			nullmodel.NewCategoricalRedraw(), rng.NewSeededAdapter())
		require.NoError(t, err)

		p, err := h.EstimatePValue(context.Background(), 10000)
		require.NoError(t, err)
		assert.InDelta(t, 0.04, p, 0.03)

		// The weighted statistic is more sensitive than raw deviation here,
		// and the empirical estimate tracks the analytic chi-squared tail.
		analytic := statistic.ChiSquaredSurvival(h.ActualStatistic(), 5)
		assert.InDelta(t, analytic, p, 0.03)
	})
}

func TestCoinToss_WorkedExample(t *testing.T) {
	// 140 heads, 110 tails; total deviation from fair expectation is 30
	counts := sample.MustCategoryCounts([]float64{140, 110})

	h, err := NewHypothesisTest(counts, statistic.NewCategoricalAbsDeviation(),
		nullmodel.NewCategoricalRedraw(), rng.NewSeededAdapter())
	require.NoError(t, err)
	assert.InDelta(t, 30.0, h.ActualStatistic(), 1e-9)

	p, err := h.EstimatePValue(context.Background(), 2000)
	require.NoError(t, err)
	assert.InDelta(t, 0.07, p, 0.05)
}

func TestMaxSimulatedStatistic_Exact(t *testing.T) {
	r := testkit.NewRNG(11)
	groups := testkit.NormalGroups(r, 15, 15, 0, 0.5, 1)

	h, err := NewHypothesisTest(groups, statistic.NewAbsDiffMeans(),
		nullmodel.NewResampleWithReplacement(), rng.NewSeededAdapter())
	require.NoError(t, err)

	_, err = h.EstimatePValue(context.Background(), 500)
	require.NoError(t, err)

	dist, err := h.SimulatedStatistics()
	require.NoError(t, err)
	trueMax := dist[0]
	for _, v := range dist {
		if v > trueMax {
			trueMax = v
		}
	}

	got, err := h.MaxSimulatedStatistic()
	require.NoError(t, err)
	assert.Equal(t, trueMax, got)
	for _, v := range dist {
		assert.GreaterOrEqual(t, got, v)
	}
}

func TestCorrelation_SinglesidePermutation(t *testing.T) {
	r := testkit.NewRNG(19)
	series := testkit.CorrelatedPairs(r, 100, 0.9)

	h, err := NewHypothesisTest(series, statistic.NewAbsCorrelation(),
		nullmodel.NewSinglesidePermutation(), rng.NewSeededAdapter())
	require.NoError(t, err)

	p, err := h.EstimatePValue(context.Background(), 1000)
	require.NoError(t, err)

	// A 0.9 correlation over 100 pairs is far outside the permutation null
	assert.Less(t, p, 0.05)

	report, err := h.LastReport()
	require.NoError(t, err)
	if report.Floored() {
		max, err := h.MaxSimulatedStatistic()
		require.NoError(t, err)
		assert.Less(t, max, h.ActualStatistic())
	}
}

func TestPooledChiSquared_WithPooledShuffleSplit(t *testing.T) {
	r := testkit.NewRNG(23)
	probs := []float64{0.2, 0.3, 0.5}
	groups := sample.TwoGroups{
		G1: testkit.CategoricalObservations(r, 80, probs),
		G2: testkit.CategoricalObservations(r, 60, probs),
	}

	h, err := NewHypothesisTest(groups, statistic.NewPooledChiSquared(),
		nullmodel.NewPooledShuffleSplit(), rng.NewSeededAdapter())
	require.NoError(t, err)

	// Both groups drawn from one distribution: no real effect, so the
	// p-value should not be extreme.
	p, err := h.EstimatePValue(context.Background(), 2000)
	require.NoError(t, err)
	assert.Greater(t, p, 0.001)
	assert.LessOrEqual(t, p, 1.0)
}

func TestPermutationAndBootstrap_BothSelectable(t *testing.T) {
	r := testkit.NewRNG(29)
	groups := testkit.NormalGroups(r, 25, 25, 0, 0.6, 1)

	for _, tc := range []struct {
		name  string
		model func() *HypothesisTest
	}{
		{"permutation", func() *HypothesisTest {
			h, err := NewHypothesisTest(groups, statistic.NewAbsDiffMeans(),
				nullmodel.NewPermutationSplit(), rng.NewSeededAdapter())
			require.NoError(t, err)
			return h
		}},
		{"bootstrap", func() *HypothesisTest {
			h, err := NewHypothesisTest(groups, statistic.NewAbsDiffMeans(),
				nullmodel.NewResampleWithReplacement(), rng.NewSeededAdapter())
			require.NoError(t, err)
			return h
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p, err := tc.model().EstimatePValue(context.Background(), 1000)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
		})
	}
}

func TestRunReport_Contents(t *testing.T) {
	counts := sample.MustCategoryCounts(dieRolls)

	h, err := NewHypothesisTest(counts, statistic.NewCategoricalChiSquared(),
		nullmodel.NewCategoricalRedraw(), rng.NewSeededAdapter(), WithSeed(99))
	require.NoError(t, err)

	p, err := h.EstimatePValue(context.Background(), 2000)
	require.NoError(t, err)

	report, err := h.LastReport()
	require.NoError(t, err)
	assert.Equal(t, "categorical_chi_squared", report.Statistic)
	assert.Equal(t, "categorical_redraw", report.NullModel)
	assert.Equal(t, int64(99), report.Seed)
	assert.Equal(t, 2000, report.Iterations)
	assert.Equal(t, p, report.PValue)
	assert.InDelta(t, 1.0/2000, report.Floor, 1e-12)
	assert.False(t, report.RunID.IsEmpty())
	assert.LessOrEqual(t, report.Null.Min, report.Null.Mean)
	assert.LessOrEqual(t, report.Null.Mean, report.Null.Max)
	assert.Equal(t, report.MaxSimulated, report.Null.Max)
}

// TestMonteCarloConvergence checks the sqrt-N law: 10x more iterations should
// shrink the spread of repeated p-value estimates by roughly sqrt(10).
func TestMonteCarloConvergence(t *testing.T) {
	if testing.Short() {
		t.Skip("convergence measurement is slow")
	}

	counts := sample.MustCategoryCounts(dieRolls)

	spread := func(iterations int) float64 {
		const reps = 30
		estimates := make([]float64, reps)
		for i := 0; i < reps; i++ {
			h, err := NewHypothesisTest(counts, statistic.NewCategoricalAbsDeviation(),
				nullmodel.NewCategoricalRedraw(), rng.NewSeededAdapter(),
				WithSeed(int64(1000+i)))
			require.NoError(t, err)

			p, err := h.EstimatePValue(context.Background(), iterations)
			require.NoError(t, err)
			estimates[i] = p
		}

		mean := 0.0
		for _, e := range estimates {
			mean += e
		}
		mean /= reps

		varSum := 0.0
		for _, e := range estimates {
			varSum += (e - mean) * (e - mean)
		}
		return math.Sqrt(varSum / reps)
	}

	small := spread(100)
	large := spread(1000)

	require.Greater(t, small, 0.0)
	require.Greater(t, large, 0.0)

	ratio := small / large
	assert.Greater(t, ratio, 1.5, "spread should shrink with more iterations")
	assert.Less(t, ratio, 6.5, "shrinkage should be near sqrt(10)")
}

func newMeansHarness(t *testing.T, g1, g2 []float64) *HypothesisTest {
	t.Helper()
	h, err := NewHypothesisTest(sample.MustTwoGroups(g1, g2),
		statistic.NewAbsDiffMeans(), nullmodel.NewPermutationSplit(), rng.NewSeededAdapter())
	require.NoError(t, err)
	return h
}
