package nullmodel

import (
	"math/rand"

	"github.com/myerscody16/DSC530/domain/sample"
	"github.com/myerscody16/DSC530/ports"
)

// PooledShuffleSplit models the null for two groups of raw categorical
// observations. State holds the pooled raw observations, the first group's
// size, and the pooled empirical frequency distribution over categories
// computed once at construction. Each trial shuffles the pooled observations
// and splits at the boundary, exactly as PermutationSplit; the frequency
// distribution is carried as the fixed expected baseline for pooled
// chi-squared statistics and is never re-derived per trial.
type PooledShuffleSplit struct{}

// NewPooledShuffleSplit creates the pooled categorical permutation null model
func NewPooledShuffleSplit() *PooledShuffleSplit {
	return &PooledShuffleSplit{}
}

func (m *PooledShuffleSplit) Name() string        { return "pooled_shuffle_split" }
func (m *PooledShuffleSplit) Shape() sample.Shape { return sample.ShapeTwoGroups }

type pooledShuffleState struct {
	pooled sample.Sample
	n1     int
	freq   map[float64]float64 // pooled empirical probability per category
}

func (pooledShuffleState) ModelName() string { return "pooled_shuffle_split" }

func (m *PooledShuffleSplit) DeriveState(arr sample.Arrangement) (ports.NullState, error) {
	groups, err := requireTwoGroups(m.Name(), arr)
	if err != nil {
		return nil, err
	}

	pooled := poolGroups(groups)
	freq := make(map[float64]float64)
	for _, v := range pooled {
		freq[v]++
	}
	for v := range freq {
		freq[v] /= float64(len(pooled))
	}

	return pooledShuffleState{
		pooled: pooled,
		n1:     len(groups.G1),
		freq:   freq,
	}, nil
}

func (m *PooledShuffleSplit) Simulate(state ports.NullState, rng *rand.Rand) (sample.Arrangement, error) {
	st, ok := state.(pooledShuffleState)
	if !ok {
		return nil, badState(m.Name(), state)
	}
	shuffled := shuffleCopy(st.pooled, rng)
	return sample.TwoGroups{
		G1: shuffled[:st.n1],
		G2: shuffled[st.n1:],
	}, nil
}

// PooledDistribution exposes the fixed pooled frequency distribution of a
// derived state, for diagnostics and statistic calibration checks.
func (m *PooledShuffleSplit) PooledDistribution(state ports.NullState) (map[float64]float64, bool) {
	st, ok := state.(pooledShuffleState)
	if !ok {
		return nil, false
	}
	out := make(map[float64]float64, len(st.freq))
	for v, p := range st.freq {
		out[v] = p
	}
	return out, true
}
