package nullmodel

import (
	"math/rand"

	"github.com/myerscody16/DSC530/domain/sample"
	"github.com/myerscody16/DSC530/ports"
)

// PermutationSplit models the null for two unpaired groups by treating both
// as interchangeable draws from one pool: each trial is a fresh uniformly
// random permutation of the pooled values, split at the original group-size
// boundary. Exchangeability under the null is the defining assumption.
type PermutationSplit struct{}

// NewPermutationSplit creates the permutation null model
func NewPermutationSplit() *PermutationSplit {
	return &PermutationSplit{}
}

func (m *PermutationSplit) Name() string        { return "permutation_split" }
func (m *PermutationSplit) Shape() sample.Shape { return sample.ShapeTwoGroups }

type permutationState struct {
	pooled sample.Sample
	n1     int
}

func (permutationState) ModelName() string { return "permutation_split" }

// DeriveState pools both groups once; the pooled copy is never mutated
func (m *PermutationSplit) DeriveState(arr sample.Arrangement) (ports.NullState, error) {
	groups, err := requireTwoGroups(m.Name(), arr)
	if err != nil {
		return nil, err
	}
	return permutationState{
		pooled: poolGroups(groups),
		n1:     len(groups.G1),
	}, nil
}

// Simulate shuffles a working copy of the pool and splits at the boundary
func (m *PermutationSplit) Simulate(state ports.NullState, rng *rand.Rand) (sample.Arrangement, error) {
	st, ok := state.(permutationState)
	if !ok {
		return nil, badState(m.Name(), state)
	}
	shuffled := shuffleCopy(st.pooled, rng)
	return sample.TwoGroups{
		G1: shuffled[:st.n1],
		G2: shuffled[st.n1:],
	}, nil
}

// SinglesidePermutation models the null for a paired series by permuting only
// the first series and re-pairing it index-for-index with the unpermuted
// second series. This breaks any association between them while preserving
// each marginal distribution exactly.
type SinglesidePermutation struct{}

// NewSinglesidePermutation creates the paired-series permutation null model
func NewSinglesidePermutation() *SinglesidePermutation {
	return &SinglesidePermutation{}
}

func (m *SinglesidePermutation) Name() string        { return "singleside_permutation" }
func (m *SinglesidePermutation) Shape() sample.Shape { return sample.ShapePairedSeries }

type singlesideState struct {
	x sample.Sample
	y sample.Sample
}

func (singlesideState) ModelName() string { return "singleside_permutation" }

func (m *SinglesidePermutation) DeriveState(arr sample.Arrangement) (ports.NullState, error) {
	series, err := requirePairedSeries(m.Name(), arr)
	if err != nil {
		return nil, err
	}
	return singlesideState{x: series.X.Clone(), y: series.Y.Clone()}, nil
}

func (m *SinglesidePermutation) Simulate(state ports.NullState, rng *rand.Rand) (sample.Arrangement, error) {
	st, ok := state.(singlesideState)
	if !ok {
		return nil, badState(m.Name(), state)
	}
	return sample.PairedSeries{
		X: shuffleCopy(st.x, rng),
		Y: st.y,
	}, nil
}
