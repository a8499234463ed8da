package nullmodel

import (
	"math/rand"

	"github.com/myerscody16/DSC530/domain/sample"
	"github.com/myerscody16/DSC530/ports"
)

// ResampleWithReplacement models the null for two unpaired groups as a
// bootstrap: each trial independently draws, with replacement, a sample of
// size n1 and a sample of size n2 from the pooled values.
//
// Unlike PermutationSplit this does not preserve the pooled multiset per
// trial, and in general yields different p-values for identical observed data.
type ResampleWithReplacement struct{}

// NewResampleWithReplacement creates the bootstrap null model
func NewResampleWithReplacement() *ResampleWithReplacement {
	return &ResampleWithReplacement{}
}

func (m *ResampleWithReplacement) Name() string        { return "resample_with_replacement" }
func (m *ResampleWithReplacement) Shape() sample.Shape { return sample.ShapeTwoGroups }

type resampleState struct {
	pooled sample.Sample
	n1     int
	n2     int
}

func (resampleState) ModelName() string { return "resample_with_replacement" }

func (m *ResampleWithReplacement) DeriveState(arr sample.Arrangement) (ports.NullState, error) {
	groups, err := requireTwoGroups(m.Name(), arr)
	if err != nil {
		return nil, err
	}
	return resampleState{
		pooled: poolGroups(groups),
		n1:     len(groups.G1),
		n2:     len(groups.G2),
	}, nil
}

func (m *ResampleWithReplacement) Simulate(state ports.NullState, rng *rand.Rand) (sample.Arrangement, error) {
	st, ok := state.(resampleState)
	if !ok {
		return nil, badState(m.Name(), state)
	}
	return sample.TwoGroups{
		G1: drawWithReplacement(st.pooled, st.n1, rng),
		G2: drawWithReplacement(st.pooled, st.n2, rng),
	}, nil
}

func drawWithReplacement(pool sample.Sample, n int, rng *rand.Rand) sample.Sample {
	out := make(sample.Sample, n)
	for i := range out {
		out[i] = pool[rng.Intn(len(pool))]
	}
	return out
}
