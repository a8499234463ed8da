package nullmodel

import (
	"math/rand"

	"github.com/myerscody16/DSC530/domain/sample"
	"github.com/myerscody16/DSC530/ports"
)

// CategoricalRedraw models the uniform null for category counts: each trial
// draws n independent outcomes, each of the k categories equally likely, and
// tabulates counts per category.
type CategoricalRedraw struct{}

// NewCategoricalRedraw creates the uniform multinomial null model
func NewCategoricalRedraw() *CategoricalRedraw {
	return &CategoricalRedraw{}
}

func (m *CategoricalRedraw) Name() string        { return "categorical_redraw" }
func (m *CategoricalRedraw) Shape() sample.Shape { return sample.ShapeCategoryCounts }

type redrawState struct {
	n int
	k int
}

func (redrawState) ModelName() string { return "categorical_redraw" }

func (m *CategoricalRedraw) DeriveState(arr sample.Arrangement) (ports.NullState, error) {
	counts, err := requireCategoryCounts(m.Name(), arr)
	if err != nil {
		return nil, err
	}
	return redrawState{n: int(counts.Total()), k: counts.K()}, nil
}

func (m *CategoricalRedraw) Simulate(state ports.NullState, rng *rand.Rand) (sample.Arrangement, error) {
	st, ok := state.(redrawState)
	if !ok {
		return nil, badState(m.Name(), state)
	}
	counts := make(sample.Sample, st.k)
	for i := 0; i < st.n; i++ {
		counts[rng.Intn(st.k)]++
	}
	return sample.CategoryCounts{Counts: counts}, nil
}
