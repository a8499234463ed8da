package ports

import (
	"math/rand"

	"github.com/myerscody16/DSC530/domain/sample"
)

// NullState is the model state a null model derives once from the observed
// arrangement. It is owned by exactly one harness instance and never mutated
// after construction; every trial reads it and produces a fresh arrangement.
type NullState interface {
	// ModelName names the null model variant that produced this state,
	// so a state cannot be fed to a different variant by mistake.
	ModelName() string
}

// NullModel produces simulated data arrangements consistent with "no effect".
//
// DeriveState is invoked exactly once, at harness construction, with the
// observed arrangement. Simulate consumes the immutable state plus a caller
// supplied random source and returns one simulated arrangement of the same
// shape as the original; it must never mutate the state, so trials are safe
// to run in parallel with per-worker random sources.
type NullModel interface {
	// Name identifies the variant (e.g. "permutation_split")
	Name() string

	// Shape returns the arrangement shape this variant operates on
	Shape() sample.Shape

	// DeriveState builds the model state from the observed arrangement
	DeriveState(arr sample.Arrangement) (NullState, error)

	// Simulate draws one arrangement under the null hypothesis
	Simulate(state NullState, rng *rand.Rand) (sample.Arrangement, error)
}
