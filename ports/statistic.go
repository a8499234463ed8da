package ports

import (
	"github.com/myerscody16/DSC530/domain/sample"
)

// Statistic is a pure scalar measure of effect size over a data arrangement.
//
// Bind is invoked exactly once, at harness construction, with the observed
// arrangement. It validates shape and, for variants that need a baseline
// (categorical expected frequencies, pooled expected distributions), fixes
// that baseline from the observed data. After Bind succeeds, Compute must be
// deterministic, side-effect free, and safe to call concurrently.
//
// Directionality is the statistic's responsibility: two-sided variants return
// absolute values so the harness can keep a single right-tail comparison.
type Statistic interface {
	// Name identifies the variant (e.g. "abs_diff_means")
	Name() string

	// Shape returns the arrangement shape this variant operates on
	Shape() sample.Shape

	// Bind validates the observed arrangement and calibrates any fixed baseline.
	// Returns an InvalidData error on shape mismatch, empty required groups, or
	// zero expected frequency in a denominator.
	Bind(arr sample.Arrangement) error

	// Compute maps an arrangement to one test statistic value
	Compute(arr sample.Arrangement) float64
}
