package statistic

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSquaredSurvival returns the analytic right-tail p-value of a chi-squared
// statistic with the given degrees of freedom. Diagnostic only: the harness
// never substitutes it for the empirical estimate, but reports can print both
// side by side as a sanity check on categorical tests.
func ChiSquaredSurvival(chiSq, degreesOfFreedom float64) float64 {
	if chiSq <= 0 {
		return 1.0
	}
	dist := distuv.ChiSquared{K: degreesOfFreedom}
	return dist.Survival(chiSq)
}
