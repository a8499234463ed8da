// Package testkit provides deterministic synthetic data for tests and demos.
package testkit

import (
	"math"
	"math/rand"

	"github.com/myerscody16/DSC530/domain/sample"
)

// NewRNG creates a seeded generator for fixture construction
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NormalGroups generates two independent normal groups with the given means
// and a shared standard deviation
func NormalGroups(rng *rand.Rand, n1, n2 int, mean1, mean2, stdDev float64) sample.TwoGroups {
	return sample.TwoGroups{
		G1: normal(rng, n1, mean1, stdDev),
		G2: normal(rng, n2, mean2, stdDev),
	}
}

// CorrelatedPairs generates a paired series with approximate correlation rho
func CorrelatedPairs(rng *rand.Rand, n int, rho float64) sample.PairedSeries {
	x := normal(rng, n, 0, 1)
	y := make(sample.Sample, n)
	noise := math.Sqrt(1 - rho*rho)
	for i := range y {
		y[i] = rho*x[i] + noise*rng.NormFloat64()
	}
	return sample.PairedSeries{X: x, Y: y}
}

// MultinomialCounts draws n categorical outcomes under the given
// probabilities and tabulates counts per category
func MultinomialCounts(rng *rand.Rand, n int, probs []float64) sample.CategoryCounts {
	counts := make(sample.Sample, len(probs))
	for i := 0; i < n; i++ {
		u := rng.Float64()
		cum := 0.0
		for k, p := range probs {
			cum += p
			if u < cum || k == len(probs)-1 {
				counts[k]++
				break
			}
		}
	}
	return sample.CategoryCounts{Counts: counts}
}

// CategoricalObservations draws n raw categorical observations (category
// labels as values) under the given probabilities
func CategoricalObservations(rng *rand.Rand, n int, probs []float64) sample.Sample {
	out := make(sample.Sample, n)
	for i := range out {
		u := rng.Float64()
		cum := 0.0
		for k, p := range probs {
			cum += p
			if u < cum || k == len(probs)-1 {
				out[i] = float64(k)
				break
			}
		}
	}
	return out
}

func normal(rng *rand.Rand, n int, mean, stdDev float64) sample.Sample {
	out := make(sample.Sample, n)
	for i := range out {
		out[i] = mean + stdDev*rng.NormFloat64()
	}
	return out
}
