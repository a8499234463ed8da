package montecarlo

import (
	"fmt"

	"github.com/myerscody16/DSC530/domain/core"
)

// NullDistributionSummary describes the simulated statistic distribution of one run
type NullDistributionSummary struct {
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Percentile95 float64 `json:"percentile_95"`
	Percentile99 float64 `json:"percentile_99"`
}

// RunReport captures the complete output of one estimation run.
// INVARIANTS:
// - Iterations always present and > 0
// - PValue always present (0.0 to 1.0)
// - Floor = 1/Iterations; a PValue of exactly 0 means the true value is only
//   known to be < Floor, never exactly zero
type RunReport struct {
	RunID      core.RunID `json:"run_id"`
	Statistic  string     `json:"statistic"`
	NullModel  string     `json:"null_model"`
	Seed       int64      `json:"seed"`
	Workers    int        `json:"workers"`
	Iterations int        `json:"iterations"`

	ActualStatistic float64                 `json:"actual_statistic"`
	PValue          float64                 `json:"p_value"`
	Floor           float64                 `json:"floor"`
	MaxSimulated    float64                 `json:"max_simulated"`
	Null            NullDistributionSummary `json:"null_distribution"`

	RuntimeMs int64          `json:"runtime_ms"`
	CreatedAt core.Timestamp `json:"created_at"`
}

// NewRunReport creates a run report with invariant validation
func NewRunReport(runID core.RunID, statistic, nullModel string, seed int64, workers, iterations int,
	actual, pValue, maxSimulated float64, null NullDistributionSummary, runtimeMs int64) (*RunReport, error) {

	if err := validateRunReport(iterations, pValue); err != nil {
		return nil, err
	}

	return &RunReport{
		RunID:           runID,
		Statistic:       statistic,
		NullModel:       nullModel,
		Seed:            seed,
		Workers:         workers,
		Iterations:      iterations,
		ActualStatistic: actual,
		PValue:          pValue,
		Floor:           1.0 / float64(iterations),
		MaxSimulated:    maxSimulated,
		Null:            null,
		RuntimeMs:       runtimeMs,
		CreatedAt:       core.Now(),
	}, nil
}

// validateRunReport checks invariants for run reports
func validateRunReport(iterations int, pValue float64) error {
	if iterations <= 0 {
		return fmt.Errorf("iterations must be > 0, got %d", iterations)
	}
	if pValue < 0.0 || pValue > 1.0 {
		return fmt.Errorf("p-value must be in [0.0, 1.0], got %f", pValue)
	}
	return nil
}

// Floored reports whether the empirical p-value hit the resolution floor.
// Callers should read MaxSimulated to see how close the simulation came.
func (r *RunReport) Floored() bool {
	return r.PValue == 0
}
