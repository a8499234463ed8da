package app

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/myerscody16/DSC530/domain/core"
	"github.com/myerscody16/DSC530/domain/sample"
	"github.com/myerscody16/DSC530/ports"
)

// PowerSweepService estimates statistical power across a sweep of sample
// sizes: for each size it generates synthetic experiments, estimates each
// one's p-value with a fresh harness, and reports the fraction rejected at
// the significance level.
type PowerSweepService struct {
	rngPort ports.RNGPort
}

// NewPowerSweepService creates a power sweep service
func NewPowerSweepService(rngPort ports.RNGPort) *PowerSweepService {
	return &PowerSweepService{rngPort: rngPort}
}

// ExperimentGenerator produces one synthetic observed arrangement of the
// given total size from the supplied random source
type ExperimentGenerator func(size int, rng *rand.Rand) (sample.Arrangement, error)

// PowerSweepRequest defines the inputs for a deterministic power sweep.
// NewStatistic and NewModel are factories because statistics calibrate
// against the observed data at construction: every experiment needs a fresh
// pair.
type PowerSweepRequest struct {
	SweepID            core.RunID // optional, generated if empty
	Sizes              []int
	ExperimentsPerSize int
	Iterations         int // trials per p-value estimate
	Alpha              float64
	Seed               int64

	NewStatistic func() ports.Statistic
	NewModel     func() ports.NullModel
	Generate     ExperimentGenerator
}

// PowerPoint is the estimated power at one sample size
type PowerPoint struct {
	Size        int     `json:"size"`
	Experiments int     `json:"experiments"`
	Rejections  int     `json:"rejections"`
	Power       float64 `json:"power"`
}

// PowerSweepResult contains the complete output of a power sweep
type PowerSweepResult struct {
	SweepID    core.RunID     `json:"sweep_id"`
	Alpha      float64        `json:"alpha"`
	Iterations int            `json:"iterations"`
	Seed       int64          `json:"seed"`
	Points     []PowerPoint   `json:"points"`
	RuntimeMs  int64          `json:"runtime_ms"`
	CreatedAt  core.Timestamp `json:"created_at"`
}

// RunSweep executes the sweep, sizes in parallel, deterministically for a
// fixed (SweepID, Seed) pair
func (s *PowerSweepService) RunSweep(ctx context.Context, req PowerSweepRequest) (*PowerSweepResult, error) {
	if err := validateSweepRequest(req); err != nil {
		return nil, err
	}

	sweepID := req.SweepID
	if sweepID.IsEmpty() {
		sweepID = core.NewRunID()
	}

	startTime := time.Now()
	points := make([]PowerPoint, len(req.Sizes))

	group, ctx := errgroup.WithContext(ctx)
	for i, size := range req.Sizes {
		i, size := i, size
		group.Go(func() error {
			point, err := s.runSize(ctx, sweepID, req, size)
			if err != nil {
				return fmt.Errorf("sweep size %d: %w", size, err)
			}
			points[i] = point
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := &PowerSweepResult{
		SweepID:    sweepID,
		Alpha:      req.Alpha,
		Iterations: req.Iterations,
		Seed:       req.Seed,
		Points:     points,
		RuntimeMs:  time.Since(startTime).Milliseconds(),
		CreatedAt:  core.Now(),
	}

	log.Printf("[PowerSweep] %s completed: %d sizes, %d experiments each, %d ms",
		sweepID, len(req.Sizes), req.ExperimentsPerSize, result.RuntimeMs)
	return result, nil
}

// runSize estimates power at one sample size
func (s *PowerSweepService) runSize(ctx context.Context, sweepID core.RunID, req PowerSweepRequest, size int) (PowerPoint, error) {
	genRNG, err := s.stream(ctx, sweepID, size, req.Seed)
	if err != nil {
		return PowerPoint{}, err
	}

	rejections := 0
	for e := 0; e < req.ExperimentsPerSize; e++ {
		data, err := req.Generate(size, genRNG)
		if err != nil {
			return PowerPoint{}, fmt.Errorf("experiment %d: %w", e, err)
		}

		// Per-experiment seed drawn from the size stream keeps the whole
		// sweep reproducible while decorrelating experiments.
		expSeed := genRNG.Int63()
		harness, err := NewHypothesisTest(data, req.NewStatistic(), req.NewModel(), s.rngPort, WithSeed(expSeed))
		if err != nil {
			return PowerPoint{}, fmt.Errorf("experiment %d: %w", e, err)
		}

		pValue, err := harness.EstimatePValue(ctx, req.Iterations)
		if err != nil {
			return PowerPoint{}, fmt.Errorf("experiment %d: %w", e, err)
		}
		if pValue < req.Alpha {
			rejections++
		}
	}

	return PowerPoint{
		Size:        size,
		Experiments: req.ExperimentsPerSize,
		Rejections:  rejections,
		Power:       float64(rejections) / float64(req.ExperimentsPerSize),
	}, nil
}

func (s *PowerSweepService) stream(ctx context.Context, sweepID core.RunID, size int, seed int64) (*rand.Rand, error) {
	if s.rngPort == nil {
		return rand.New(rand.NewSource(seed + int64(size))), nil
	}
	return s.rngPort.Stream(ctx, sweepID.String(), "power", fmt.Sprintf("size-%d", size), seed)
}

func validateSweepRequest(req PowerSweepRequest) error {
	if req.NewStatistic == nil {
		return core.NewUnimplementedVariantError("statistic function", "power sweep")
	}
	if req.NewModel == nil {
		return core.NewUnimplementedVariantError("null model", "power sweep")
	}
	if req.Generate == nil {
		return core.NewInvalidArgumentError("generate", "is required")
	}
	if len(req.Sizes) == 0 {
		return core.NewInvalidArgumentError("sizes", "must be non-empty")
	}
	for _, size := range req.Sizes {
		if size < 1 {
			return core.NewInvalidArgumentError("sizes", fmt.Sprintf("must be >= 1, got %d", size))
		}
	}
	if req.ExperimentsPerSize < 1 {
		return core.NewInvalidArgumentError("experiments per size", fmt.Sprintf("must be >= 1, got %d", req.ExperimentsPerSize))
	}
	if req.Iterations < 1 {
		return core.NewInvalidArgumentError("iterations", fmt.Sprintf("must be >= 1, got %d", req.Iterations))
	}
	if req.Alpha <= 0 || req.Alpha >= 1 {
		return core.NewInvalidArgumentError("alpha", fmt.Sprintf("must be in (0, 1), got %g", req.Alpha))
	}
	return nil
}
