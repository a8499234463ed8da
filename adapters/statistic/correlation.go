package statistic

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/myerscody16/DSC530/domain/core"
	"github.com/myerscody16/DSC530/domain/sample"
)

// AbsCorrelation measures |corr(x, y)| over a paired series.
// Two-sided: positive and negative association are equally extreme.
type AbsCorrelation struct{}

// NewAbsCorrelation creates the two-sided correlation-magnitude statistic
func NewAbsCorrelation() *AbsCorrelation {
	return &AbsCorrelation{}
}

func (s *AbsCorrelation) Name() string        { return "abs_correlation" }
func (s *AbsCorrelation) Shape() sample.Shape { return sample.ShapePairedSeries }

// Bind validates the paired shape and requires at least two pairs,
// since correlation is undefined for a single point.
func (s *AbsCorrelation) Bind(arr sample.Arrangement) error {
	series, ok := arr.(sample.PairedSeries)
	if !ok {
		return core.NewShapeError(string(sample.ShapePairedSeries), string(arr.Shape()))
	}
	if len(series.X) < 2 {
		return core.NewInvalidDataError("abs_correlation: need at least 2 pairs")
	}
	return nil
}

func (s *AbsCorrelation) Compute(arr sample.Arrangement) float64 {
	series := arr.(sample.PairedSeries)
	r := stat.Correlation(series.X, series.Y, nil)
	if math.IsNaN(r) {
		// Zero variance in either series: no measurable association
		return 0
	}
	return math.Abs(r)
}
