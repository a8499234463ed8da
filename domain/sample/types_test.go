package sample

import (
	"testing"

	"github.com/myerscody16/DSC530/domain/core"
)

func TestNewTwoGroups_Validation(t *testing.T) {
	if _, err := NewTwoGroups(nil, []float64{1}); !core.IsInvalidDataError(err) {
		t.Errorf("expected invalid data error for empty group1, got %v", err)
	}
	if _, err := NewTwoGroups([]float64{1}, nil); !core.IsInvalidDataError(err) {
		t.Errorf("expected invalid data error for empty group2, got %v", err)
	}

	groups, err := NewTwoGroups([]float64{1, 2}, []float64{3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if groups.Size() != 3 {
		t.Errorf("expected size 3, got %d", groups.Size())
	}
	if groups.Shape() != ShapeTwoGroups {
		t.Errorf("unexpected shape %s", groups.Shape())
	}
}

func TestNewTwoGroups_CopiesInput(t *testing.T) {
	g1 := []float64{1, 2, 3}
	groups, err := NewTwoGroups(g1, []float64{4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g1[0] = 99
	if groups.G1[0] != 1 {
		t.Errorf("arrangement shares caller's backing array")
	}
}

func TestNewPairedSeries_Validation(t *testing.T) {
	if _, err := NewPairedSeries([]float64{1, 2}, []float64{1}); !core.IsInvalidDataError(err) {
		t.Errorf("expected invalid data error for length mismatch, got %v", err)
	}
	if _, err := NewPairedSeries(nil, nil); !core.IsInvalidDataError(err) {
		t.Errorf("expected invalid data error for empty series, got %v", err)
	}

	series, err := NewPairedSeries([]float64{1, 2}, []float64{3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Size() != 2 {
		t.Errorf("expected size 2, got %d", series.Size())
	}
}

func TestNewCategoryCounts_Validation(t *testing.T) {
	cases := []struct {
		name   string
		counts []float64
		ok     bool
	}{
		{"valid", []float64{8, 9, 19, 5, 8, 11}, true},
		{"single category", []float64{10}, false},
		{"negative count", []float64{5, -1, 3}, false},
		{"all zero", []float64{0, 0, 0}, false},
		{"zero in one category", []float64{5, 0, 3}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			counts, err := NewCategoryCounts(tc.counts)
			if tc.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if counts.K() != len(tc.counts) {
					t.Errorf("expected %d categories, got %d", len(tc.counts), counts.K())
				}
			} else if !core.IsInvalidDataError(err) {
				t.Errorf("expected invalid data error, got %v", err)
			}
		})
	}
}

func TestCategoryCounts_Total(t *testing.T) {
	counts := MustCategoryCounts([]float64{8, 9, 19, 5, 8, 11})
	if counts.Total() != 60 {
		t.Errorf("expected total 60, got %g", counts.Total())
	}
	if counts.Size() != 60 {
		t.Errorf("expected size 60, got %d", counts.Size())
	}
}

func TestSample_Clone(t *testing.T) {
	s := NewSample([]float64{1, 2, 3})
	c := s.Clone()
	c[0] = 42
	if s[0] != 1 {
		t.Errorf("clone shares backing array")
	}
}
