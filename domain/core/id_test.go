package core

import (
	"errors"
	"testing"
)

// TestNewRunIDUniqueness tests that NewRunID generates unique identifiers
func TestNewRunIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[RunID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewRunID()
		if id.IsEmpty() {
			t.Errorf("Generated empty RunID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate RunID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique RunIDs, got %d", numIDs, len(ids))
	}
}

// TestRunIDString tests RunID string conversion
func TestRunIDString(t *testing.T) {
	id := RunID("run-123")
	if id.String() != "run-123" {
		t.Errorf("Expected String() to return 'run-123', got '%s'", id.String())
	}
}

// TestRunIDIsEmpty tests RunID emptiness check
func TestRunIDIsEmpty(t *testing.T) {
	if !RunID("").IsEmpty() {
		t.Error("Expected empty RunID to be empty")
	}
	if RunID("not-empty").IsEmpty() {
		t.Error("Expected non-empty RunID to not be empty")
	}
}

// TestErrorTaxonomy tests that wrapped errors resolve through the sentinel helpers
func TestErrorTaxonomy(t *testing.T) {
	if !IsInvalidDataError(NewShapeError("two_groups", "category_counts")) {
		t.Error("shape errors should classify as invalid data")
	}
	if !IsInvalidDataError(NewEmptyGroupError("group1")) {
		t.Error("empty-group errors should classify as invalid data")
	}
	if !errors.Is(NewEmptyGroupError("group1"), ErrEmptyGroup) {
		t.Error("empty-group errors should match their own sentinel")
	}
	if !IsInvalidArgumentError(NewInvalidArgumentError("iterations", "must be >= 1")) {
		t.Error("argument errors should classify as invalid argument")
	}
	if !IsUnimplementedVariantError(NewUnimplementedVariantError("statistic function", "unknown")) {
		t.Error("variant errors should classify as unimplemented variant")
	}
	if IsInvalidDataError(ErrNotYetEstimated) {
		t.Error("estimation-state errors should not classify as invalid data")
	}
}
