package storage

import (
	"context"
	"math"
	"testing"
	"time"

	errs "compliance-cost/internal/errors"

	"compliance-cost/core/types"
)

func storedEstimate(id, regulationID, customerID string, createdAt time.Time) *types.CostEstimate {
	return &types.CostEstimate{
		ID:                  id,
		RegulationVersionID: regulationID,
		CustomerID:          customerID,
		OneTimeCostLow:      80000,
		OneTimeCostHigh:     120000,
		RecurringCostAnnual: 40000,
		Confidence:          0.75,
		CreatedAt:           createdAt,
	}
}

// TestSaveAndGet exercises the basic round trip plus copy semantics
func TestSaveAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	original := storedEstimate("e1", "gdpr-v1", "acme", time.Now())
	if err := store.SaveEstimate(ctx, original); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.GetEstimate(ctx, "e1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.RegulationVersionID != "gdpr-v1" || got.CustomerID != "acme" {
		t.Errorf("unexpected estimate %+v", got)
	}

	// Mutating the returned copy must not touch the stored value
	got.OneTimeCostLow = 1
	again, _ := store.GetEstimate(ctx, "e1")
	if again.OneTimeCostLow != 80000 {
		t.Error("store handed out a shared pointer")
	}
}

// TestSaveRejectsMissingID verifies the input guard
func TestSaveRejectsMissingID(t *testing.T) {
	store := NewMemoryStore()
	err := store.SaveEstimate(context.Background(), &types.CostEstimate{})
	if err == nil {
		t.Fatal("expected an error for an estimate without an ID")
	}
	if !errs.IsType(err, errs.TypeInput) {
		t.Errorf("expected input error, got %v", err)
	}
}

// TestGetMissing verifies the not-found error type
func TestGetMissing(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.GetEstimate(context.Background(), "nope")
	if !errs.IsType(err, errs.TypeNotFound) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

// TestPairKeyReplacement verifies a re-estimate for the same regulation
// and customer replaces the previous record
func TestPairKeyReplacement(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := storedEstimate("e1", "gdpr-v1", "acme", time.Now().Add(-time.Hour))
	second := storedEstimate("e2", "gdpr-v1", "acme", time.Now())
	other := storedEstimate("e3", "gdpr-v2", "acme", time.Now())

	for _, e := range []*types.CostEstimate{first, second, other} {
		if err := store.SaveEstimate(ctx, e); err != nil {
			t.Fatalf("save %s: %v", e.ID, err)
		}
	}

	if _, err := store.GetEstimate(ctx, "e1"); err == nil {
		t.Error("replaced estimate e1 should be gone")
	}
	if _, err := store.GetEstimate(ctx, "e2"); err != nil {
		t.Errorf("replacement estimate e2 missing: %v", err)
	}

	estimates, err := store.ListEstimates(ctx, "acme")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(estimates) != 2 {
		t.Fatalf("expected 2 estimates after replacement, got %d", len(estimates))
	}
}

// TestListNewestFirst verifies ordering and customer scoping
func TestListNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	store.SaveEstimate(ctx, storedEstimate("old", "gdpr-v1", "acme", now.Add(-2*time.Hour)))
	store.SaveEstimate(ctx, storedEstimate("new", "ccpa-v1", "acme", now))
	store.SaveEstimate(ctx, storedEstimate("mid", "dora-v1", "acme", now.Add(-time.Hour)))
	store.SaveEstimate(ctx, storedEstimate("other", "gdpr-v1", "globex", now))

	estimates, err := store.ListEstimates(ctx, "acme")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(estimates) != 3 {
		t.Fatalf("expected 3 estimates, got %d", len(estimates))
	}
	for i, want := range []string{"new", "mid", "old"} {
		if estimates[i].ID != want {
			t.Errorf("position %d: got %s, want %s", i, estimates[i].ID, want)
		}
	}
}

// TestRecordActualAndHistory verifies variance derivation against the
// one-time midpoint and oldest-first history ordering
func TestRecordActualAndHistory(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.SaveEstimate(ctx, storedEstimate("e1", "gdpr-v1", "acme", time.Now()))
	store.SaveEstimate(ctx, storedEstimate("e2", "ccpa-v1", "acme", time.Now()))

	// Midpoint is 100000
	if err := store.RecordActual(ctx, "e1", 120000); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.RecordActual(ctx, "e2", 90000); err != nil {
		t.Fatalf("record: %v", err)
	}

	if err := store.RecordActual(ctx, "missing", 1); !errs.IsType(err, errs.TypeNotFound) {
		t.Errorf("expected not-found for unknown estimate, got %v", err)
	}

	history, err := store.History(ctx, "acme")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 records, got %d", len(history))
	}
	if math.Abs(history[0].Variance-0.2) > 1e-9 {
		t.Errorf("first variance = %v, want 0.2", history[0].Variance)
	}
	if math.Abs(history[1].Variance+0.1) > 1e-9 {
		t.Errorf("second variance = %v, want -0.1", history[1].Variance)
	}

	if other, _ := store.History(ctx, "globex"); len(other) != 0 {
		t.Error("history leaked across customers")
	}
}
