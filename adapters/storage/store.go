// Package storage persists estimates and actual-cost observations.
// The engine holds no identity beyond what it is given; this adapter
// owns the regulation-version + customer keying.
package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	errs "compliance-cost/internal/errors"

	"compliance-cost/core/learning"
	"compliance-cost/core/types"
)

// Store persists estimates and feedback history
type Store interface {
	// SaveEstimate stores an estimate, replacing any previous estimate
	// for the same regulation version + customer
	SaveEstimate(ctx context.Context, estimate *types.CostEstimate) error

	// GetEstimate retrieves an estimate by ID
	GetEstimate(ctx context.Context, id string) (*types.CostEstimate, error)

	// ListEstimates lists a customer's estimates, newest first
	ListEstimates(ctx context.Context, customerID string) ([]*types.CostEstimate, error)

	// RecordActual stores an actual-cost observation against an
	// estimate and derives its variance
	RecordActual(ctx context.Context, estimateID string, actualCost float64) error

	// History returns a customer's feedback records for the learning
	// loop, oldest first
	History(ctx context.Context, customerID string) ([]learning.FeedbackRecord, error)

	// Close releases store resources
	Close() error
}

type actualObservation struct {
	customerID string
	record     learning.FeedbackRecord
	recordedAt time.Time
}

// MemoryStore is an in-process Store for tests and single-run CLI use
type MemoryStore struct {
	mu        sync.RWMutex
	byID      map[string]*types.CostEstimate
	byPairKey map[string]string // regulationVersionID+customerID -> estimate ID
	actuals   []actualObservation
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:      make(map[string]*types.CostEstimate),
		byPairKey: make(map[string]string),
	}
}

func pairKey(regulationVersionID, customerID string) string {
	return regulationVersionID + "\x00" + customerID
}

// SaveEstimate stores an estimate
func (s *MemoryStore) SaveEstimate(_ context.Context, estimate *types.CostEstimate) error {
	if estimate == nil || estimate.ID == "" {
		return errs.Input("estimate must have an ID")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey(estimate.RegulationVersionID, estimate.CustomerID)
	if previousID, ok := s.byPairKey[key]; ok && previousID != estimate.ID {
		delete(s.byID, previousID)
	}
	s.byPairKey[key] = estimate.ID

	copied := *estimate
	s.byID[estimate.ID] = &copied
	return nil
}

// GetEstimate retrieves an estimate by ID
func (s *MemoryStore) GetEstimate(_ context.Context, id string) (*types.CostEstimate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	estimate, ok := s.byID[id]
	if !ok {
		return nil, errs.NotFound("estimate", id)
	}
	copied := *estimate
	return &copied, nil
}

// ListEstimates lists a customer's estimates, newest first
func (s *MemoryStore) ListEstimates(_ context.Context, customerID string) ([]*types.CostEstimate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var estimates []*types.CostEstimate
	for _, e := range s.byID {
		if e.CustomerID == customerID {
			copied := *e
			estimates = append(estimates, &copied)
		}
	}
	sort.Slice(estimates, func(i, j int) bool {
		return estimates[i].CreatedAt.After(estimates[j].CreatedAt)
	})
	return estimates, nil
}

// RecordActual stores an actual-cost observation
func (s *MemoryStore) RecordActual(_ context.Context, estimateID string, actualCost float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	estimate, ok := s.byID[estimateID]
	if !ok {
		return errs.NotFound("estimate", estimateID)
	}

	s.actuals = append(s.actuals, actualObservation{
		customerID: estimate.CustomerID,
		record:     learning.NewFeedbackRecord(estimate.OneTimeCostMid(), actualCost),
		recordedAt: time.Now().UTC(),
	})
	return nil
}

// History returns a customer's feedback records, oldest first
func (s *MemoryStore) History(_ context.Context, customerID string) ([]learning.FeedbackRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []learning.FeedbackRecord
	for _, obs := range s.actuals {
		if obs.customerID == customerID {
			records = append(records, obs.record)
		}
	}
	return records, nil
}

// Close is a no-op for the memory store
func (s *MemoryStore) Close() error {
	return nil
}
