// Package storage - PostgreSQL backend
package storage

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "github.com/lib/pq"

	errs "compliance-cost/internal/errors"

	"compliance-cost/core/learning"
	"compliance-cost/core/types"
)

// PostgresStore persists estimates in PostgreSQL. Estimates are stored
// as JSON payloads with the identity columns lifted out for keying.
type PostgresStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS cost_estimates (
	id                    TEXT PRIMARY KEY,
	regulation_version_id TEXT NOT NULL,
	customer_id           TEXT NOT NULL,
	one_time_mid          DOUBLE PRECISION NOT NULL,
	created_at            TIMESTAMPTZ NOT NULL,
	payload               JSONB NOT NULL,
	UNIQUE (regulation_version_id, customer_id)
);

CREATE TABLE IF NOT EXISTS actual_costs (
	id             BIGSERIAL PRIMARY KEY,
	estimate_id    TEXT NOT NULL REFERENCES cost_estimates (id) ON DELETE CASCADE,
	customer_id    TEXT NOT NULL,
	estimated_cost DOUBLE PRECISION NOT NULL,
	actual_cost    DOUBLE PRECISION NOT NULL,
	variance       DOUBLE PRECISION NOT NULL,
	recorded_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_actual_costs_customer ON actual_costs (customer_id, recorded_at);
`

// NewPostgresStore opens a connection and ensures the schema exists
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errs.Storage("opening postgres connection", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errs.Storage("pinging postgres", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errs.Storage("initializing schema", err)
	}
	return &PostgresStore{db: db}, nil
}

// SaveEstimate upserts an estimate on its regulation + customer key
func (s *PostgresStore) SaveEstimate(ctx context.Context, estimate *types.CostEstimate) error {
	if estimate == nil || estimate.ID == "" {
		return errs.Input("estimate must have an ID")
	}

	payload, err := json.Marshal(estimate)
	if err != nil {
		return errs.Storage("marshaling estimate", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cost_estimates (id, regulation_version_id, customer_id, one_time_mid, created_at, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (regulation_version_id, customer_id) DO UPDATE
		SET id = EXCLUDED.id,
		    one_time_mid = EXCLUDED.one_time_mid,
		    created_at = EXCLUDED.created_at,
		    payload = EXCLUDED.payload`,
		estimate.ID, estimate.RegulationVersionID, estimate.CustomerID,
		estimate.OneTimeCostMid(), estimate.CreatedAt, payload)
	if err != nil {
		return errs.Storage("saving estimate", err)
	}
	return nil
}

// GetEstimate retrieves an estimate by ID
func (s *PostgresStore) GetEstimate(ctx context.Context, id string) (*types.CostEstimate, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM cost_estimates WHERE id = $1`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("estimate", id)
	}
	if err != nil {
		return nil, errs.Storage("loading estimate", err)
	}

	var estimate types.CostEstimate
	if err := json.Unmarshal(payload, &estimate); err != nil {
		return nil, errs.Storage("unmarshaling estimate", err)
	}
	return &estimate, nil
}

// ListEstimates lists a customer's estimates, newest first
func (s *PostgresStore) ListEstimates(ctx context.Context, customerID string) ([]*types.CostEstimate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM cost_estimates
		WHERE customer_id = $1
		ORDER BY created_at DESC`, customerID)
	if err != nil {
		return nil, errs.Storage("listing estimates", err)
	}
	defer rows.Close()

	var estimates []*types.CostEstimate
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, errs.Storage("scanning estimate row", err)
		}
		var estimate types.CostEstimate
		if err := json.Unmarshal(payload, &estimate); err != nil {
			return nil, errs.Storage("unmarshaling estimate", err)
		}
		estimates = append(estimates, &estimate)
	}
	return estimates, rows.Err()
}

// RecordActual stores an actual-cost observation against an estimate
func (s *PostgresStore) RecordActual(ctx context.Context, estimateID string, actualCost float64) error {
	estimate, err := s.GetEstimate(ctx, estimateID)
	if err != nil {
		return err
	}

	record := learning.NewFeedbackRecord(estimate.OneTimeCostMid(), actualCost)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO actual_costs (estimate_id, customer_id, estimated_cost, actual_cost, variance)
		VALUES ($1, $2, $3, $4, $5)`,
		estimateID, estimate.CustomerID, record.EstimatedCost, record.ActualCost, record.Variance)
	if err != nil {
		return errs.Storage("recording actual cost", err)
	}
	return nil
}

// History returns a customer's feedback records, oldest first
func (s *PostgresStore) History(ctx context.Context, customerID string) ([]learning.FeedbackRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT estimated_cost, actual_cost, variance FROM actual_costs
		WHERE customer_id = $1
		ORDER BY recorded_at ASC`, customerID)
	if err != nil {
		return nil, errs.Storage("loading feedback history", err)
	}
	defer rows.Close()

	var records []learning.FeedbackRecord
	for rows.Next() {
		var r learning.FeedbackRecord
		if err := rows.Scan(&r.EstimatedCost, &r.ActualCost, &r.Variance); err != nil {
			return nil, errs.Storage("scanning feedback row", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close releases the connection pool
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Open builds a store from configuration
func Open(ctx context.Context, backend, dsn string) (Store, error) {
	switch backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "postgres":
		if dsn == "" {
			return nil, errs.Input("postgres backend requires a DSN")
		}
		return NewPostgresStore(ctx, dsn)
	}
	return nil, errs.Newf(errs.TypeConfig, "unknown storage backend %q", backend)
}
