// Package service orchestrates one consolidation pass: load the base
// table (or start empty), aggregate the new object into a delta batch,
// dispatch the kind's merge strategy, and store the result.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"matchlake/internal/aggregate"
	"matchlake/internal/domain"
	"matchlake/internal/h2h"
	"matchlake/internal/intake"
	"matchlake/internal/merge"
	"matchlake/internal/storage"
	"matchlake/internal/table"
)

// Consolidator merges per-kind delta batches into the consolidated
// head-to-head table. It performs all I/O up front and after the merge;
// the merge itself is a pure in-memory transformation. Callers must
// serialize Process calls per table location: there is no lock here,
// and concurrent read-modify-write cycles lose updates.
type Consolidator struct {
	store    domain.ObjectStore
	bucket   string // lake bucket holding the consolidated table
	tableKey string // object key of the consolidated table
	policy   *merge.Policy
	logger   *slog.Logger
}

// New creates a consolidator writing to s3://bucket/tableKey.
func New(store domain.ObjectStore, bucket, tableKey string, policy *merge.Policy, logger *slog.Logger) *Consolidator {
	return &Consolidator{
		store:    store,
		bucket:   bucket,
		tableKey: tableKey,
		policy:   policy,
		logger:   logger,
	}
}

// Process runs one referenced source object through the pipeline.
// Objects whose key names no known record kind are skipped, not failed.
// Every error is surfaced synchronously; nothing is retried here.
func (c *Consolidator) Process(ctx context.Context, ref intake.ObjectRef) (intake.Outcome, error) {
	log := c.logger.With("run_id", uuid.New().String(), "source", ref.URI())

	kind, ok := domain.KindFromKey(ref.Key)
	if !ok {
		log.Info("no record kind for key, skipping")
		return intake.Outcome{Skipped: true}, nil
	}
	log = log.With("kind", string(kind))

	base, err := c.loadBase(ctx, log)
	if err != nil {
		return intake.Outcome{}, err
	}

	rawData, err := c.store.Get(ctx, ref.Bucket, ref.Key)
	if err != nil {
		return intake.Outcome{}, fmt.Errorf("load source object: %w", err)
	}
	raw, err := storage.DecodeParquet(ctx, rawData)
	if err != nil {
		return intake.Outcome{}, fmt.Errorf("decode source object: %w", err)
	}

	delta, ok, err := aggregate.BuildDelta(kind, raw)
	if err != nil {
		return intake.Outcome{}, fmt.Errorf("aggregate %s delta: %w", kind, err)
	}
	if !ok {
		log.Info("no aggregator for kind, skipping")
		return intake.Outcome{Skipped: true}, nil
	}
	log.Info("tables materialized", "base_rows", base.NumRows(), "delta_rows", delta.NumRows())

	merged, ok, err := c.policy.Merge(kind, base, delta)
	if err != nil {
		return intake.Outcome{}, fmt.Errorf("merge %s delta: %w", kind, err)
	}
	if !ok {
		log.Info("no merge policy for kind, skipping")
		return intake.Outcome{Skipped: true}, nil
	}

	data, err := storage.EncodeParquet(merged)
	if err != nil {
		return intake.Outcome{}, fmt.Errorf("encode consolidated table: %w", err)
	}
	if err := c.store.Put(ctx, c.bucket, c.tableKey, data); err != nil {
		return intake.Outcome{}, fmt.Errorf("store consolidated table: %w", err)
	}
	log.Info("consolidated table written",
		"target", fmt.Sprintf("s3://%s/%s", c.bucket, c.tableKey),
		"rows", merged.NumRows())

	return intake.Outcome{Rows: merged.NumRows()}, nil
}

// loadBase fetches the consolidated table, or returns an empty canonical
// table the first time none exists.
func (c *Consolidator) loadBase(ctx context.Context, log *slog.Logger) (*table.Table, error) {
	exists, err := c.store.Exists(ctx, c.bucket, c.tableKey)
	if err != nil {
		return nil, fmt.Errorf("check consolidated table: %w", err)
	}
	if !exists {
		log.Info("no existing consolidated table, starting empty")
		return h2h.Empty(), nil
	}
	data, err := c.store.Get(ctx, c.bucket, c.tableKey)
	if err != nil {
		return nil, fmt.Errorf("load consolidated table: %w", err)
	}
	base, err := storage.DecodeParquet(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("decode consolidated table: %w", err)
	}
	return base, nil
}
