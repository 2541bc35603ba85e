package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davidbz/matchwise/internal/observability"
)

// BackfillFailure names a record that could not be embedded.
type BackfillFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// BackfillReport summarizes one backfill run.
type BackfillReport struct {
	Kind     EntityKind        `json:"kind"`
	Pending  int               `json:"pending"`
	Embedded int               `json:"embedded"`
	Failures []BackfillFailure `json:"failures"`
	Duration time.Duration     `json:"duration"`
}

// EmbeddingBackfill embeds stored records that have no vector yet.
type EmbeddingBackfill struct {
	store      EmbeddingStore
	embeddings *EmbeddingService
	now        func() time.Time
}

// NewEmbeddingBackfill creates a backfill over the given store.
func NewEmbeddingBackfill(store EmbeddingStore, embeddings *EmbeddingService) *EmbeddingBackfill {
	return &EmbeddingBackfill{store: store, embeddings: embeddings, now: time.Now}
}

type pendingRecord struct {
	id   string
	text string
}

// BackfillJobs embeds up to limit jobs lacking a vector; 0 means all.
func (b *EmbeddingBackfill) BackfillJobs(ctx context.Context, limit int) (*BackfillReport, error) {
	jobs, err := b.store.JobsMissingEmbeddings(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs without embeddings: %w", err)
	}

	pending := make([]pendingRecord, len(jobs))
	for i, job := range jobs {
		pending[i] = pendingRecord{id: job.ID, text: JobEmbeddingText(job)}
	}
	return b.run(ctx, KindJob, pending)
}

// BackfillCandidates embeds up to limit candidates lacking a vector; 0 means all.
func (b *EmbeddingBackfill) BackfillCandidates(ctx context.Context, limit int) (*BackfillReport, error) {
	candidates, err := b.store.CandidatesMissingEmbeddings(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates without embeddings: %w", err)
	}

	pending := make([]pendingRecord, len(candidates))
	for i, candidate := range candidates {
		pending[i] = pendingRecord{id: candidate.ID, text: CandidateEmbeddingText(candidate)}
	}
	return b.run(ctx, KindCandidate, pending)
}

func (b *EmbeddingBackfill) run(ctx context.Context, kind EntityKind, pending []pendingRecord) (*BackfillReport, error) {
	logger := observability.FromContext(ctx)
	started := b.now()
	report := &BackfillReport{Kind: kind, Pending: len(pending), Failures: []BackfillFailure{}}

	if len(pending) == 0 {
		return report, nil
	}

	texts := make([]string, len(pending))
	for i, record := range pending {
		texts[i] = record.text
	}

	items, err := b.embeddings.GenerateBatch(ctx, texts)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		record := pending[item.Index]
		if item.Err != nil {
			report.Failures = append(report.Failures, BackfillFailure{ID: record.id, Error: item.Err.Error()})
			continue
		}

		saveErr := b.store.SaveEmbedding(ctx, &EmbeddingVector{
			OwnerID:     record.id,
			OwnerKind:   kind,
			Values:      item.Result.Vector,
			Model:       item.Result.Model,
			GeneratedAt: b.now().UTC(),
		})
		if saveErr != nil {
			if errors.Is(saveErr, ErrNotFound) {
				logger.Warn("record deleted during backfill", observability.String("id", record.id))
			}
			report.Failures = append(report.Failures, BackfillFailure{ID: record.id, Error: saveErr.Error()})
			continue
		}
		report.Embedded++
	}

	report.Duration = b.now().Sub(started)

	logger.Info("embedding backfill finished",
		observability.String("kind", string(kind)),
		observability.Int("pending", report.Pending),
		observability.Int("embedded", report.Embedded),
		observability.Int("failed", len(report.Failures)))

	return report, nil
}
