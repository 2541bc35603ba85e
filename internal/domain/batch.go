package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davidbz/matchwise/internal/observability"
	"github.com/davidbz/matchwise/internal/workpool"
)

// Job outcome statuses reported to the recorder.
const (
	JobStatusSucceeded = "succeeded"
	JobStatusFailed    = "failed"
	JobStatusCanceled  = "canceled"
)

// Default per-request token volume used for batch cost estimates.
const (
	DefaultInputTokensPerRequest  = 800
	DefaultOutputTokensPerRequest = 150
)

// JobMatcher matches a single job.
type JobMatcher interface {
	MatchJob(ctx context.Context, jobID string, opts MatchOptions) (*MatchRun, error)
}

// BatchConfig configures cost estimation for batch runs.
type BatchConfig struct {
	// CompletionModel is priced for the estimate.
	CompletionModel string
	Tokens          TokenEstimate
	Defaults        MatchOptions
}

// JobOutcome is the per-job record of a batch run.
type JobOutcome struct {
	JobID     string         `json:"job_id"`
	Results   []*MatchResult `json:"results"`
	FromCache bool           `json:"from_cache"`
	Duration  time.Duration  `json:"duration"`
	Usage     Usage          `json:"usage"`
	Err       error          `json:"-"`
	Error     string         `json:"error,omitempty"`
}

// BatchResult aggregates a batch run. Outcomes are in completion order.
type BatchResult struct {
	RunID          string         `json:"run_id"`
	Outcomes       []*JobOutcome  `json:"outcomes"`
	TotalJobs      int            `json:"total_jobs"`
	TotalProcessed int            `json:"total_processed"`
	Failed         int            `json:"failed"`
	Canceled       int            `json:"canceled"`
	TotalTime      time.Duration  `json:"total_time"`
	AverageTime    time.Duration  `json:"average_time"`
	Usage          Usage          `json:"usage"`
	CostEstimate   *CostBreakdown `json:"cost_estimate,omitempty"`
}

// BatchOrchestrator matches many jobs with bounded concurrency.
type BatchOrchestrator struct {
	matcher    JobMatcher
	calculator CostCalculator
	config     BatchConfig
	recorder   Recorder
}

// NewBatchOrchestrator creates a new batch orchestrator (DI constructor).
func NewBatchOrchestrator(
	matcher JobMatcher,
	calculator CostCalculator,
	config BatchConfig,
	recorder Recorder,
) *BatchOrchestrator {
	if config.Tokens.InputTokensPerRequest <= 0 {
		config.Tokens.InputTokensPerRequest = DefaultInputTokensPerRequest
	}
	if config.Tokens.OutputTokensPerRequest <= 0 {
		config.Tokens.OutputTokensPerRequest = DefaultOutputTokensPerRequest
	}
	config.Defaults = config.Defaults.WithDefaults(DefaultMatchOptions())
	if recorder == nil {
		recorder = NopRecorder{}
	}

	return &BatchOrchestrator{
		matcher:    matcher,
		calculator: calculator,
		config:     config,
		recorder:   recorder,
	}
}

// BatchMatch matches every job with at most opts.MaxConcurrent jobs in flight. One
// job failing never aborts the others. Once ctx is done no new job starts; jobs
// already running finish and are reported.
func (b *BatchOrchestrator) BatchMatch(ctx context.Context, jobIDs []string, opts MatchOptions) (*BatchResult, error) {
	opts = opts.WithDefaults(b.config.Defaults)

	runID := observability.GenerateRunID()
	ctx = observability.WithRunID(ctx, runID)
	logger := observability.FromContext(ctx)

	result := &BatchResult{
		RunID:     runID,
		Outcomes:  make([]*JobOutcome, 0, len(jobIDs)),
		TotalJobs: len(jobIDs),
	}

	logger.Info("batch match started",
		observability.Int("jobs", len(jobIDs)),
		observability.Int("max_concurrent", opts.MaxConcurrent))

	started := time.Now()

	stream, err := workpool.Run(ctx, jobIDs, workpool.Options{Workers: opts.MaxConcurrent},
		func(ctx context.Context, _ int, jobID string) (*JobOutcome, error) {
			return b.matchOne(context.WithoutCancel(ctx), jobID, opts), nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to start batch: %w", err)
	}

	for item := range stream {
		outcome := item.Value
		if item.Err != nil {
			outcome = b.unfinished(jobIDs[item.Index], item.Err)
		}
		result.Outcomes = append(result.Outcomes, outcome)

		switch {
		case outcome.Err == nil:
			result.TotalProcessed++
			result.Usage.PromptTokens += outcome.Usage.PromptTokens
			result.Usage.CompletionTokens += outcome.Usage.CompletionTokens
			result.Usage.TotalTokens += outcome.Usage.TotalTokens
		case errors.Is(outcome.Err, ErrBatchCanceled):
			result.Canceled++
		default:
			result.Failed++
		}
	}

	result.TotalTime = time.Since(started)
	if result.TotalProcessed > 0 {
		result.AverageTime = result.TotalTime / time.Duration(result.TotalProcessed)
	}

	result.CostEstimate = b.estimateCost(ctx, opts.AITopK, result.TotalProcessed)

	logger.Info("batch match finished",
		observability.Int("processed", result.TotalProcessed),
		observability.Int("failed", result.Failed),
		observability.Int("canceled", result.Canceled),
		observability.Duration("total_time", result.TotalTime))

	return result, nil
}

func (b *BatchOrchestrator) matchOne(ctx context.Context, jobID string, opts MatchOptions) *JobOutcome {
	started := time.Now()
	outcome := &JobOutcome{JobID: jobID, Results: []*MatchResult{}}

	run, err := b.matcher.MatchJob(ctx, jobID, opts)
	outcome.Duration = time.Since(started)

	if err != nil {
		observability.FromContext(ctx).Error("batch job failed",
			observability.String("job_id", jobID),
			observability.Error(err))
		outcome.Err = err
		outcome.Error = err.Error()
		b.recorder.JobFinished(JobStatusFailed, outcome.Duration)
		return outcome
	}

	outcome.Results = run.Results
	outcome.FromCache = run.FromCache
	outcome.Usage = run.Usage
	b.recorder.JobFinished(JobStatusSucceeded, outcome.Duration)
	return outcome
}

// unfinished records a job that never produced a run: skipped on cancellation or
// failed to submit.
func (b *BatchOrchestrator) unfinished(jobID string, cause error) *JobOutcome {
	status := JobStatusFailed
	err := cause
	if errors.Is(cause, workpool.ErrSkipped) {
		status = JobStatusCanceled
		err = fmt.Errorf("%w: %w", ErrBatchCanceled, cause)
	}
	b.recorder.JobFinished(status, 0)
	return &JobOutcome{
		JobID:   jobID,
		Results: []*MatchResult{},
		Err:     err,
		Error:   err.Error(),
	}
}

func (b *BatchOrchestrator) estimateCost(ctx context.Context, aiTopK, jobsProcessed int) *CostBreakdown {
	if b.calculator == nil || b.config.CompletionModel == "" {
		return nil
	}

	estimate, err := EstimateRerankCost(ctx, b.calculator, b.config.CompletionModel, b.config.Tokens, aiTopK, jobsProcessed)
	if err != nil {
		observability.FromContext(ctx).Warn("failed to estimate batch cost", observability.Error(err))
		return nil
	}
	return estimate
}
