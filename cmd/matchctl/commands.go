package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/davidbz/matchwise/internal/app"
	"github.com/davidbz/matchwise/internal/config"
	"github.com/davidbz/matchwise/internal/domain"
	"github.com/davidbz/matchwise/internal/storage/badger"
)

// Fixture is the import file layout.
type Fixture struct {
	Jobs       []*domain.Job       `json:"jobs"`
	Candidates []*domain.Candidate `json:"candidates"`
}

// ImportReport counts imported records.
type ImportReport struct {
	Jobs       int `json:"jobs"`
	Candidates int `json:"candidates"`
}

// withContainer builds the container, validates configuration when asked, runs fn
// through Invoke and releases every resource afterwards.
func withContainer(c *cli.Context, validate bool, fn any) error {
	ctx := c.Context
	container := app.BuildContainer(ctx)

	if err := container.Invoke(func(cfg *config.Config, _ *zap.Logger) error {
		if validate {
			return cfg.Validate()
		}
		return nil
	}); err != nil {
		return err
	}

	runErr := container.Invoke(fn)

	stopErr := container.Invoke(func(lifecycle *app.Lifecycle) error {
		return lifecycle.Stop(context.WithoutCancel(ctx))
	})
	return errors.Join(runErr, stopErr)
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func importCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return errors.New("fixture file is required")
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open fixture: %w", err)
	}
	defer file.Close()

	return withContainer(c, false, func(store *badger.Store) error {
		report, err := importFixture(c.Context, store, file)
		if err != nil {
			return err
		}
		return writeJSON(c.App.Writer, report)
	})
}

// importFixture saves every job and candidate of the fixture. Stored embeddings
// are kept; records without one are left for the embed command.
func importFixture(ctx context.Context, store *badger.Store, r io.Reader) (*ImportReport, error) {
	var fixture Fixture
	if err := json.NewDecoder(r).Decode(&fixture); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}

	report := &ImportReport{}
	for _, job := range fixture.Jobs {
		if job == nil || job.ID == "" {
			return nil, errors.New("invalid fixture: job without id")
		}
		if err := store.SaveJob(ctx, job); err != nil {
			return nil, fmt.Errorf("failed to import job %s: %w", job.ID, err)
		}
		report.Jobs++
	}
	for _, candidate := range fixture.Candidates {
		if candidate == nil || candidate.ID == "" {
			return nil, errors.New("invalid fixture: candidate without id")
		}
		if err := store.SaveCandidate(ctx, candidate); err != nil {
			return nil, fmt.Errorf("failed to import candidate %s: %w", candidate.ID, err)
		}
		report.Candidates++
	}
	return report, nil
}

func embedCommand(c *cli.Context) error {
	kind := c.String("kind")
	if kind != "jobs" && kind != "candidates" && kind != "all" {
		return fmt.Errorf("invalid kind %q: want jobs, candidates or all", kind)
	}
	limit := c.Int("limit")

	return withContainer(c, true, func(backfill *domain.EmbeddingBackfill) error {
		reports := make([]*domain.BackfillReport, 0, 2)

		if kind == "jobs" || kind == "all" {
			report, err := backfill.BackfillJobs(c.Context, limit)
			if err != nil {
				return err
			}
			reports = append(reports, report)
		}
		if kind == "candidates" || kind == "all" {
			report, err := backfill.BackfillCandidates(c.Context, limit)
			if err != nil {
				return err
			}
			reports = append(reports, report)
		}

		return writeJSON(c.App.Writer, reports)
	})
}

func matchOptions(c *cli.Context) domain.MatchOptions {
	opts := domain.MatchOptions{
		VectorTopK:          c.Int("vector-top-k"),
		AITopK:              c.Int("ai-top-k"),
		Language:            c.String("language"),
		Location:            c.String("location"),
		ExcludeCandidateIDs: c.StringSlice("exclude"),
		MaxConcurrent:       c.Int("max-concurrent"),
		ForceRefresh:        c.Bool("force-refresh"),
	}
	if c.IsSet("min-ai-score") {
		opts.MinAIScore = domain.Float64(c.Float64("min-ai-score"))
	}
	if c.IsSet("min-similarity") {
		opts.MinVectorSimilarity = domain.Float64(c.Float64("min-similarity"))
	}
	return opts
}

func matchCommand(c *cli.Context) error {
	return withContainer(c, true, func(matching *domain.MatchingService) error {
		run, err := matching.MatchJob(c.Context, c.String("job"), matchOptions(c))
		if err != nil {
			return err
		}
		return writeJSON(c.App.Writer, run)
	})
}

func batchCommand(c *cli.Context) error {
	return withContainer(c, true, func(batch *domain.BatchOrchestrator) error {
		result, err := batch.BatchMatch(c.Context, c.StringSlice("job"), matchOptions(c))
		if err != nil {
			return err
		}
		return writeJSON(c.App.Writer, result)
	})
}

func jobsCommand(c *cli.Context) error {
	return withContainer(c, true, func(matching *domain.MatchingService) error {
		jobs, err := matching.FindJobsForCandidate(c.Context, c.String("candidate"), c.Int("limit"), c.Float64("min-similarity"))
		if err != nil {
			return err
		}
		return writeJSON(c.App.Writer, jobs)
	})
}

func statsCommand(c *cli.Context) error {
	return withContainer(c, true, func(matching *domain.MatchingService) error {
		stats, err := matching.GetMatchingStats(c.Context)
		if err != nil {
			return err
		}
		return writeJSON(c.App.Writer, stats)
	})
}

func invalidateCommand(c *cli.Context) error {
	jobID := c.String("job")
	candidateID := c.String("candidate")
	if (jobID == "") == (candidateID == "") {
		return errors.New("exactly one of --job or --candidate is required")
	}

	return withContainer(c, true, func(matching *domain.MatchingService) error {
		var (
			removed int
			err     error
		)
		if jobID != "" {
			removed, err = matching.InvalidateJob(c.Context, jobID)
		} else {
			removed, err = matching.InvalidateCandidate(c.Context, candidateID)
		}
		if err != nil {
			return err
		}
		return writeJSON(c.App.Writer, map[string]int{"removed": removed})
	})
}
