package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/davidbz/matchwise/internal/domain"
	"github.com/davidbz/matchwise/internal/storage/badger"
)

func newStore(t *testing.T) *badger.Store {
	t.Helper()
	backend, err := badger.OpenBackend(badger.Config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	return badger.NewStore(backend)
}

func TestImportFixture(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	fixture := `{
		"jobs": [
			{"id": "job-1", "title": "Go Engineer", "status": "active", "embedding": {"values": [1, 0]}},
			{"id": "job-2", "title": "Data Engineer", "status": "active"}
		],
		"candidates": [
			{"id": "cand-1", "name": "Ada", "role": "candidate", "active": true}
		]
	}`

	report, err := importFixture(ctx, store, strings.NewReader(fixture))
	require.NoError(t, err)
	require.Equal(t, &ImportReport{Jobs: 2, Candidates: 1}, report)

	job, err := store.GetJob(ctx, "job-1")
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0}, job.Embedding.Values)

	missing, err := store.JobsMissingEmbeddings(ctx, 0)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	require.Equal(t, "job-2", missing[0].ID)

	candidate, err := store.GetCandidate(ctx, "cand-1")
	require.NoError(t, err)
	require.Equal(t, domain.RoleCandidate, candidate.Role)
}

func TestImportFixture_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		fixture string
		wantErr string
	}{
		{name: "malformed json", fixture: `{"jobs": [`, wantErr: "invalid fixture"},
		{name: "job without id", fixture: `{"jobs": [{"title": "x"}]}`, wantErr: "job without id"},
		{name: "candidate without id", fixture: `{"candidates": [{"name": "x"}]}`, wantErr: "candidate without id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importFixture(context.Background(), newStore(t), strings.NewReader(tt.fixture))
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestCommandValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "match requires job", args: []string{"matchctl", "match"}, wantErr: "job"},
		{name: "batch requires job", args: []string{"matchctl", "batch"}, wantErr: "job"},
		{name: "jobs requires candidate", args: []string{"matchctl", "jobs"}, wantErr: "candidate"},
		{name: "import requires file", args: []string{"matchctl", "import"}, wantErr: "fixture file is required"},
		{name: "embed rejects unknown kind", args: []string{"matchctl", "embed", "--kind", "both"}, wantErr: "invalid kind"},
		{name: "invalidate requires a target", args: []string{"matchctl", "invalidate"}, wantErr: "exactly one of"},
		{
			name:    "invalidate rejects two targets",
			args:    []string{"matchctl", "invalidate", "--job", "j", "--candidate", "c"},
			wantErr: "exactly one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp()
			app.Writer = &bytes.Buffer{}
			app.ErrWriter = &bytes.Buffer{}
			app.ExitErrHandler = func(*cli.Context, error) {}

			err := app.Run(tt.args)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestMatchOptionsFromFlags(t *testing.T) {
	var got domain.MatchOptions
	app := newApp()
	app.Writer = &bytes.Buffer{}
	for _, cmd := range app.Commands {
		if cmd.Name == "match" {
			cmd.Action = func(c *cli.Context) error {
				got = matchOptions(c)
				return nil
			}
		}
	}

	err := app.Run([]string{
		"matchctl", "match", "--job", "job-1",
		"--ai-top-k", "5", "--min-ai-score", "0", "--language", "de", "--force-refresh",
		"--exclude", "cand-9",
	})
	require.NoError(t, err)
	require.Equal(t, 5, got.AITopK)
	require.NotNil(t, got.MinAIScore)
	require.Zero(t, *got.MinAIScore)
	require.Nil(t, got.MinVectorSimilarity)
	require.Equal(t, []string{"cand-9"}, got.ExcludeCandidateIDs)
	require.Equal(t, "de", got.Language)
	require.True(t, got.ForceRefresh)
	require.Zero(t, got.VectorTopK)
}
