package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/davidbz/matchwise/internal/domain"
	"github.com/davidbz/matchwise/internal/observability"
)

const maxBatchJobs = 500

// MatchRequest is the optional body of a single-job match call.
type MatchRequest struct {
	Options domain.MatchOptions `json:"options"`
}

// MatchResponse is returned by the single-job match endpoint.
type MatchResponse struct {
	JobID     string                `json:"job_id"`
	Matches   []*domain.MatchResult `json:"matches"`
	FromCache bool                  `json:"from_cache"`
	Degraded  bool                  `json:"degraded"`
	Fallbacks int                   `json:"fallbacks"`
	Usage     domain.Usage          `json:"usage"`
}

// BatchRequest is the body of a batch match call.
type BatchRequest struct {
	JobIDs  []string            `json:"job_ids"`
	Options domain.MatchOptions `json:"options"`
}

// JobsResponse is returned by the candidate -> jobs endpoint.
type JobsResponse struct {
	CandidateID string             `json:"candidate_id"`
	Jobs        []*domain.JobMatch `json:"jobs"`
}

// InvalidateResponse reports how many cache entries were removed.
type InvalidateResponse struct {
	Removed int `json:"removed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler handles HTTP requests.
type Handler struct {
	matching *domain.MatchingService
	batch    *domain.BatchOrchestrator
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(matching *domain.MatchingService, batch *domain.BatchOrchestrator) *Handler {
	return &Handler{
		matching: matching,
		batch:    batch,
	}
}

// HandleMatchJob ranks candidates for the job in the path.
func (h *Handler) HandleMatchJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	ctx := observability.WithJobID(r.Context(), jobID)
	logger := observability.FromContext(ctx)

	var req MatchRequest
	if err := decodeOptional(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	run, err := h.matching.MatchJob(ctx, jobID, req.Options)
	if err != nil {
		logger.Error("match failed", observability.Error(err))
		writeError(w, statusFor(err), err.Error())
		return
	}

	logger.Info("match succeeded",
		observability.Int("results", len(run.Results)),
		observability.Bool("from_cache", run.FromCache))

	writeJSON(w, http.StatusOK, MatchResponse{
		JobID:     run.JobID,
		Matches:   run.Results,
		FromCache: run.FromCache,
		Degraded:  run.Degraded,
		Fallbacks: run.Fallbacks,
		Usage:     run.Usage,
	})
}

// HandleBatchMatch matches several jobs with bounded concurrency.
func (h *Handler) HandleBatchMatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if len(req.JobIDs) == 0 {
		writeError(w, http.StatusBadRequest, "job_ids cannot be empty")
		return
	}
	if len(req.JobIDs) > maxBatchJobs {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("job_ids exceeds %d entries", maxBatchJobs))
		return
	}

	result, err := h.batch.BatchMatch(ctx, req.JobIDs, req.Options)
	if err != nil {
		logger.Error("batch match failed", observability.Error(err))
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleJobsForCandidate lists jobs similar to the candidate in the path.
func (h *Handler) HandleJobsForCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("id")
	ctx := r.Context()

	limit, err := intQuery(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	minSimilarity, err := floatQuery(r, "min_similarity")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	jobs, err := h.matching.FindJobsForCandidate(ctx, candidateID, limit, minSimilarity)
	if err != nil {
		observability.FromContext(ctx).Error("job search failed",
			observability.String("candidate_id", candidateID),
			observability.Error(err))
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, JobsResponse{CandidateID: candidateID, Jobs: jobs})
}

// HandleStats reports embedding coverage and cache counters.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.matching.GetMatchingStats(r.Context())
	if err != nil {
		observability.FromContext(r.Context()).Error("stats failed", observability.Error(err))
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HandleInvalidateJob drops cached results for the job in the path.
func (h *Handler) HandleInvalidateJob(w http.ResponseWriter, r *http.Request) {
	removed, err := h.matching.InvalidateJob(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, InvalidateResponse{Removed: removed})
}

// HandleInvalidateCandidate drops cached results referencing the candidate in the path.
func (h *Handler) HandleInvalidateCandidate(w http.ResponseWriter, r *http.Request) {
	removed, err := h.matching.InvalidateCandidate(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, InvalidateResponse{Removed: removed})
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// decodeOptional decodes body into dest; an empty body leaves dest untouched.
func decodeOptional(body io.Reader, dest any) error {
	err := json.NewDecoder(body).Decode(dest)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func intQuery(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return value, nil
}

func floatQuery(r *http.Request, key string) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 || value > 1 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return value, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Already written status, can't change it.
		return
	}
}
