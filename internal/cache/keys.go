// Package cache holds the key layout shared by the match cache backends.
package cache

import "github.com/davidbz/matchwise/internal/domain"

// PairKey identifies one (job, candidate) result.
func PairKey(jobID, candidateID string) string {
	return "pair:" + jobID + ":" + candidateID
}

// SetKey identifies a job result set computed with the given options hash.
func SetKey(jobID, optionsHash string) string {
	return "set:" + jobID + ":" + optionsHash
}

// JobRef indexes every entry that mentions a job.
func JobRef(jobID string) string {
	return "job:" + jobID
}

// CandidateRef indexes every entry that mentions a candidate.
func CandidateRef(candidateID string) string {
	return "candidate:" + candidateID
}

// PairRefs returns the references of a pair entry.
func PairRefs(result *domain.MatchResult) []string {
	return []string{JobRef(result.JobID), CandidateRef(result.CandidateID)}
}

// SetRefs returns the references of a set entry: the job and every candidate in it.
func SetRefs(jobID string, results []*domain.MatchResult) []string {
	refs := make([]string, 0, len(results)+1)
	refs = append(refs, JobRef(jobID))
	seen := make(map[string]struct{}, len(results))
	for _, result := range results {
		if _, ok := seen[result.CandidateID]; ok {
			continue
		}
		seen[result.CandidateID] = struct{}{}
		refs = append(refs, CandidateRef(result.CandidateID))
	}
	return refs
}

// CloneResults copies results so cached entries never alias caller memory.
func CloneResults(results []*domain.MatchResult) []*domain.MatchResult {
	cloned := make([]*domain.MatchResult, 0, len(results))
	for _, result := range results {
		if result == nil {
			continue
		}
		c := *result
		cloned = append(cloned, &c)
	}
	return cloned
}
