package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/davidbz/matchwise/internal/domain"
)

// Store implements the job and candidate repositories plus embedding persistence.
// Entities and embeddings live under separate keys so an embedding can be replaced
// without rewriting its owner.
type Store struct {
	backend *Backend
	now     func() time.Time
}

var (
	_ domain.JobRepository       = (*Store)(nil)
	_ domain.CandidateRepository = (*Store)(nil)
	_ domain.EmbeddingStore      = (*Store)(nil)
)

// NewStore creates a store over an open backend.
func NewStore(backend *Backend) *Store {
	return &Store{backend: backend, now: time.Now}
}

// SaveJob inserts or replaces a job. An embedding carried by the job is stored too.
func (s *Store) SaveJob(_ context.Context, job *domain.Job) error {
	if job == nil || job.ID == "" {
		return errors.New("job id cannot be empty")
	}

	record := *job
	embedding := record.Embedding
	record.Embedding = nil

	return s.backend.update(func(txn *badger.Txn) error {
		if err := writeJSON(txn, jobKey(job.ID), &record); err != nil {
			return err
		}
		return s.writeEmbedding(txn, embedding, domain.KindJob, job.ID)
	})
}

// SaveCandidate inserts or replaces a candidate. An embedding carried by the
// candidate is stored too.
func (s *Store) SaveCandidate(_ context.Context, candidate *domain.Candidate) error {
	if candidate == nil || candidate.ID == "" {
		return errors.New("candidate id cannot be empty")
	}

	record := *candidate
	embedding := record.Embedding
	record.Embedding = nil

	return s.backend.update(func(txn *badger.Txn) error {
		if err := writeJSON(txn, candidateKey(candidate.ID), &record); err != nil {
			return err
		}
		return s.writeEmbedding(txn, embedding, domain.KindCandidate, candidate.ID)
	})
}

// SaveEmbedding stores an embedding for an existing job or candidate.
func (s *Store) SaveEmbedding(_ context.Context, embedding *domain.EmbeddingVector) error {
	if embedding == nil || embedding.OwnerID == "" {
		return errors.New("embedding owner cannot be empty")
	}
	if embedding.Dimension() == 0 {
		return errors.New("embedding cannot be empty")
	}

	ownerKey := candidateKey(embedding.OwnerID)
	if embedding.OwnerKind == domain.KindJob {
		ownerKey = jobKey(embedding.OwnerID)
	}

	return s.backend.update(func(txn *badger.Txn) error {
		if _, err := txn.Get(ownerKey); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.NotFoundError(embedding.OwnerKind, embedding.OwnerID)
			}
			return err
		}
		return s.writeEmbedding(txn, embedding, embedding.OwnerKind, embedding.OwnerID)
	})
}

func (s *Store) writeEmbedding(txn *badger.Txn, embedding *domain.EmbeddingVector, kind domain.EntityKind, ownerID string) error {
	if embedding.Dimension() == 0 {
		return nil
	}

	stored := *embedding
	stored.OwnerID = ownerID
	stored.OwnerKind = kind
	if stored.GeneratedAt.IsZero() {
		stored.GeneratedAt = s.now().UTC()
	}
	return writeJSON(txn, embeddingKey(kind, ownerID), &stored)
}

// GetJob returns a job with its embedding, if any.
func (s *Store) GetJob(_ context.Context, id string) (*domain.Job, error) {
	var job *domain.Job
	err := s.backend.view(func(txn *badger.Txn) error {
		var record domain.Job
		found, err := readJSON(txn, jobKey(id), &record)
		if err != nil {
			return err
		}
		if !found {
			return domain.NotFoundError(domain.KindJob, id)
		}
		if record.Embedding, err = readEmbedding(txn, domain.KindJob, id); err != nil {
			return err
		}
		job = &record
		return nil
	})
	return job, err
}

// GetCandidate returns a candidate with its embedding, if any.
func (s *Store) GetCandidate(_ context.Context, id string) (*domain.Candidate, error) {
	var candidate *domain.Candidate
	err := s.backend.view(func(txn *badger.Txn) error {
		var record domain.Candidate
		found, err := readJSON(txn, candidateKey(id), &record)
		if err != nil {
			return err
		}
		if !found {
			return domain.NotFoundError(domain.KindCandidate, id)
		}
		if record.Embedding, err = readEmbedding(txn, domain.KindCandidate, id); err != nil {
			return err
		}
		candidate = &record
		return nil
	})
	return candidate, err
}

// QueryActiveJobs returns active, non-deleted jobs with an embedding in key order.
func (s *Store) QueryActiveJobs(_ context.Context, filter domain.QueryFilter) ([]*domain.Job, error) {
	jobs := []*domain.Job{}
	err := s.backend.view(func(txn *badger.Txn) error {
		return scanPrefix(txn, jobPrefix, func(val []byte) (bool, error) {
			var job domain.Job
			if err := json.Unmarshal(val, &job); err != nil {
				return false, fmt.Errorf("failed to decode job: %w", err)
			}
			if job.Deleted || job.Status != domain.JobStatusActive ||
				!matchesLocation(job.Location, filter.Location) ||
				slices.Contains(filter.ExcludeIDs, job.ID) {
				return true, nil
			}

			embedding, err := readEmbedding(txn, domain.KindJob, job.ID)
			if err != nil {
				return false, err
			}
			if embedding.Dimension() == 0 {
				return true, nil
			}
			job.Embedding = embedding
			jobs = append(jobs, &job)

			return filter.Limit <= 0 || len(jobs) < filter.Limit, nil
		})
	})
	return jobs, err
}

// QueryActiveCandidates returns active, non-deleted candidates of the filter role
// with an embedding in key order.
func (s *Store) QueryActiveCandidates(_ context.Context, filter domain.QueryFilter) ([]*domain.Candidate, error) {
	role := filter.Role
	if role == "" {
		role = domain.RoleCandidate
	}

	candidates := []*domain.Candidate{}
	err := s.backend.view(func(txn *badger.Txn) error {
		return scanPrefix(txn, candidatePrefix, func(val []byte) (bool, error) {
			var candidate domain.Candidate
			if err := json.Unmarshal(val, &candidate); err != nil {
				return false, fmt.Errorf("failed to decode candidate: %w", err)
			}
			if candidate.Deleted || !candidate.Active || candidate.Role != role ||
				!matchesLocation(candidate.Location, filter.Location) ||
				slices.Contains(filter.ExcludeIDs, candidate.ID) {
				return true, nil
			}

			embedding, err := readEmbedding(txn, domain.KindCandidate, candidate.ID)
			if err != nil {
				return false, err
			}
			if embedding.Dimension() == 0 {
				return true, nil
			}
			candidate.Embedding = embedding
			candidates = append(candidates, &candidate)

			return filter.Limit <= 0 || len(candidates) < filter.Limit, nil
		})
	})
	return candidates, err
}

// CountJobs reports how many jobs exist and how many carry an embedding.
func (s *Store) CountJobs(_ context.Context) (domain.EntityCounts, error) {
	return s.count(jobPrefix, jobEmbeddingPrefix)
}

// CountCandidates reports how many candidates exist and how many carry an embedding.
func (s *Store) CountCandidates(_ context.Context) (domain.EntityCounts, error) {
	return s.count(candidatePrefix, candidateEmbeddingPrefix)
}

func (s *Store) count(entityPrefix, embeddingPrefix string) (domain.EntityCounts, error) {
	var counts domain.EntityCounts
	err := s.backend.view(func(txn *badger.Txn) error {
		counts.Total = countKeys(txn, entityPrefix)
		counts.WithEmbedding = countKeys(txn, embeddingPrefix)
		return nil
	})
	return counts, err
}

// JobsMissingEmbeddings returns non-deleted jobs without an embedding, up to limit
// (0 means no limit).
func (s *Store) JobsMissingEmbeddings(_ context.Context, limit int) ([]*domain.Job, error) {
	jobs := []*domain.Job{}
	err := s.backend.view(func(txn *badger.Txn) error {
		return scanPrefix(txn, jobPrefix, func(val []byte) (bool, error) {
			var job domain.Job
			if err := json.Unmarshal(val, &job); err != nil {
				return false, fmt.Errorf("failed to decode job: %w", err)
			}
			if job.Deleted || hasKey(txn, embeddingKey(domain.KindJob, job.ID)) {
				return true, nil
			}
			jobs = append(jobs, &job)
			return limit <= 0 || len(jobs) < limit, nil
		})
	})
	return jobs, err
}

// CandidatesMissingEmbeddings returns non-deleted candidates without an embedding,
// up to limit (0 means no limit).
func (s *Store) CandidatesMissingEmbeddings(_ context.Context, limit int) ([]*domain.Candidate, error) {
	candidates := []*domain.Candidate{}
	err := s.backend.view(func(txn *badger.Txn) error {
		return scanPrefix(txn, candidatePrefix, func(val []byte) (bool, error) {
			var candidate domain.Candidate
			if err := json.Unmarshal(val, &candidate); err != nil {
				return false, fmt.Errorf("failed to decode candidate: %w", err)
			}
			if candidate.Deleted || hasKey(txn, embeddingKey(domain.KindCandidate, candidate.ID)) {
				return true, nil
			}
			candidates = append(candidates, &candidate)
			return limit <= 0 || len(candidates) < limit, nil
		})
	})
	return candidates, err
}

func matchesLocation(value, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(strings.TrimSpace(filter)))
}

func readEmbedding(txn *badger.Txn, kind domain.EntityKind, ownerID string) (*domain.EmbeddingVector, error) {
	var embedding domain.EmbeddingVector
	found, err := readJSON(txn, embeddingKey(kind, ownerID), &embedding)
	if err != nil || !found {
		return nil, err
	}
	return &embedding, nil
}

func writeJSON(txn *badger.Txn, key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return txn.Set(key, data)
}

func readJSON(txn *badger.Txn, key []byte, dest any) (bool, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, dest)
	})
	if err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func hasKey(txn *badger.Txn, key []byte) bool {
	_, err := txn.Get(key)
	return err == nil
}

// scanPrefix calls fn with each value under prefix in key order until fn returns false.
func scanPrefix(txn *badger.Txn, prefix string, fn func(val []byte) (bool, error)) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	iter := txn.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		var keepGoing bool
		err := iter.Item().Value(func(val []byte) error {
			var fnErr error
			keepGoing, fnErr = fn(val)
			return fnErr
		})
		if err != nil {
			return err
		}
		if !keepGoing {
			return nil
		}
	}
	return nil
}

func countKeys(txn *badger.Txn, prefix string) int {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(prefix)
	iter := txn.NewIterator(opts)
	defer iter.Close()

	count := 0
	for iter.Rewind(); iter.Valid(); iter.Next() {
		count++
	}
	return count
}
