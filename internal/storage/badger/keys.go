package badger

import "github.com/davidbz/matchwise/internal/domain"

// Key prefixes for different data types.
const (
	jobPrefix                = "job:"
	candidatePrefix          = "cand:"
	jobEmbeddingPrefix       = "emb:job:"
	candidateEmbeddingPrefix = "emb:cand:"
)

func jobKey(id string) []byte {
	return []byte(jobPrefix + id)
}

func candidateKey(id string) []byte {
	return []byte(candidatePrefix + id)
}

// embeddingKey returns the key of the embedding owned by the given entity.
func embeddingKey(kind domain.EntityKind, ownerID string) []byte {
	if kind == domain.KindJob {
		return []byte(jobEmbeddingPrefix + ownerID)
	}
	return []byte(candidateEmbeddingPrefix + ownerID)
}
