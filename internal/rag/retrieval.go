package rag

import (
	"strings"

	"github.com/Yates-Labs/historian/internal/history"
)

// Retriever finds the historical record a question refers to.
type Retriever struct {
	similarity Similarity
	threshold  float64
}

// NewRetriever creates a Retriever using the given similarity. A nil
// similarity selects SequenceRatio.
func NewRetriever(similarity Similarity) *Retriever {
	if similarity == nil {
		similarity = SequenceRatio{}
	}
	return &Retriever{
		similarity: similarity,
		threshold:  Threshold,
	}
}

// Retrieve returns the record tied to the first corpus key whose similarity
// to the lowercased query reaches Threshold. Keys are visited in corpus
// order (see BuildCorpus), so an earlier key wins even when a later one
// would score higher. The boolean is false when nothing matches.
// A query equal to an event name returns that record only if no earlier key
// also reaches Threshold.
func (r *Retriever) Retrieve(query string, store *history.Store) (history.Record, bool) {
	if store == nil || store.Empty() {
		return history.Record{}, false
	}

	entry, ok := r.firstMatch(strings.ToLower(query), BuildCorpus(store))
	if !ok {
		return history.Record{}, false
	}
	return entry.Record, true
}

// Explain is Retrieve, also returning the matching corpus entry and its score.
func (r *Retriever) Explain(query string, store *history.Store) (CorpusEntry, float64, bool) {
	if store == nil || store.Empty() {
		return CorpusEntry{}, 0, false
	}
	q := strings.ToLower(query)
	entry, ok := r.firstMatch(q, BuildCorpus(store))
	if !ok {
		return CorpusEntry{}, 0, false
	}
	return entry, r.similarity.Score(entry.Key, q), true
}

func (r *Retriever) firstMatch(query string, corpus []CorpusEntry) (CorpusEntry, bool) {
	for _, entry := range corpus {
		if entry.Key == "" {
			continue
		}
		if r.similarity.Score(entry.Key, query) >= r.threshold {
			return entry, true
		}
	}
	return CorpusEntry{}, false
}
