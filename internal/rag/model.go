// Package rag implements the retrieval stage of the explorer: mapping a
// free-text question to the single historical record it most plausibly
// refers to.
package rag

import (
	"strings"

	"github.com/Yates-Labs/historian/internal/history"
)

// Threshold is the minimum similarity a corpus key must reach to match.
const Threshold = 0.5

// descriptionKeyLength is how many characters of a description are indexed.
const descriptionKeyLength = 50

// KeyKind identifies which record field a corpus key was derived from.
type KeyKind string

const (
	KeyEvent       KeyKind = "event"
	KeyDescription KeyKind = "description"
)

// CorpusEntry pairs a lowercased search key with the record it came from.
type CorpusEntry struct {
	Key    string
	Kind   KeyKind
	Record history.Record
}

// BuildCorpus derives the search corpus for a store: every event-name key in
// store order, followed by every truncated-description key in store order.
//
// The corpus is cheap to build for datasets of a few hundred records and is
// rebuilt on every query; it would need an index to scale further.
func BuildCorpus(store *history.Store) []CorpusEntry {
	records := store.Records()
	corpus := make([]CorpusEntry, 0, 2*len(records))

	for _, r := range records {
		corpus = append(corpus, CorpusEntry{
			Key:    strings.ToLower(r.Event),
			Kind:   KeyEvent,
			Record: r,
		})
	}
	for _, r := range records {
		corpus = append(corpus, CorpusEntry{
			Key:    truncate(strings.ToLower(r.Description), descriptionKeyLength),
			Kind:   KeyDescription,
			Record: r,
		})
	}

	return corpus
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
