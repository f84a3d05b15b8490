// Package store holds ingested documents and optional pre-built chain
// records and serves them back as ordered sentence streams. It is the only
// persistence in the system: derived pipeline results are never stored.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/avolkov/chainsage/internal/model"
)

// DocumentID derives a stable identifier from a document's context,
// filename and raw content
func DocumentID(context, filename string, content []byte) string {
	h := sha256.New()
	h.Write([]byte(context))
	h.Write([]byte{0})
	h.Write([]byte(filename))
	h.Write([]byte{0})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))[:12]
}

// ContentHash returns the full content hash used for duplicate detection
func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// orderDocuments sorts documents into the stable sentence-stream order:
// ingestion time, then document id as a tie-break
func orderDocuments(docs []model.Document) {
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].IngestedAt.Equal(docs[j].IngestedAt) {
			return docs[i].IngestedAt.Before(docs[j].IngestedAt)
		}
		return docs[i].DocumentID < docs[j].DocumentID
	})
}

// sentencesOf flattens documents (already ordered) into sentence records
// for the selected contexts
func sentencesOf(docs []model.Document, contexts []string) []model.SentenceRecord {
	selected := make(map[string]bool, len(contexts))
	for _, c := range contexts {
		selected[c] = true
	}

	var out []model.SentenceRecord
	for _, doc := range docs {
		if !selected[doc.Context] {
			continue
		}
		for _, s := range doc.Sentences {
			out = append(out, model.SentenceRecord{Context: doc.Context, Text: s})
		}
	}
	return out
}

// distinctContexts returns the sorted set of contexts present in docs
func distinctContexts(docs []model.Document) []string {
	seen := make(map[string]bool)
	for _, doc := range docs {
		if doc.Context != "" {
			seen[doc.Context] = true
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
