package store

import (
	"context"

	"github.com/avolkov/chainsage/internal/model"
)

// MemoryStore keeps documents and chain records in memory. Used by tests
// and by one-shot runs that analyze documents without persisting them.
type MemoryStore struct {
	docs   []model.Document
	chains map[string][]model.ChainRecord
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{chains: make(map[string][]model.ChainRecord)}
}

// AddDocument appends a document to the store
func (s *MemoryStore) AddDocument(doc model.Document) error {
	s.docs = append(s.docs, doc)
	return nil
}

// AddChainRecords registers pre-built chain records for a context
func (s *MemoryStore) AddChainRecords(context string, records []model.ChainRecord) {
	s.chains[context] = append(s.chains[context], records...)
}

// Sentences returns all sentences for the selected contexts in stable order
func (s *MemoryStore) Sentences(_ context.Context, contexts []string) ([]model.SentenceRecord, error) {
	docs := make([]model.Document, len(s.docs))
	copy(docs, s.docs)
	orderDocuments(docs)
	return sentencesOf(docs, contexts), nil
}

// Contexts returns the distinct contexts present in the store
func (s *MemoryStore) Contexts(_ context.Context) ([]string, error) {
	return distinctContexts(s.docs), nil
}

// ChainRecords returns the registered chain records for the selected contexts
func (s *MemoryStore) ChainRecords(_ context.Context, contexts []string) (map[string][]model.ChainRecord, error) {
	out := make(map[string][]model.ChainRecord)
	for _, c := range contexts {
		if recs, ok := s.chains[c]; ok {
			out[c] = recs
		}
	}
	return out, nil
}
