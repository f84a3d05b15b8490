package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/avolkov/chainsage/internal/model"
	"gopkg.in/yaml.v3"
)

// DiskStore persists documents as one JSON file each under
// <dir>/documents/ and reads optional chain records from
// <dir>/chains/<context>.{yaml,yml,json}. A missing or partially
// initialized directory behaves like an empty store.
type DiskStore struct {
	dir string
}

// NewDiskStore creates a store rooted at dir
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

func (s *DiskStore) documentsDir() string {
	return filepath.Join(s.dir, "documents")
}

func (s *DiskStore) chainsDir() string {
	return filepath.Join(s.dir, "chains")
}

// AddDocument writes a document to the store
func (s *DiskStore) AddDocument(doc model.Document) error {
	if err := os.MkdirAll(s.documentsDir(), 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	path := filepath.Join(s.documentsDir(), doc.DocumentID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// loadDocuments reads every document file, skipping unreadable entries
func (s *DiskStore) loadDocuments() ([]model.Document, error) {
	entries, err := os.ReadDir(s.documentsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read store dir: %w", err)
	}

	var docs []model.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.documentsDir(), entry.Name()))
		if err != nil {
			continue
		}
		var doc model.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			// A corrupt document file must not take down the store
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Sentences returns all sentences for the selected contexts in stable
// order: ingestion time, document id, then in-document position
func (s *DiskStore) Sentences(_ context.Context, contexts []string) ([]model.SentenceRecord, error) {
	docs, err := s.loadDocuments()
	if err != nil {
		return nil, err
	}
	orderDocuments(docs)
	return sentencesOf(docs, contexts), nil
}

// Contexts returns the distinct contexts available in the store
func (s *DiskStore) Contexts(_ context.Context) ([]string, error) {
	docs, err := s.loadDocuments()
	if err != nil {
		return nil, err
	}
	return distinctContexts(docs), nil
}

// ChainRecords reads pre-built chain records for the selected contexts.
// Each context may have one file of records; YAML and JSON are accepted.
// Missing files mean no records, and a malformed file is skipped rather
// than failing the run.
func (s *DiskStore) ChainRecords(_ context.Context, contexts []string) (map[string][]model.ChainRecord, error) {
	out := make(map[string][]model.ChainRecord)

	for _, name := range contexts {
		for _, ext := range []string{".yaml", ".yml", ".json"} {
			path := filepath.Join(s.chainsDir(), name+ext)
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			records, err := decodeChainRecords(data, ext)
			if err != nil {
				continue
			}
			out[name] = append(out[name], records...)
		}
	}
	return out, nil
}

// decodeChainRecords parses a list of arbitrary mappings
func decodeChainRecords(data []byte, ext string) ([]model.ChainRecord, error) {
	var raw []map[string]interface{}
	if ext == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse chain records: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse chain records: %w", err)
		}
	}

	records := make([]model.ChainRecord, 0, len(raw))
	for _, m := range raw {
		records = append(records, model.ChainRecord(m))
	}
	return records, nil
}
