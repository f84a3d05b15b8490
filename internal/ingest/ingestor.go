package ingest

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avolkov/chainsage/internal/model"
	"github.com/avolkov/chainsage/internal/store"
)

// DocumentWriter persists ingested documents
type DocumentWriter interface {
	AddDocument(doc model.Document) error
}

// Ingestor turns local files and remote URLs into stored documents
type Ingestor struct {
	writer  DocumentWriter
	fetcher *Fetcher // nil disables remote ingestion
	now     func() time.Time
}

// NewIngestor creates an ingestor writing to w. fetcher may be nil when
// only local files are ingested.
func NewIngestor(w DocumentWriter, fetcher *Fetcher) *Ingestor {
	return &Ingestor{writer: w, fetcher: fetcher, now: time.Now}
}

// IsURL reports whether the source names a remote document
func IsURL(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Ingest processes one source, local path or URL, into the given context
// and returns the stored document
func (in *Ingestor) Ingest(ctx context.Context, contextName, source string) (*model.Document, error) {
	if IsURL(source) {
		return in.ingestURL(ctx, contextName, source)
	}
	return in.ingestFile(contextName, source)
}

func (in *Ingestor) ingestFile(contextName, path string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return in.storeDocument(contextName, filepath.Base(path), data)
}

func (in *Ingestor) ingestURL(ctx context.Context, contextName, rawURL string) (*model.Document, error) {
	if in.fetcher == nil {
		return nil, fmt.Errorf("remote ingestion disabled: no fetcher configured")
	}
	result, err := in.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	return in.storeDocument(contextName, urlFilename(result.FinalURL, result.Meta.ContentType), result.Body)
}

func (in *Ingestor) storeDocument(contextName, filename string, data []byte) (*model.Document, error) {
	sentences, docType := Sentences(filename, data)

	doc := model.Document{
		DocumentID:  store.DocumentID(contextName, filename, data),
		Context:     contextName,
		Filename:    filename,
		DocType:     docType,
		IngestedAt:  in.now().UTC(),
		ContentHash: store.ContentHash(data),
		Sentences:   sentences,
	}
	if err := in.writer.AddDocument(doc); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	return &doc, nil
}

// urlFilename derives a usable filename from a fetched URL so extension
// based extraction still applies
func urlFilename(rawURL, contentType string) string {
	name := "remote"
	if u, err := url.Parse(rawURL); err == nil {
		if base := filepath.Base(u.Path); base != "." && base != "/" && base != "" {
			name = base
		}
	}
	if filepath.Ext(name) == "" {
		switch {
		case strings.Contains(contentType, "html"):
			name += ".html"
		case strings.Contains(contentType, "json"):
			name += ".json"
		case strings.Contains(contentType, "markdown"):
			name += ".md"
		}
	}
	return name
}
