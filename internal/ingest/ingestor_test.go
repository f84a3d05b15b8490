package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/avolkov/chainsage/internal/cache"
	"github.com/avolkov/chainsage/internal/model"
)

type memWriter struct {
	docs []model.Document
}

func (w *memWriter) AddDocument(doc model.Document) error {
	w.docs = append(w.docs, doc)
	return nil
}

func TestIsURL(t *testing.T) {
	cases := map[string]bool{
		"https://example.com/report.html": true,
		"http://example.com":              true,
		"/var/log/incident.md":            false,
		"notes.txt":                       false,
		"ftp://example.com/file":          false,
	}
	for source, want := range cases {
		if got := IsURL(source); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", source, got, want)
		}
	}
}

func TestIngestLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "incident.md")
	content := "# Incident\n\nThe database crashed because of disk pressure. Engineers restarted the affected service."
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	w := &memWriter{}
	in := NewIngestor(w, nil)

	doc, err := in.Ingest(context.Background(), "payments", path)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if doc.Context != "payments" || doc.Filename != "incident.md" || doc.DocType != "markdown" {
		t.Errorf("document fields: %+v", doc)
	}
	if len(doc.Sentences) != 2 {
		t.Errorf("sentences = %v", doc.Sentences)
	}
	if doc.DocumentID == "" || doc.ContentHash == "" {
		t.Error("identity fields must be populated")
	}
	if len(w.docs) != 1 {
		t.Errorf("expected 1 stored document, got %d", len(w.docs))
	}
}

func TestIngestURLWithoutFetcher(t *testing.T) {
	in := NewIngestor(&memWriter{}, nil)
	if _, err := in.Ingest(context.Background(), "payments", "https://example.com/report"); err == nil {
		t.Fatal("expected error when fetcher is not configured")
	}
}

func TestIngestRemoteDocument(t *testing.T) {
	body := "<html><body><p>The deploy failed because a migration was skipped. We rolled back to the previous release.</p></body></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	fetcher := NewFetcher(5*time.Second, "Chainsage-test", 1<<20, nil, nil, 0)
	w := &memWriter{}
	in := NewIngestor(w, fetcher)

	doc, err := in.Ingest(context.Background(), "releases", srv.URL+"/postmortem")
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if doc.DocType != "html" {
		t.Errorf("doc type = %q", doc.DocType)
	}
	if len(doc.Sentences) != 2 {
		t.Errorf("sentences = %v", doc.Sentences)
	}
}

func TestFetcherUsesCache(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte("cached body for the fetch cache test."))
	}))
	defer srv.Close()

	fetcher := NewFetcher(5*time.Second, "Chainsage-test", 1<<20, nil, cache.NewMemory(time.Minute, 5*time.Minute), time.Minute)

	for i := 0; i < 2; i++ {
		result, err := fetcher.Fetch(context.Background(), srv.URL+"/doc")
		if err != nil {
			t.Fatalf("Fetch %d: %v", i, err)
		}
		if !strings.Contains(string(result.Body), "cached body") {
			t.Errorf("unexpected body: %q", result.Body)
		}
	}
	if hits != 1 {
		t.Errorf("expected 1 origin hit, got %d", hits)
	}
}

func TestFetcherLimitsBodySize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 4096)))
	}))
	defer srv.Close()

	fetcher := NewFetcher(5*time.Second, "Chainsage-test", 100, nil, nil, 0)
	result, err := fetcher.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(result.Body) != 100 {
		t.Errorf("body length = %d, want 100", len(result.Body))
	}
}

func TestFetcherRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	fetcher := NewFetcher(5*time.Second, "Chainsage-test", 1<<20, nil, nil, 0)
	if _, err := fetcher.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestRobotsCheckerDisallow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	checker := NewRobotsChecker("Chainsage-test", 5*time.Second)

	allowed, _, err := checker.CanFetch(context.Background(), srv.URL+"/private/report")
	if err != nil {
		t.Fatalf("CanFetch: %v", err)
	}
	if allowed {
		t.Error("expected /private/ to be disallowed")
	}

	allowed, _, err = checker.CanFetch(context.Background(), srv.URL+"/public/report")
	if err != nil {
		t.Fatalf("CanFetch: %v", err)
	}
	if !allowed {
		t.Error("expected /public/ to be allowed")
	}
}
