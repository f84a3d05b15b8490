package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/avolkov/chainsage/internal/model"
)

type fakeIngestor struct {
	mu     sync.Mutex
	seen   []string
	failOn string
}

func (f *fakeIngestor) Ingest(_ context.Context, contextName, source string) (*model.Document, error) {
	f.mu.Lock()
	f.seen = append(f.seen, source)
	f.mu.Unlock()

	if source == f.failOn {
		return nil, errors.New("unreadable source")
	}
	return &model.Document{Context: contextName, Filename: source}, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func TestBatchProcessSources(t *testing.T) {
	ingestor := &fakeIngestor{}
	batch := NewBatchProcessor(ingestor, nil, isRemote, 2)

	sources := []string{"a.md", "b.md", "c.md"}
	results := batch.ProcessSources(context.Background(), "payments", sources)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for _, r := range results {
		if r.GetError() != nil {
			t.Errorf("unexpected error for %s: %v", r.Source, r.Error)
		}
		if r.Document == nil || r.Document.Context != "payments" {
			t.Errorf("document missing or wrong context: %+v", r.Document)
		}
	}
}

func TestBatchIsolatesFailures(t *testing.T) {
	ingestor := &fakeIngestor{failOn: "bad.md"}
	batch := NewBatchProcessor(ingestor, nil, isRemote, 2)

	results := batch.ProcessSources(context.Background(), "payments", []string{"good.md", "bad.md"})

	var ok, failed int
	for _, r := range results {
		if r.GetError() != nil {
			failed++
		} else {
			ok++
		}
	}
	if ok != 1 || failed != 1 {
		t.Errorf("ok=%d failed=%d, want 1 and 1", ok, failed)
	}
}

func TestBatchEmptySources(t *testing.T) {
	batch := NewBatchProcessor(&fakeIngestor{}, nil, isRemote, 2)
	results := batch.ProcessSources(context.Background(), "payments", nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestBatchRateLimitsRemoteSources(t *testing.T) {
	ingestor := &fakeIngestor{}
	limiter := NewLimiter(100, 10)
	batch := NewBatchProcessor(ingestor, limiter, isRemote, 2)

	results := batch.ProcessSources(context.Background(), "payments", []string{
		"https://example.com/a.html",
		"local.md",
	})
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.GetError() != nil {
			t.Errorf("unexpected error for %s: %v", r.Source, r.Error)
		}
	}
}

func TestReadSourcesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.txt")
	content := "a.md\n\n# comment\nb.md\na.md\nhttps://example.com/c.html\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	sources, err := ReadSourcesFromFile(path)
	if err != nil {
		t.Fatalf("ReadSourcesFromFile: %v", err)
	}

	want := []string{"a.md", "b.md", "https://example.com/c.html"}
	if len(sources) != len(want) {
		t.Fatalf("sources = %v, want %v", sources, want)
	}
	for i := range want {
		if sources[i] != want[i] {
			t.Errorf("sources[%d] = %q, want %q", i, sources[i], want[i])
		}
	}
}

func TestReadSourcesMissingFile(t *testing.T) {
	if _, err := ReadSourcesFromFile("/nonexistent/sources.txt"); err == nil {
		t.Error("expected error for missing manifest")
	}
}
