package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/avolkov/chainsage/internal/model"
)

// Ingestor turns one source (local path or URL) into a stored document
type Ingestor interface {
	Ingest(ctx context.Context, contextName, source string) (*model.Document, error)
}

// URLChecker reports whether a source is remote; remote sources go
// through the rate limiter
type URLChecker func(source string) bool

// IngestJob ingests one source into a context
type IngestJob struct {
	Context  string
	Source   string
	Ingestor Ingestor
	Limiter  *Limiter
	IsRemote URLChecker
}

// Execute runs the ingestion, waiting for rate budget on remote sources
func (j *IngestJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil && j.IsRemote != nil && j.IsRemote(j.Source) {
		if err := j.Limiter.Wait(ctx, j.Source); err != nil {
			return &IngestResult{Source: j.Source, Error: fmt.Errorf("rate limit: %w", err)}
		}
	}

	doc, err := j.Ingestor.Ingest(ctx, j.Context, j.Source)
	if err != nil {
		return &IngestResult{Source: j.Source, Error: err}
	}
	return &IngestResult{Source: j.Source, Document: doc}
}

// IngestResult is the outcome of one ingestion job
type IngestResult struct {
	Source   string
	Document *model.Document
	Error    error
}

// GetError returns the job error, nil on success
func (r *IngestResult) GetError() error {
	return r.Error
}

// BatchProcessor ingests many sources concurrently into one context
type BatchProcessor struct {
	ingestor    Ingestor
	limiter     *Limiter
	isRemote    URLChecker
	concurrency int
}

// NewBatchProcessor creates a batch processor. limiter may be nil when
// all sources are local.
func NewBatchProcessor(ingestor Ingestor, limiter *Limiter, isRemote URLChecker, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		ingestor:    ingestor,
		limiter:     limiter,
		isRemote:    isRemote,
		concurrency: concurrency,
	}
}

// ProcessSources ingests the sources concurrently and returns one result
// per source. Per-source failures land in the results; they never abort
// the batch.
func (b *BatchProcessor) ProcessSources(ctx context.Context, contextName string, sources []string) []*IngestResult {
	if len(sources) == 0 {
		return []*IngestResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, source := range sources {
		pool.Submit(&IngestJob{
			Context:  contextName,
			Source:   source,
			Ingestor: b.ingestor,
			Limiter:  b.limiter,
			IsRemote: b.isRemote,
		})
	}

	results := pool.Wait()

	ingestResults := make([]*IngestResult, len(results))
	for i, result := range results {
		ingestResults[i] = result.(*IngestResult)
	}
	return ingestResults
}

// ProcessFile reads a source manifest (one source per line) and ingests
// every entry
func (b *BatchProcessor) ProcessFile(ctx context.Context, contextName, manifestPath string) ([]*IngestResult, error) {
	sources, err := ReadSourcesFromFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}
	return b.ProcessSources(ctx, contextName, sources), nil
}

// ReadSourcesFromFile reads sources from a manifest file, one per line,
// skipping blanks and # comments and deduplicating
func ReadSourcesFromFile(manifestPath string) ([]string, error) {
	file, err := os.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}
