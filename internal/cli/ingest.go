package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/avolkov/chainsage/internal/cache"
	"github.com/avolkov/chainsage/internal/ingest"
	"github.com/avolkov/chainsage/internal/store"
	"github.com/avolkov/chainsage/internal/worker"
	"github.com/spf13/cobra"
)

var (
	ingestContext  string
	ingestDataDir  string
	ingestManifest string
	ingestWorkers  int
	ingestTimeout  time.Duration
	noCache        bool
	noRobots       bool
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest [source]...",
	Short: "Ingest documents into a context",
	Long: `Ingest converts local files and remote pages into stored sentence
streams. Sources may be file paths or http(s) URLs; remote fetches
respect robots.txt and are rate limited per domain.

Example:
  chainsage ingest --context payments postmortem.md runbook.html
  chainsage ingest --context payments https://wiki.internal/incident-42
  chainsage ingest --context payments --manifest sources.txt --workers 8`,
	Args: cobra.ArbitraryArgs,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestContext, "context", "", "context to ingest into (required)")
	_ = ingestCmd.MarkFlagRequired("context")
	ingestCmd.Flags().StringVar(&ingestDataDir, "data", "", "document store directory (default: config data.dir)")
	ingestCmd.Flags().StringVar(&ingestManifest, "manifest", "", "file of sources, one per line")
	ingestCmd.Flags().IntVar(&ingestWorkers, "workers", 0, "concurrent workers (default: config ingest.workers)")
	ingestCmd.Flags().DurationVar(&ingestTimeout, "timeout", 10*time.Minute, "total ingestion timeout")
	ingestCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the fetch cache (force fresh fetch)")
	ingestCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	cfg := loadConfig()
	if ingestDataDir != "" {
		cfg.Data.Dir = ingestDataDir
	}
	if ingestWorkers > 0 {
		cfg.Ingest.Workers = ingestWorkers
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noRobots {
		cfg.Ingest.RespectRobots = false
	}

	sources := args
	if ingestManifest != "" {
		fromFile, err := worker.ReadSourcesFromFile(ingestManifest)
		if err != nil {
			return err
		}
		sources = append(sources, fromFile...)
	}
	if len(sources) == 0 {
		return fmt.Errorf("no sources given: pass files/URLs or --manifest")
	}

	var fetchCache cache.Cache
	if cfg.Cache.Enabled {
		fetchCache = cache.NewLayered(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	var robots *ingest.RobotsChecker
	if cfg.Ingest.RespectRobots {
		robots = ingest.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}

	fetcher := ingest.NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes, robots, fetchCache, cfg.Cache.DiskTTL)
	ingestor := ingest.NewIngestor(store.NewDiskStore(cfg.Data.Dir), fetcher)
	limiter := worker.NewLimiter(cfg.Ingest.RequestsPerSecond, cfg.Ingest.Burst)

	if verbose {
		fmt.Fprintf(os.Stderr, "Ingesting %d source(s) into context %q with %d worker(s)\n\n",
			len(sources), ingestContext, cfg.Ingest.Workers)
	}

	batch := worker.NewBatchProcessor(ingestor, limiter, ingest.IsURL, cfg.Ingest.Workers)
	results := batch.ProcessSources(ctx, ingestContext, sources)

	var ok, failed int
	for _, r := range results {
		if r.GetError() != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Source, r.Error)
			continue
		}
		ok++
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s: %d sentence(s) as %s\n",
				r.Source, len(r.Document.Sentences), r.Document.DocumentID)
		}
	}

	fmt.Printf("Ingested %d/%d source(s) into %q\n", ok, len(results), ingestContext)
	if failed > 0 {
		return fmt.Errorf("%d source(s) failed", failed)
	}
	return nil
}
