package cli

import (
	"context"
	"fmt"

	"github.com/avolkov/chainsage/internal/analytics"
	"github.com/avolkov/chainsage/internal/store"
	"github.com/spf13/cobra"
)

var (
	statsDataDir string
	statsTop     int
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats [context]...",
	Short: "Show descriptive analytics for stored contexts",
	Long: `Stats surfaces operational patterns and documentation health from the
stored sentences: frequent terms, issue and fix signal density, and a
simple vocabulary-variety maturity score.

These numbers are descriptive only; none of them feed the decision
scoring.

Example:
  chainsage stats
  chainsage stats payments --top 10`,
	Args: cobra.ArbitraryArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsDataDir, "data", "", "document store directory (default: config data.dir)")
	statsCmd.Flags().IntVar(&statsTop, "top", 20, "number of top terms to show")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg := loadConfig()
	if statsDataDir != "" {
		cfg.Data.Dir = statsDataDir
	}

	st := store.NewDiskStore(cfg.Data.Dir)

	contexts := args
	if len(contexts) == 0 {
		all, err := st.Contexts(ctx)
		if err != nil {
			return fmt.Errorf("list contexts: %w", err)
		}
		contexts = all
	}
	if len(contexts) == 0 {
		fmt.Println("No contexts stored. Run 'chainsage ingest' first.")
		return nil
	}

	sentences, err := st.Sentences(ctx, contexts)
	if err != nil {
		return fmt.Errorf("load sentences: %w", err)
	}
	if len(sentences) == 0 {
		fmt.Println("No sentences found for the selected contexts.")
		return nil
	}

	fmt.Printf("Contexts analyzed: %d\n", len(contexts))
	fmt.Printf("Total sentences:   %d\n\n", len(sentences))

	issues, total := analytics.IssueDensity(sentences)
	fixes, _ := analytics.FixDensity(sentences)
	fmt.Printf("Issue signals:     %d/%d sentences\n", issues, total)
	fmt.Printf("Fix signals:       %d/%d sentences\n", fixes, total)
	fmt.Printf("Maturity (variety): %.3f\n\n", analytics.ContextMaturity(sentences))

	fmt.Printf("Top %d terms:\n", statsTop)
	for _, tc := range analytics.TopTerms(sentences, statsTop) {
		fmt.Printf("  %-24s %d\n", tc.Term, tc.Count)
	}

	pairs := analytics.IssueFixPairs(sentences)
	if len(pairs) > 0 {
		fmt.Printf("\nIssue/fix statements (%d):\n", len(pairs))
		for i, p := range pairs {
			if i >= 5 {
				fmt.Printf("  ... and %d more\n", len(pairs)-5)
				break
			}
			fmt.Printf("  - %s\n", p)
		}
	}

	fmt.Println("\nSentence count per context:")
	for _, tc := range analytics.KnowledgeDensity(sentences) {
		fmt.Printf("  %-24s %d\n", tc.Term, tc.Count)
	}

	return nil
}
