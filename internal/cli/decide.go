package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/avolkov/chainsage/internal/pipeline"
	"github.com/avolkov/chainsage/internal/store"
	"github.com/spf13/cobra"
)

var (
	decideDataDir  string
	decideAll      bool
	outJSON        string
	outMD          string
	decideTimeout  time.Duration
	noFooter       bool
	llmEnabled     bool
	llmModel       string
	decideProvider string
)

// decideCmd represents the decide command
var decideCmd = &cobra.Command{
	Use:   "decide [context]...",
	Short: "Run the decision pipeline over stored contexts",
	Long: `Decide analyzes the selected contexts to:
- Classify stored sentences into decision roles
- Link them into cause/action/outcome chains
- Compute coverage, decision debt, and chain completeness
- Score recurring actions and recommend the best-supported one

The recommendation is deterministic: identical stored documents always
produce identical output.

Example:
  chainsage decide payments
  chainsage decide payments search --json decision.json --md decision.md
  chainsage decide --all
  chainsage decide payments --llm --llm-model gpt-4o-mini`,
	Args: cobra.ArbitraryArgs,
	RunE: runDecide,
}

func init() {
	rootCmd.AddCommand(decideCmd)

	decideCmd.Flags().StringVar(&decideDataDir, "data", "", "document store directory (default: config data.dir)")
	decideCmd.Flags().BoolVar(&decideAll, "all", false, "analyze every stored context")
	decideCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	decideCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	decideCmd.Flags().DurationVar(&decideTimeout, "timeout", 2*time.Minute, "overall timeout")
	decideCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	decideCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate an LLM decision brief (never affects scoring)")
	decideCmd.Flags().StringVar(&decideProvider, "llm-provider", "openai", "LLM provider (openai)")
	decideCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runDecide(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), decideTimeout)
	defer cancel()

	cfg := loadConfig()
	if decideDataDir != "" {
		cfg.Data.Dir = decideDataDir
	}
	if cmd.Flags().Changed("no-footer") {
		cfg.Output.IncludeFooter = !noFooter
	}

	if llmEnabled {
		cfg.LLM.Provider = decideProvider
		cfg.LLM.Model = llmModel
		if decideProvider == "openai" && os.Getenv("OPENAI_API_KEY") == "" && cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	st := store.NewDiskStore(cfg.Data.Dir)

	contexts := args
	if len(contexts) == 0 {
		if !decideAll {
			return fmt.Errorf("select at least one context or pass --all")
		}
		all, err := st.Contexts(ctx)
		if err != nil {
			return fmt.Errorf("list contexts: %w", err)
		}
		contexts = all
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing %d context(s) from %s\n\n", len(contexts), cfg.Data.Dir)
	}

	p := pipeline.NewPipeline(cfg, st, st)
	result, err := p.Run(ctx, contexts)
	if err != nil {
		return fmt.Errorf("decide failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	renderer.RenderSummary(result)

	if outJSON != "" {
		if err := renderer.RenderJSON(result, outJSON); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ JSON report: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(result, outMD); err != nil {
			return fmt.Errorf("write Markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Markdown report: %s\n", outMD)
		}
	}

	return nil
}
