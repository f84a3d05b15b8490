package cli

import (
	"context"
	"fmt"

	"github.com/avolkov/chainsage/internal/store"
	"github.com/spf13/cobra"
)

// contextsCmd represents the contexts command
var contextsCmd = &cobra.Command{
	Use:   "contexts",
	Short: "List stored contexts",
	Long:  `Display every context present in the document store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		st := store.NewDiskStore(cfg.Data.Dir)
		contexts, err := st.Contexts(context.Background())
		if err != nil {
			return fmt.Errorf("list contexts: %w", err)
		}

		if len(contexts) == 0 {
			fmt.Println("No contexts stored. Run 'chainsage ingest' first.")
			return nil
		}
		for _, c := range contexts {
			fmt.Println(c)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(contextsCmd)
}
