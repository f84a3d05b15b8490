// Package cli wires the chainsage commands: ingest documents, run the
// decision pipeline, inspect contexts and analytics.
package cli

import (
	"fmt"
	"os"

	"github.com/avolkov/chainsage/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "chainsage",
	Short: "Chainsage - Decision intelligence from operational documents",
	Long: `Chainsage turns operational documents (postmortems, runbooks, incident
notes) into explainable decision recommendations.

It classifies sentences into decision roles, links them into
cause/action/outcome chains, and scores recurring actions across
contexts with a fixed, transparent formula. Same documents in, same
recommendation out - there is no inference step in the scoring path.

Chainsage reports what your documentation supports, not what is true.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Chainsage.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("chainsage v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.chainsage/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.chainsage")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CHAINSAGE_*
	viper.SetEnvPrefix("CHAINSAGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: defaults overlaid with
// the config file and CHAINSAGE_* environment variables
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid configuration, using defaults: %v\n", err)
		cfg = model.DefaultConfig()
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose
	return cfg
}
