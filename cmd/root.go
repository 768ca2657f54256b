// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/gsoc-explorer/internal/config"
	"github.com/naka-gawa/gsoc-explorer/internal/gateway"
	"github.com/naka-gawa/gsoc-explorer/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "gsoc-explorer",
	Short: "Search GitHub repositories and highlight Google Summer of Code organizations.",
	Long: `gsoc-explorer searches GitHub repositories by language, topic and popularity.
With --gsoc it aggregates the repositories of a fixed list of Google Summer of Code
organizations, optionally ordered by pull request or commit counts.

The GitHub token is read from GITHUB_TOKEN (or a .env file in the working directory).`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}

// newLogger discards all logs unless --verbose is set, in which case they go to stderr.
func newLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.InheritedFlags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// newAggregator wires configuration, gateway and use case. Without a token the
// aggregator is still returned; its fetches report the configuration error.
func newAggregator(logger *log.Logger) (*usecase.Aggregator, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if !cfg.HasGitHubToken() {
		logger.Println("GITHUB_TOKEN is not set; fetches will fail until it is configured.")
		return usecase.NewAggregator(nil, logger), cfg, nil
	}
	githubGateway, err := gateway.NewGitHubGateway(cfg.GitHubToken, gateway.Options{
		CountMode: cfg.CountMode,
		HTTPCache: cfg.HTTPCache,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Printf("Gateway ready (count mode %s, http cache %t)\n", cfg.CountMode, cfg.HTTPCache)
	return usecase.NewAggregator(githubGateway, logger), cfg, nil
}
