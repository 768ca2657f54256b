package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/gsoc-explorer/internal/config"
	"github.com/naka-gawa/gsoc-explorer/internal/gateway"
	"github.com/naka-gawa/gsoc-explorer/internal/usecase"
)

var rateLimitCmd = &cobra.Command{
	Use:   "ratelimit",
	Short: "Shows the remaining search quota and when it resets",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		if !cfg.HasGitHubToken() {
			fmt.Fprintln(os.Stderr, usecase.ErrTokenNotConfigured.Error())
			os.Exit(1)
		}
		githubGateway, err := gateway.NewGitHubGateway(cfg.GitHubToken, gateway.Options{HTTPCache: false}, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}

		limit, err := githubGateway.FetchRateLimit(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to fetch rate limit: %v\n", err)
			os.Exit(1)
		}
		reset := limit.ResetTime()
		fmt.Fprintf(cmd.OutOrStdout(), "search: %d remaining, resets at %s (in %s)\n",
			limit.Remaining, reset.Format(time.RFC3339), time.Until(reset).Round(time.Second))
	},
}

func init() {
	rootCmd.AddCommand(rateLimitCmd)
}
