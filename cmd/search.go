package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Searches repositories and prints the ordered result list",
	Long: `Searches GitHub repositories with more than 100 stars matching the given filters.
With --gsoc, searches each Google Summer of Code organization instead; sorting by
prs-* or commits-* then fetches those counts for every repository.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)

		filter, err := filterFromFlags(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid filter: %v\n", err)
			os.Exit(1)
		}
		format, _ := cmd.Flags().GetString("format")
		if format != "json" && format != "table" {
			fmt.Fprintf(os.Stderr, "Invalid --format %q: use json or table\n", format)
			os.Exit(1)
		}

		aggregator, _, err := newAggregator(logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}

		repos, err := aggregator.Fetch(ctx, filter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if format == "table" {
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(repos, filter.Sort))
			return
		}
		jsonData, err := json.MarshalIndent(repos, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal results to JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	addFilterFlags(searchCmd)
	searchCmd.Flags().StringP("format", "f", "json", "Output format: json or table")
}
