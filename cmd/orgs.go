package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/gsoc-explorer/internal/domain"
)

var orgsCmd = &cobra.Command{
	Use:   "orgs",
	Short: "Lists the Google Summer of Code organizations searched by --gsoc",
	Run: func(cmd *cobra.Command, args []string) {
		jsonData, err := json.MarshalIndent(domain.GSOCOrganizations(), "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal organizations to JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	},
}

func init() {
	rootCmd.AddCommand(orgsCmd)
}
