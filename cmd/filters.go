package cmd

import (
	"github.com/spf13/cobra"

	"github.com/naka-gawa/gsoc-explorer/internal/domain"
)

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("query", "q", "", "Free-text search terms")
	cmd.Flags().StringP("language", "l", domain.AllOption, "Primary language, or \"all\"")
	cmd.Flags().StringP("topic", "t", domain.AllOption, "Repository topic, or \"all\"")
	cmd.Flags().StringP("sort", "s", string(domain.SortStarsDesc), "Sort key (stars|forks|updated|issues|prs|commits)-(desc|asc)")
	cmd.Flags().Bool("gsoc", false, "Only Google Summer of Code organizations")
}

func filterFromFlags(cmd *cobra.Command) (domain.Filter, error) {
	query, _ := cmd.Flags().GetString("query")
	language, _ := cmd.Flags().GetString("language")
	topic, _ := cmd.Flags().GetString("topic")
	sortStr, _ := cmd.Flags().GetString("sort")
	gsoc, _ := cmd.Flags().GetBool("gsoc")

	sortKey, err := domain.ParseSortKey(sortStr)
	if err != nil {
		return domain.Filter{}, err
	}
	return domain.Filter{
		Query:    query,
		Language: language,
		Topic:    topic,
		Sort:     sortKey,
		GSOCOnly: gsoc,
	}, nil
}
