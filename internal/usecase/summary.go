package usecase

import (
	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/gsoc-explorer/internal/domain"
)

// unknownLanguage buckets repositories without a detected primary language.
const unknownLanguage = "unknown"

// Summarize computes aggregate figures for repos.
func Summarize(repos []domain.Repository) domain.Summary {
	summary := domain.Summary{
		Count:     len(repos),
		Languages: map[string]int{},
	}
	if len(repos) == 0 {
		return summary
	}

	starData := make(stats.Float64Data, 0, len(repos))
	forkData := make(stats.Float64Data, 0, len(repos))
	for _, r := range repos {
		starData = append(starData, float64(r.StargazersCount))
		forkData = append(forkData, float64(r.ForksCount))
		summary.TotalStars += r.StargazersCount
		if r.IsGSOCOrg {
			summary.GSOCCount++
		}
		lang := r.Language
		if lang == "" {
			lang = unknownLanguage
		}
		summary.Languages[lang]++
	}

	// The inputs are non-empty, which is the only failure mode of these functions.
	summary.MeanStars, _ = stats.Mean(starData)
	summary.MedianStars, _ = stats.Median(starData)
	summary.MeanForks, _ = stats.Mean(forkData)
	summary.MedianForks, _ = stats.Median(forkData)
	return summary
}
