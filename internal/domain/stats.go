package domain

// Summary holds aggregate figures for a result list.
type Summary struct {
	Count       int            `json:"count"`
	GSOCCount   int            `json:"gsoc_count"`
	TotalStars  int            `json:"total_stars"`
	MeanStars   float64        `json:"mean_stars"`
	MedianStars float64        `json:"median_stars"`
	MeanForks   float64        `json:"mean_forks"`
	MedianForks float64        `json:"median_forks"`
	Languages   map[string]int `json:"languages"`
}
