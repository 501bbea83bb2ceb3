package validate

import (
	"sort"

	"github.com/zenwen/ainews/internal/news"
)

// BatchEntry pairs an item identity with its validation result.
type BatchEntry struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Result Result `json:"result"`
}

// IssueCount is one row of the issue frequency histogram.
type IssueCount struct {
	Issue string `json:"issue"`
	Count int    `json:"count"`
}

// BatchStats aggregates verdicts across a batch of validations.
type BatchStats struct {
	Total        int          `json:"total"`
	Valid        int          `json:"valid"`
	Invalid      int          `json:"invalid"`
	AvgScore     float64      `json:"avg_score"`
	CommonIssues []IssueCount `json:"common_issues"`
}

// ValidateBatch validates original/rewritten pairs positionally. Extra
// items on either side are ignored.
func (v *Validator) ValidateBatch(originals, rewrittens []*news.Item) []BatchEntry {
	n := len(originals)
	if len(rewrittens) < n {
		n = len(rewrittens)
	}

	entries := make([]BatchEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, BatchEntry{
			ID:     rewrittens[i].ID,
			Title:  rewrittens[i].Title,
			Result: v.Validate(originals[i], rewrittens[i]),
		})
	}
	return entries
}

// Stats computes the aggregate verdict histogram for a batch. Issues
// are sorted by frequency descending, ties alphabetically.
func Stats(entries []BatchEntry) BatchStats {
	stats := BatchStats{Total: len(entries)}

	counts := make(map[string]int)
	var sum float64
	for _, e := range entries {
		if e.Result.IsValid {
			stats.Valid++
		} else {
			stats.Invalid++
		}
		sum += e.Result.Score
		for _, issue := range e.Result.Issues {
			counts[issue]++
		}
	}

	if stats.Total > 0 {
		stats.AvgScore = sum / float64(stats.Total)
	}

	for issue, count := range counts {
		stats.CommonIssues = append(stats.CommonIssues, IssueCount{Issue: issue, Count: count})
	}
	sort.Slice(stats.CommonIssues, func(i, j int) bool {
		if stats.CommonIssues[i].Count != stats.CommonIssues[j].Count {
			return stats.CommonIssues[i].Count > stats.CommonIssues[j].Count
		}
		return stats.CommonIssues[i].Issue < stats.CommonIssues[j].Issue
	})

	return stats
}
