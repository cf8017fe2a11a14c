package ingestsrv

import (
	"math"
	"sort"

	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/ingest"
)

// CompileStatistics aggregates a bulk run's results: counts, success rate,
// averages and distributions over successful items, and the five most
// frequent validation issues.
func CompileStatistics(results []ingest.ProcessingResult) *ingest.Statistics {
	total := len(results)
	successful := 0

	skillCounts := []int{}
	experienceYears := []int{}
	issueCounts := map[string]int{}

	for _, result := range results {
		if result.Success {
			successful++
			skillCounts = append(skillCounts, result.SkillsCount)
			experienceYears = append(experienceYears, result.ExperienceYears)
		}
		for _, issue := range result.ValidationIssues {
			issueCounts[issue]++
		}
	}

	stats := &ingest.Statistics{
		TotalProcessed:         total,
		Successful:             successful,
		Failed:                 total - successful,
		AvgSkillsPerCandidate:  round1(mean(skillCounts)),
		AvgExperienceYears:     round1(mean(experienceYears)),
		CommonIssues:           topIssues(issueCounts, 5),
		SkillDistribution:      distribution(skillCounts),
		ExperienceDistribution: distribution(experienceYears),
	}
	if total > 0 {
		stats.SuccessRate = round1(float64(successful) / float64(total) * 100)
	}
	return stats
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func distribution(values []int) ingest.Distribution {
	if len(values) == 0 {
		return ingest.Distribution{}
	}

	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	return ingest.Distribution{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Median: sorted[len(sorted)/2],
	}
}

// topIssues returns the most frequent issues, count descending with ties
// broken alphabetically for stable output.
func topIssues(counts map[string]int, limit int) []ingest.IssueCount {
	issues := make([]ingest.IssueCount, 0, len(counts))
	for issue, count := range counts {
		issues = append(issues, ingest.IssueCount{Issue: issue, Count: count})
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Count != issues[j].Count {
			return issues[i].Count > issues[j].Count
		}
		return issues[i].Issue < issues[j].Issue
	})

	if len(issues) > limit {
		issues = issues[:limit]
	}
	return issues
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
