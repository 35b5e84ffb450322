// Package metrics implements the four dimensional aggregators over a linked
// data store: account, product series, use case, and service channel. Each
// aggregator is a pure function of the store; they share no mutable state
// and may run in any order or concurrently.
package metrics

import (
	"math"
	"sort"
	"strings"
)

// successScoreThreshold is the deployment score above which a deployment
// counts as successful.
const successScoreThreshold = 70

// mean returns the average of vs, or 0 for an empty slice.
func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

// rate returns num/denom as a percentage, or 0 when denom is 0.
func rate(num, denom int) float64 {
	if denom == 0 {
		return 0
	}
	return float64(num) / float64(denom) * 100
}

// ratio returns num/denom, or 0 when denom is 0.
func ratio(num, denom float64) float64 {
	if denom == 0 {
		return 0
	}
	return num / denom
}

// clampScore bounds a composite score to [0, 100].
func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// successRate returns the percentage of scores above the success threshold,
// or 0 for an empty slice.
func successRate(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	passed := 0
	for _, s := range scores {
		if s > successScoreThreshold {
			passed++
		}
	}
	return float64(passed) / float64(len(scores)) * 100
}

// dedupeTrim removes duplicates, sorts for deterministic output, and caps the
// result at max entries.
func dedupeTrim(items []string, max int) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, item := range items {
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	sort.Strings(out)
	if len(out) > max {
		out = out[:max]
	}
	return out
}

// topKeys returns the keys of counts ordered by descending count (ties broken
// alphabetically for determinism), capped at max entries.
func topKeys(counts map[string]int, max int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > max {
		keys = keys[:max]
	}
	return keys
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// takeFirst returns at most n leading items from a slice.
func takeFirst(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
