package entities

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// HealthStatus is the semantic label for a 0-100 health score.
type HealthStatus string

const (
	HealthExcellent      HealthStatus = "excellent"
	HealthGood           HealthStatus = "good"
	HealthNeedsAttention HealthStatus = "needs-attention"
	HealthCritical       HealthStatus = "critical"
)

// RecommendationPriority tags a recommendation block.
type RecommendationPriority string

const (
	PriorityImmediate   RecommendationPriority = "immediate"
	PriorityHigh        RecommendationPriority = "high"
	PriorityMedium      RecommendationPriority = "medium"
	PriorityMaintenance RecommendationPriority = "maintenance"
)

// RiskCounts is the count of items per risk level plus the number of
// confirmed breaking changes.
type RiskCounts struct {
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Breaking int `json:"breaking"`
}

// HealthStats is the 0-100 health score with its status label.
type HealthStats struct {
	Score  int          `json:"score"`
	Status HealthStatus `json:"status"`
}

// Recommendation is one remediation block gated by a risk count.
type Recommendation struct {
	Priority RecommendationPriority `json:"priority"`
	Title    string                 `json:"title"`
	Steps    []string               `json:"steps"`
}

// RiskSummary aggregates all report items of one run. It is a pure
// function of the items and can be recomputed at any time.
type RiskSummary struct {
	TotalDependencies       int              `json:"totalDependencies"`
	Counts                  RiskCounts       `json:"counts"`
	Health                  HealthStats      `json:"health"`
	AverageRiskScore        float64          `json:"averageRiskScore"`
	PrioritizedDependencies []ReportItem     `json:"prioritizedDependencies"`
	Recommendations         []Recommendation `json:"recommendations"`
}

// AggregateRisk combines per-dependency results into totals, a health
// score, a deterministic priority ordering, and recommendations.
func AggregateRisk(items []ReportItem) RiskSummary {
	counts := RiskCounts{}
	for _, item := range items {
		switch item.RiskLevel {
		case RiskHigh:
			counts.High++
		case RiskMedium:
			counts.Medium++
		case RiskLow:
			counts.Low++
		}
		if item.ConfirmedBreaking() {
			counts.Breaking++
		}
	}

	score := CalculateHealthScore(counts.High, counts.Medium, counts.Low)

	return RiskSummary{
		TotalDependencies: len(items),
		Counts:            counts,
		Health: HealthStats{
			Score:  score,
			Status: DetermineHealthStatus(score),
		},
		AverageRiskScore:        averageRiskScore(items),
		PrioritizedDependencies: prioritize(items),
		Recommendations:         GenerateRecommendations(counts),
	}
}

// CalculateHealthScore maps the risk distribution to a 0-100 score.
// An empty dependency list is not unhealthy.
func CalculateHealthScore(high, medium, low int) int {
	total := high + medium + low
	if total == 0 {
		return 100
	}
	return int(math.Round((float64(low) + 0.5*float64(medium)) / float64(total) * 100))
}

// DetermineHealthStatus maps a health score to its status label.
func DetermineHealthStatus(score int) HealthStatus {
	switch {
	case score >= 80:
		return HealthExcellent
	case score >= 60:
		return HealthGood
	case score >= 40:
		return HealthNeedsAttention
	default:
		return HealthCritical
	}
}

// prioritize orders items for remediation: confirmed breaking changes
// first, then the remaining high-level items, then medium, then low.
// Relative order within each bucket follows the input order, and no item
// appears twice.
func prioritize(items []ReportItem) []ReportItem {
	ordered := make([]ReportItem, 0, len(items))

	for _, item := range items {
		if item.ConfirmedBreaking() {
			ordered = append(ordered, item)
		}
	}
	for _, level := range []RiskLevel{RiskHigh, RiskMedium, RiskLow} {
		for _, item := range items {
			if item.RiskLevel == level && !item.ConfirmedBreaking() {
				ordered = append(ordered, item)
			}
		}
	}

	return ordered
}

func averageRiskScore(items []ReportItem) float64 {
	if len(items) == 0 {
		return 0
	}
	scores := make([]float64, len(items))
	for i, item := range items {
		scores[i] = float64(item.RiskScore)
	}
	return stat.Mean(scores, nil)
}

// GenerateRecommendations produces remediation blocks gated by the four
// counts. At most one block per priority tag; an empty result means
// nothing to recommend, not an error.
func GenerateRecommendations(counts RiskCounts) []Recommendation {
	var actions []Recommendation

	if counts.Breaking > 0 {
		actions = append(actions, Recommendation{
			Priority: PriorityImmediate,
			Title:    "Immediate Actions (Breaking Changes)",
			Steps: []string{
				fmt.Sprintf("Review migration guides for %d dependencies with breaking changes", counts.Breaking),
				"Create a feature branch for dependency updates",
				"Update one at a time and test after each update",
				"Allocate testing time - breaking changes require thorough validation",
			},
		})
	}

	if counts.High > 0 && counts.Breaking == 0 {
		actions = append(actions, Recommendation{
			Priority: PriorityHigh,
			Title:    "High Priority Actions",
			Steps: []string{
				fmt.Sprintf("Review changelogs for %d high-risk dependencies", counts.High),
				"Test in staging before production deployment",
				"Update incrementally to isolate potential issues",
			},
		})
	}

	if counts.Medium > 0 {
		actions = append(actions, Recommendation{
			Priority: PriorityMedium,
			Title:    "Medium Priority Actions",
			Steps: []string{
				fmt.Sprintf("Schedule updates for %d medium-risk dependencies in next sprint", counts.Medium),
				"Batch similar updates together for efficiency",
				"Run full test suite after updating",
			},
		})
	}

	if counts.Low > 0 && counts.High == 0 && counts.Breaking == 0 {
		actions = append(actions, Recommendation{
			Priority: PriorityMaintenance,
			Title:    "Maintenance Actions",
			Steps: []string{
				"Safe to run npm update or yarn upgrade for low-risk patches",
				"Run automated tests to verify compatibility",
				"Commit changes with clear description",
			},
		})
	}

	return actions
}
