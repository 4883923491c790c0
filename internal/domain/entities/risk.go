package entities

import "math"

// RiskLevel is the three-level label derived from a risk score.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// RiskResult is the numeric score and level for one pending update.
type RiskResult struct {
	Score int       `json:"score"`
	Level RiskLevel `json:"level"`
}

const (
	// confirmedContributionFloor guarantees a confirmed breaking change
	// always moves a low-severity semver bump at least partway toward
	// medium instead of being rounded away by a low confidence.
	confirmedContributionFloor = 10

	// devMultiplier reflects the lower blast radius of development
	// dependencies.
	devMultiplier = 0.7

	highRiskThreshold   = 60
	mediumRiskThreshold = 30
)

// ComputeRisk combines the version-diff kind, the dependency category, and
// the breaking-change verdict into a score and level.
func ComputeRisk(
	kind DiffKind,
	category DependencyCategory,
	verdict BreakingChangeVerdict,
) RiskResult {
	total := float64(diffBaseScore(kind)) + breakingContribution(verdict)

	if category == CategoryDevelopment {
		total *= devMultiplier
	}

	score := int(math.Round(total))

	level := RiskLow
	switch {
	case score >= highRiskThreshold:
		level = RiskHigh
	case score >= mediumRiskThreshold:
		level = RiskMedium
	}

	return RiskResult{Score: score, Level: level}
}

func diffBaseScore(kind DiffKind) int {
	switch kind {
	case DiffMajor:
		return 60
	case DiffMinor:
		return 20
	case DiffPatch:
		return 5
	case DiffSame:
		return 0
	default:
		return 10
	}
}

func breakingContribution(verdict BreakingChangeVerdict) float64 {
	confidence := clamp01(verdict.Confidence)
	contribution := breakingWeight(verdict.Classification) * confidence

	// Policy override, not a derived property: confirmed evidence never
	// contributes less than the floor.
	if verdict.Classification == BreakingConfirmed &&
		confidence > 0 &&
		contribution < confirmedContributionFloor {
		contribution = confirmedContributionFloor
	}

	return contribution
}

func breakingWeight(classification BreakingClassification) float64 {
	switch classification {
	case BreakingConfirmed:
		return 40
	case BreakingLikely:
		return 25
	case BreakingPossible:
		return 10
	default:
		return 0
	}
}
