//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"
	"github.com/rios0rios0/updaterisk/internal/domain/entities"
)

// ReportItemBuilder helps create analyzed-dependency results with a fluent interface.
type ReportItemBuilder struct {
	*testkit.BaseBuilder
	name           string
	category       entities.DependencyCategory
	currentRange   string
	latestVersion  string
	diff           entities.DiffKind
	classification entities.BreakingClassification
	confidence     float64
	riskScore      int
	riskLevel      entities.RiskLevel
}

// NewReportItemBuilder creates a new report item builder with sensible defaults.
func NewReportItemBuilder() *ReportItemBuilder {
	return &ReportItemBuilder{
		BaseBuilder:    testkit.NewBaseBuilder(),
		name:           "test-package",
		category:       entities.CategoryProduction,
		currentRange:   "^1.0.0",
		latestVersion:  "1.2.0",
		diff:           entities.DiffMinor,
		classification: entities.BreakingUnknown,
		confidence:     0,
		riskScore:      20,
		riskLevel:      entities.RiskLow,
	}
}

// WithName sets the dependency name.
func (b *ReportItemBuilder) WithName(name string) *ReportItemBuilder {
	b.name = name
	return b
}

// WithCategory sets the dependency category.
func (b *ReportItemBuilder) WithCategory(category entities.DependencyCategory) *ReportItemBuilder {
	b.category = category
	return b
}

// WithRange sets the declared version range.
func (b *ReportItemBuilder) WithRange(versionRange string) *ReportItemBuilder {
	b.currentRange = versionRange
	return b
}

// WithLatest sets the latest published version.
func (b *ReportItemBuilder) WithLatest(version string) *ReportItemBuilder {
	b.latestVersion = version
	return b
}

// WithDiff sets the version diff kind.
func (b *ReportItemBuilder) WithDiff(diff entities.DiffKind) *ReportItemBuilder {
	b.diff = diff
	return b
}

// WithBreaking sets the breaking-change classification and confidence.
func (b *ReportItemBuilder) WithBreaking(
	classification entities.BreakingClassification,
	confidence float64,
) *ReportItemBuilder {
	b.classification = classification
	b.confidence = confidence
	return b
}

// WithRisk sets the risk score and level.
func (b *ReportItemBuilder) WithRisk(score int, level entities.RiskLevel) *ReportItemBuilder {
	b.riskScore = score
	b.riskLevel = level
	return b
}

// Build creates the report item (satisfies testkit.Builder interface).
func (b *ReportItemBuilder) Build() interface{} {
	return b.BuildReportItem()
}

// BuildReportItem creates the report item with a concrete return type.
func (b *ReportItemBuilder) BuildReportItem() entities.ReportItem {
	return entities.ReportItem{
		Name:          b.name,
		Category:      b.category,
		CurrentRange:  b.currentRange,
		LatestVersion: b.latestVersion,
		Diff:          b.diff,
		BreakingChange: entities.BreakingChangeVerdict{
			Classification: b.classification,
			Confidence:     b.confidence,
			Signals:        entities.BreakingSignals{Strong: []string{}, Medium: []string{}, Weak: []string{}},
		},
		RiskScore: b.riskScore,
		RiskLevel: b.riskLevel,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ReportItemBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "test-package"
	b.category = entities.CategoryProduction
	b.currentRange = "^1.0.0"
	b.latestVersion = "1.2.0"
	b.diff = entities.DiffMinor
	b.classification = entities.BreakingUnknown
	b.confidence = 0
	b.riskScore = 20
	b.riskLevel = entities.RiskLow
	return b
}

// Clone creates a deep copy of the ReportItemBuilder.
func (b *ReportItemBuilder) Clone() testkit.Builder {
	return &ReportItemBuilder{
		BaseBuilder:    b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:           b.name,
		category:       b.category,
		currentRange:   b.currentRange,
		latestVersion:  b.latestVersion,
		diff:           b.diff,
		classification: b.classification,
		confidence:     b.confidence,
		riskScore:      b.riskScore,
		riskLevel:      b.riskLevel,
	}
}
