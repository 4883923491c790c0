//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/updaterisk/internal/domain/entities"
)

func verdict(
	classification entities.BreakingClassification,
	confidence float64,
) entities.BreakingChangeVerdict {
	return entities.BreakingChangeVerdict{
		Classification: classification,
		Confidence:     confidence,
	}
}

func TestComputeRisk(t *testing.T) {
	t.Parallel()

	t.Run("should score a plain major bump as high", func(t *testing.T) {
		// when
		risk := entities.ComputeRisk(
			entities.DiffMajor,
			entities.CategoryProduction,
			verdict(entities.BreakingUnknown, 0),
		)

		// then
		assert.Equal(t, 60, risk.Score)
		assert.Equal(t, entities.RiskHigh, risk.Level)
	})

	t.Run("should score a same-version update as zero", func(t *testing.T) {
		// when
		risk := entities.ComputeRisk(
			entities.DiffSame,
			entities.CategoryProduction,
			verdict(entities.BreakingUnknown, 0),
		)

		// then
		assert.Equal(t, 0, risk.Score)
		assert.Equal(t, entities.RiskLow, risk.Level)
	})

	t.Run("should weight the breaking contribution by confidence", func(t *testing.T) {
		// when
		risk := entities.ComputeRisk(
			entities.DiffMinor,
			entities.CategoryProduction,
			verdict(entities.BreakingLikely, 0.6),
		)

		// then: 20 + 25*0.6 = 35
		assert.Equal(t, 35, risk.Score)
		assert.Equal(t, entities.RiskMedium, risk.Level)
	})

	t.Run("should apply the floor for low-confidence confirmed evidence", func(t *testing.T) {
		// when
		risk := entities.ComputeRisk(
			entities.DiffMinor,
			entities.CategoryProduction,
			verdict(entities.BreakingConfirmed, 0.2),
		)

		// then: 40*0.2 = 8 is lifted to 10, so 20 + 10 = 30
		assert.Equal(t, 30, risk.Score)
		assert.Equal(t, entities.RiskMedium, risk.Level)
	})

	t.Run("should not apply the floor at zero confidence", func(t *testing.T) {
		// when
		risk := entities.ComputeRisk(
			entities.DiffMinor,
			entities.CategoryProduction,
			verdict(entities.BreakingConfirmed, 0),
		)

		// then
		assert.Equal(t, 20, risk.Score)
		assert.Equal(t, entities.RiskLow, risk.Level)
	})

	t.Run("should clamp out-of-range confidence before weighting", func(t *testing.T) {
		// when
		risk := entities.ComputeRisk(
			entities.DiffSame,
			entities.CategoryProduction,
			verdict(entities.BreakingConfirmed, 1.5),
		)

		// then: 40*1.0, not 40*1.5
		assert.Equal(t, 40, risk.Score)
	})

	t.Run("should discount development dependencies", func(t *testing.T) {
		// when
		risk := entities.ComputeRisk(
			entities.DiffMajor,
			entities.CategoryDevelopment,
			verdict(entities.BreakingUnknown, 0),
		)

		// then: round(60 * 0.7) = 42
		assert.Equal(t, 42, risk.Score)
		assert.Equal(t, entities.RiskMedium, risk.Level)
	})

	t.Run("should score an unknown diff with the baseline uncertainty", func(t *testing.T) {
		// when
		risk := entities.ComputeRisk(
			entities.DiffUnknown,
			entities.CategoryProduction,
			verdict(entities.BreakingUnknown, 0.1),
		)

		// then
		assert.Equal(t, 10, risk.Score)
		assert.Equal(t, entities.RiskLow, risk.Level)
	})

	t.Run("should reach high risk for a confirmed breaking major bump", func(t *testing.T) {
		// when
		risk := entities.ComputeRisk(
			entities.DiffMajor,
			entities.CategoryProduction,
			verdict(entities.BreakingConfirmed, 0.9),
		)

		// then: 60 + 40*0.9 = 96
		assert.Equal(t, 96, risk.Score)
		assert.Equal(t, entities.RiskHigh, risk.Level)
	})
}
