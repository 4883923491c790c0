//go:build unit

package controllers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/updaterisk/internal/domain/entities"
	"github.com/rios0rios0/updaterisk/internal/infrastructure/controllers"
	builders "github.com/rios0rios0/updaterisk/test/domain/entitybuilders"
)

func TestFormatReportTable(t *testing.T) {
	t.Parallel()

	t.Run("should render one row per dependency", func(t *testing.T) {
		// given
		items := []entities.ReportItem{
			builders.NewReportItemBuilder().WithName("express").BuildReportItem(),
			builders.NewReportItemBuilder().WithName("lodash").BuildReportItem(),
		}

		// when
		table := controllers.FormatReportTable(items)

		// then
		assert.Contains(t, table, "DEPENDENCY")
		assert.Contains(t, table, "express")
		assert.Contains(t, table, "lodash")
	})

	t.Run("should print a dash for a missing latest version", func(t *testing.T) {
		// given
		items := []entities.ReportItem{
			builders.NewReportItemBuilder().WithName("ghost").WithLatest("").BuildReportItem(),
		}

		// when
		table := controllers.FormatReportTable(items)

		// then
		assert.Contains(t, table, "-")
	})
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	t.Run("should render the health score and recommendations", func(t *testing.T) {
		// given
		items := []entities.ReportItem{
			builders.NewReportItemBuilder().WithName("express").
				WithRisk(96, entities.RiskHigh).
				WithBreaking(entities.BreakingConfirmed, 0.9).BuildReportItem(),
			builders.NewReportItemBuilder().WithName("lodash").
				WithRisk(5, entities.RiskLow).BuildReportItem(),
		}
		summary := entities.AggregateRisk(items)

		// when
		rendered := controllers.FormatSummary(items, summary)

		// then
		assert.Contains(t, rendered, "Repository Health Score: 50/100 (needs-attention)")
		assert.Contains(t, rendered, "Confirmed breaking changes:")
		assert.Contains(t, rendered, "express")
		assert.Contains(t, rendered, "Immediate Actions (Breaking Changes)")
	})

	t.Run("should omit empty sections", func(t *testing.T) {
		// given
		items := []entities.ReportItem{
			builders.NewReportItemBuilder().WithName("lodash").
				WithRisk(5, entities.RiskLow).BuildReportItem(),
		}
		summary := entities.AggregateRisk(items)

		// when
		rendered := controllers.FormatSummary(items, summary)

		// then
		assert.NotContains(t, rendered, "Confirmed breaking changes:")
		assert.NotContains(t, rendered, "High risk updates:")
		assert.Contains(t, rendered, "Repository Health Score: 100/100 (excellent)")
	})
}
