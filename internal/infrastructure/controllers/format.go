package controllers

import (
	"fmt"
	"strings"

	"github.com/rios0rios0/updaterisk/internal/domain/entities"
)

// FormatReportTable renders the per-dependency results as a padded
// plain-text table.
func FormatReportTable(items []entities.ReportItem) string {
	headers := []string{"DEPENDENCY", "CATEGORY", "CURRENT", "LATEST", "CHANGE", "BREAKING", "RISK"}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.Name,
			string(item.Category),
			item.CurrentRange,
			orDash(item.LatestVersion),
			string(item.Diff),
			fmt.Sprintf("%s (%.2f)", item.BreakingChange.Classification, item.BreakingChange.Confidence),
			fmt.Sprintf("%d (%s)", item.RiskScore, item.RiskLevel),
		})
	}

	widths := make([]int, len(headers))
	for column, header := range headers {
		widths[column] = len(header)
	}
	for _, row := range rows {
		for column, cell := range row {
			if len(cell) > widths[column] {
				widths[column] = len(cell)
			}
		}
	}

	var builder strings.Builder
	writeRow := func(cells []string) {
		for column, cell := range cells {
			builder.WriteString(cell)
			builder.WriteString(strings.Repeat(" ", widths[column]-len(cell)+2))
		}
		builder.WriteString("\n")
	}

	writeRow(headers)
	for column := range headers {
		builder.WriteString(strings.Repeat("-", widths[column]))
		builder.WriteString("  ")
	}
	builder.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	return builder.String()
}

// FormatSummary renders the aggregated view: breaking changes, risky
// dependencies, the health score and the recommended actions.
func FormatSummary(items []entities.ReportItem, summary entities.RiskSummary) string {
	var builder strings.Builder

	builder.WriteString("\n=== Dependency Update Risk Summary ===\n\n")
	builder.WriteString(fmt.Sprintf("Analyzed dependencies: %d\n", summary.TotalDependencies))
	builder.WriteString(fmt.Sprintf(
		"Risk distribution: %d high, %d medium, %d low (average score %.1f)\n",
		summary.Counts.High, summary.Counts.Medium, summary.Counts.Low, summary.AverageRiskScore,
	))

	confirmed := filterItems(items, func(item entities.ReportItem) bool {
		return item.ConfirmedBreaking()
	})
	if len(confirmed) > 0 {
		builder.WriteString("\nConfirmed breaking changes:\n")
		for _, item := range confirmed {
			builder.WriteString(fmt.Sprintf(
				"  - %s (%s -> %s)\n", item.Name, item.CurrentRange, orDash(item.LatestVersion),
			))
		}
	}

	writeLevelSection(&builder, "High risk updates:", items, entities.RiskHigh)
	writeLevelSection(&builder, "Medium risk updates:", items, entities.RiskMedium)

	builder.WriteString(fmt.Sprintf(
		"\nRepository Health Score: %d/100 (%s)\n",
		summary.Health.Score, summary.Health.Status,
	))

	if len(summary.Recommendations) > 0 {
		builder.WriteString("\nRecommendations:\n")
		for _, recommendation := range summary.Recommendations {
			builder.WriteString(fmt.Sprintf(
				"  [%s] %s\n", recommendation.Priority, recommendation.Title,
			))
			for index, step := range recommendation.Steps {
				builder.WriteString(fmt.Sprintf("    %d. %s\n", index+1, step))
			}
		}
	}

	return builder.String()
}

func writeLevelSection(
	builder *strings.Builder,
	title string,
	items []entities.ReportItem,
	level entities.RiskLevel,
) {
	matched := filterItems(items, func(item entities.ReportItem) bool {
		return item.RiskLevel == level && !item.ConfirmedBreaking()
	})
	if len(matched) == 0 {
		return
	}

	builder.WriteString("\n" + title + "\n")
	for _, item := range matched {
		builder.WriteString(fmt.Sprintf(
			"  - %s: %s -> %s (score %d)\n",
			item.Name, item.CurrentRange, orDash(item.LatestVersion), item.RiskScore,
		))
	}
}

func filterItems(
	items []entities.ReportItem,
	keep func(entities.ReportItem) bool,
) []entities.ReportItem {
	matched := make([]entities.ReportItem, 0, len(items))
	for _, item := range items {
		if keep(item) {
			matched = append(matched, item)
		}
	}
	return matched
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
