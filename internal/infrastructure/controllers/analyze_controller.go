package controllers

import (
	"encoding/json"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/updaterisk/internal/domain/commands"
	"github.com/rios0rios0/updaterisk/internal/domain/entities"
)

// AnalyzeController handles the "analyze" subcommand (remote repository mode).
type AnalyzeController struct {
	command commands.Analyze
}

// NewAnalyzeController creates a new AnalyzeController.
func NewAnalyzeController(command commands.Analyze) *AnalyzeController {
	return &AnalyzeController{command: command}
}

// GetBind returns the Cobra command metadata for the analyze controller.
func (it *AnalyzeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "analyze <repository-url>",
		Short: "Analyze the update risk of a repository's dependencies",
		Long: `Analyze the dependencies declared in a GitHub repository's package.json.

For each dependency the latest published version is compared against the
declared range, the release notes of the source repository are scanned
for breaking-change evidence, and a risk score is assigned. The run ends
with an aggregated health score and prioritized recommendations.`,
	}
}

// Execute runs the remote analysis mode.
func (it *AnalyzeController) Execute(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	if len(args) == 0 {
		logger.Error("A repository URL is required, e.g. updaterisk analyze https://github.com/expressjs/express")
		return
	}

	branch, _ := cmd.Flags().GetString("branch")
	rawMode, _ := cmd.Flags().GetString("mode")
	asJSON, _ := cmd.Flags().GetBool("json")

	mode, err := commands.ParseAnalysisMode(rawMode)
	if err != nil {
		logger.Errorf("Invalid mode: %v", err)
		return
	}

	logger.Infof("Analyzing %s...", args[0])

	items, err := it.command.Execute(ctx, commands.AnalyzeOptions{
		RepoURL: args[0],
		Branch:  branch,
		Mode:    mode,
	})
	if err != nil {
		logger.Errorf("Analysis failed: %v", err)
		return
	}

	renderReport(items, asJSON)
}

// AddFlags adds the analyze-specific flags to the given Cobra command.
func (it *AnalyzeController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("branch", "", "Branch to read package.json from (defaults to main/master)")
	cmd.Flags().String("mode", "sequential", "Evidence scheduling mode (sequential, batch)")
	cmd.Flags().Bool("json", false, "Print the full report as JSON instead of tables")
}

// renderReport prints the per-dependency table and the aggregated
// summary, or the whole report as JSON.
func renderReport(items []entities.ReportItem, asJSON bool) {
	summary := entities.AggregateRisk(items)

	if asJSON {
		report := struct {
			Dependencies []entities.ReportItem `json:"dependencies"`
			Summary      entities.RiskSummary  `json:"summary"`
		}{Dependencies: items, Summary: summary}

		encoded, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			logger.Errorf("Failed to encode report: %v", err)
			return
		}
		fmt.Println(string(encoded))
		return
	}

	fmt.Print(FormatReportTable(items))
	fmt.Print(FormatSummary(items, summary))
}
