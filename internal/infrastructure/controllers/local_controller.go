package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/updaterisk/internal/domain/commands"
	"github.com/rios0rios0/updaterisk/internal/domain/entities"
	"github.com/rios0rios0/updaterisk/internal/infrastructure/repositories/local"
)

// LocalController handles the "local" subcommand (checked-out repository mode).
type LocalController struct {
	command   commands.Analyze
	manifests *local.LocalManifestRepository
}

// NewLocalController creates a new LocalController.
func NewLocalController(
	command commands.Analyze,
	manifests *local.LocalManifestRepository,
) *LocalController {
	return &LocalController{command: command, manifests: manifests}
}

// GetBind returns the Cobra command metadata for the local controller.
func (it *LocalController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "local [path]",
		Short: "Analyze the dependencies of a local checkout",
		Long: `Analyze the package.json of a local working copy instead of fetching
it from GitHub. Defaults to the current directory.`,
	}
}

// Execute runs the local analysis mode.
func (it *LocalController) Execute(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	rawMode, _ := cmd.Flags().GetString("mode")
	asJSON, _ := cmd.Flags().GetBool("json")

	mode, err := commands.ParseAnalysisMode(rawMode)
	if err != nil {
		logger.Errorf("Invalid mode: %v", err)
		return
	}

	repoDir := "."
	if len(args) > 0 {
		repoDir = args[0]
	}

	// The remote is informational only; a plain directory works too.
	if origin, branch, infoErr := it.manifests.RemoteInfo(repoDir); infoErr == nil {
		logger.Infof("Analyzing %s (%s)...", origin, branch)
	} else {
		logger.Infof("Analyzing %s...", repoDir)
	}

	manifest, err := it.manifests.Read(repoDir)
	if err != nil {
		logger.Errorf("Failed to read manifest: %v", err)
		return
	}

	items, err := it.command.AnalyzeManifest(ctx, manifest, mode)
	if err != nil {
		logger.Errorf("Analysis failed: %v", err)
		return
	}

	renderReport(items, asJSON)
}

// AddFlags adds the local-specific flags to the given Cobra command.
func (it *LocalController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("mode", "sequential", "Evidence scheduling mode (sequential, batch)")
	cmd.Flags().Bool("json", false, "Print the full report as JSON instead of tables")
}
