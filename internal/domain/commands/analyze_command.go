package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/updaterisk/internal/domain/entities"
	"github.com/rios0rios0/updaterisk/internal/domain/repositories"
)

// AnalysisMode selects how release-note evidence is scheduled.
type AnalysisMode string

const (
	// ModeSequential acquires evidence per dependency as it is processed,
	// giving per-dependency progress visibility.
	ModeSequential AnalysisMode = "sequential"

	// ModeBatch pre-deduplicates all release-page fetches before issuing
	// them, trading progress visibility for lower latency and fetch load.
	ModeBatch AnalysisMode = "batch"
)

// ParseAnalysisMode validates a mode string, defaulting to sequential.
func ParseAnalysisMode(raw string) (AnalysisMode, error) {
	switch AnalysisMode(raw) {
	case ModeSequential, "":
		return ModeSequential, nil
	case ModeBatch:
		return ModeBatch, nil
	default:
		return "", fmt.Errorf("unknown analysis mode: %q", raw)
	}
}

// Analyze is the interface for the analysis pipeline.
type Analyze interface {
	Execute(ctx context.Context, opts AnalyzeOptions) ([]entities.ReportItem, error)
	AnalyzeManifest(ctx context.Context, manifest *entities.Manifest, mode AnalysisMode) ([]entities.ReportItem, error)
}

// AnalyzeOptions holds runtime options for a single analysis run.
type AnalyzeOptions struct {
	RepoURL string
	Branch  string
	Mode    AnalysisMode
}

// AnalyzeCommand runs the full dependency risk pipeline for one manifest:
// manifest parse -> registry lookup -> version diff -> release evidence ->
// breaking-change classification -> risk score.
type AnalyzeCommand struct {
	manifests repositories.ManifestRepository
	registry  repositories.RegistryRepository
	evidence  repositories.EvidenceRepository
}

// NewAnalyzeCommand creates a new AnalyzeCommand with the given collaborators.
func NewAnalyzeCommand(
	manifests repositories.ManifestRepository,
	registry repositories.RegistryRepository,
	evidence repositories.EvidenceRepository,
) *AnalyzeCommand {
	return &AnalyzeCommand{
		manifests: manifests,
		registry:  registry,
		evidence:  evidence,
	}
}

// Execute fetches the manifest of the given repository and analyzes every
// declared dependency. Failures below the dependency level degrade that
// one dependency to its documented defaults; only run-level failures
// (no repository, no manifest) are returned as errors.
func (it *AnalyzeCommand) Execute(
	ctx context.Context,
	opts AnalyzeOptions,
) ([]entities.ReportItem, error) {
	manifest, err := it.manifests.Fetch(ctx, opts.RepoURL, opts.Branch)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manifest: %w", err)
	}

	return it.AnalyzeManifest(ctx, manifest, opts.Mode)
}

// AnalyzeManifest analyzes an already-parsed manifest. Both CLI local mode
// and remote mode funnel through here.
func (it *AnalyzeCommand) AnalyzeManifest(
	ctx context.Context,
	manifest *entities.Manifest,
	mode AnalysisMode,
) ([]entities.ReportItem, error) {
	deps := manifest.ExtractDependencies(true)
	logger.Infof("Found %d dependencies", len(deps))

	if len(deps) == 0 {
		return []entities.ReportItem{}, nil
	}

	if mode == ModeBatch {
		return it.analyzeBatch(ctx, deps), nil
	}
	return it.analyzeSequential(ctx, deps), nil
}

// analyzeSequential walks dependencies in manifest order, acquiring
// release evidence as each one is processed.
func (it *AnalyzeCommand) analyzeSequential(
	ctx context.Context,
	deps []entities.Dependency,
) []entities.ReportItem {
	items := make([]entities.ReportItem, 0, len(deps))

	for i, dep := range deps {
		logger.Infof("[%d/%d] Processing %s...", i+1, len(deps), dep.Name)

		info := it.lookupPackage(ctx, dep.Name)

		evidence := entities.ReleaseEvidence{Verdict: entities.UnknownVerdict()}
		sourceURL := ""
		if info != nil && info.SourceRepoURL != "" {
			sourceURL = it.evidence.Normalize(info.SourceRepoURL)
			evidence = it.evidence.Acquire(ctx, info.SourceRepoURL)
		}

		items = append(items, buildReportItem(dep, info, sourceURL, evidence))
	}

	return items
}

// analyzeBatch resolves all registry lookups first, deduplicates the
// release-page fetches, then assembles the report.
func (it *AnalyzeCommand) analyzeBatch(
	ctx context.Context,
	deps []entities.Dependency,
) []entities.ReportItem {
	infos := make([]*entities.PackageInfo, len(deps))
	var sourceURLs []string

	for i, dep := range deps {
		infos[i] = it.lookupPackage(ctx, dep.Name)
		if infos[i] != nil && infos[i].SourceRepoURL != "" {
			sourceURLs = append(sourceURLs, infos[i].SourceRepoURL)
		}
	}

	evidenceByURL := it.evidence.AcquireMany(ctx, sourceURLs)

	items := make([]entities.ReportItem, 0, len(deps))
	for i, dep := range deps {
		evidence := entities.ReleaseEvidence{Verdict: entities.UnknownVerdict()}
		sourceURL := ""
		if infos[i] != nil && infos[i].SourceRepoURL != "" {
			sourceURL = it.evidence.Normalize(infos[i].SourceRepoURL)
			if acquired, ok := evidenceByURL[sourceURL]; ok {
				evidence = acquired
			}
		}
		items = append(items, buildReportItem(dep, infos[i], sourceURL, evidence))
	}

	return items
}

// lookupPackage queries the registry, degrading a failure to nil so the
// run continues with an unknown diff for this dependency.
func (it *AnalyzeCommand) lookupPackage(ctx context.Context, name string) *entities.PackageInfo {
	info, err := it.registry.Lookup(ctx, name)
	if err != nil {
		logger.Warnf("Registry lookup failed for %s: %v", name, err)
		return nil
	}
	return info
}

func buildReportItem(
	dep entities.Dependency,
	info *entities.PackageInfo,
	sourceURL string,
	evidence entities.ReleaseEvidence,
) entities.ReportItem {
	diff := entities.VersionDiff{Kind: entities.DiffUnknown}
	latest := ""
	if info != nil && info.LatestVersion != "" {
		latest = info.LatestVersion
		diff = entities.ClassifyVersionDiff(dep.Range, latest)
	}

	risk := entities.ComputeRisk(diff.Kind, dep.Category, evidence.Verdict)

	return entities.ReportItem{
		Name:             dep.Name,
		Category:         dep.Category,
		CurrentRange:     dep.Range,
		ResolvedBaseline: diff.ResolvedBaseline,
		LatestVersion:    latest,
		Diff:             diff.Kind,
		BreakingChange:   evidence.Verdict,
		RiskScore:        risk.Score,
		RiskLevel:        risk.Level,
		SourceRepoURL:    sourceURL,
		NotesSnippet:     evidence.NotesSnippet,
	}
}
