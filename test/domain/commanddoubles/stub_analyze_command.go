//go:build integration || unit || test

// Package commanddoubles provides test doubles for domain commands.
package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/updaterisk/internal/domain/commands"
	"github.com/rios0rios0/updaterisk/internal/domain/entities"
)

// StubAnalyzeCommand implements commands.Analyze with canned results.
type StubAnalyzeCommand struct {
	Items      []entities.ReportItem
	ExecuteErr error

	// spy: options and manifests received
	ExecutedOptions   []commands.AnalyzeOptions
	AnalyzedManifests []*entities.Manifest
}

var _ commands.Analyze = (*StubAnalyzeCommand)(nil)

func (s *StubAnalyzeCommand) Execute(
	_ context.Context,
	opts commands.AnalyzeOptions,
) ([]entities.ReportItem, error) {
	s.ExecutedOptions = append(s.ExecutedOptions, opts)
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	return s.Items, nil
}

func (s *StubAnalyzeCommand) AnalyzeManifest(
	_ context.Context,
	manifest *entities.Manifest,
	_ commands.AnalysisMode,
) ([]entities.ReportItem, error) {
	s.AnalyzedManifests = append(s.AnalyzedManifests, manifest)
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	return s.Items, nil
}
