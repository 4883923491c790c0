package entities

// ReleaseEvidence is the outcome of acquiring release notes for one
// source repository: the classified verdict plus a truncated excerpt of
// the fetched text for explainability.
type ReleaseEvidence struct {
	Verdict      BreakingChangeVerdict `json:"verdict"`
	NotesSnippet string                `json:"notesSnippet,omitempty"`
}

// ReportItem is the per-dependency aggregate of one analysis run. It is
// created once per dependency and never mutated afterwards.
type ReportItem struct {
	Name             string                `json:"name"`
	Category         DependencyCategory    `json:"category"`
	CurrentRange     string                `json:"currentRange"`
	ResolvedBaseline string                `json:"currentResolved,omitempty"`
	LatestVersion    string                `json:"latest,omitempty"`
	Diff             DiffKind              `json:"diff"`
	BreakingChange   BreakingChangeVerdict `json:"breakingChange"`
	RiskScore        int                   `json:"riskScore"`
	RiskLevel        RiskLevel             `json:"riskLevel"`
	SourceRepoURL    string                `json:"sourceRepoUrl,omitempty"`
	NotesSnippet     string                `json:"releaseNotesSnippet,omitempty"`
}

// ConfirmedBreaking reports whether this item carries a confirmed
// breaking-change verdict.
func (item ReportItem) ConfirmedBreaking() bool {
	return item.BreakingChange.Classification == BreakingConfirmed
}
