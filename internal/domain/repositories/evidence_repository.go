package repositories

import (
	"context"

	"github.com/rios0rios0/updaterisk/internal/domain/entities"
)

// EvidenceRepository acquires breaking-change evidence from the release
// notes of source repositories. Fetch failures never propagate: they
// degrade to the default unknown verdict for that one repository.
type EvidenceRepository interface {
	// Normalize resolves a raw repository reference to its canonical
	// HTTPS form, or "" when it is not a recognized repository URL.
	Normalize(repoURL string) string

	// Acquire fetches and classifies the release notes of one repository.
	Acquire(ctx context.Context, repoURL string) entities.ReleaseEvidence

	// AcquireMany deduplicates the given URLs by normalized form, issues
	// at most one fetch per distinct repository, and returns the evidence
	// keyed by normalized URL. Unrecognized URLs are skipped.
	AcquireMany(ctx context.Context, repoURLs []string) map[string]entities.ReleaseEvidence
}
