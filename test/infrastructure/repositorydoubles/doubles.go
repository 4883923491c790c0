//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations — no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rios0rios0/updaterisk/internal/domain/entities"
	"github.com/rios0rios0/updaterisk/internal/domain/repositories"
)

// StubManifestRepository implements repositories.ManifestRepository with a
// fixed manifest.
type StubManifestRepository struct {
	Manifest *entities.Manifest
	FetchErr error

	// spy: repo URLs and branches requested
	FetchedURLs     []string
	FetchedBranches []string
}

var _ repositories.ManifestRepository = (*StubManifestRepository)(nil)

func (s *StubManifestRepository) Fetch(
	_ context.Context,
	repoURL string,
	branch string,
) (*entities.Manifest, error) {
	s.FetchedURLs = append(s.FetchedURLs, repoURL)
	s.FetchedBranches = append(s.FetchedBranches, branch)
	if s.FetchErr != nil {
		return nil, s.FetchErr
	}
	return s.Manifest, nil
}

// StubRegistryRepository implements repositories.RegistryRepository with a
// per-package response map.
type StubRegistryRepository struct {
	Infos map[string]*entities.PackageInfo

	// spy: package names looked up
	LookedUp []string
}

var _ repositories.RegistryRepository = (*StubRegistryRepository)(nil)

func (s *StubRegistryRepository) Lookup(
	_ context.Context,
	name string,
) (*entities.PackageInfo, error) {
	s.LookedUp = append(s.LookedUp, name)
	if info, ok := s.Infos[name]; ok {
		return info, nil
	}
	return nil, fmt.Errorf("package %q not found in registry", name)
}

// SpyPageFetcher implements repositories.PageFetcher with canned page
// text, recording every URL it was asked to fetch.
type SpyPageFetcher struct {
	// Pages maps URL to page text. Unmapped URLs return FetchErr or a
	// not-found error.
	Pages    map[string]string
	FetchErr error

	// spy: URLs fetched, in order
	FetchedURLs []string
	Closed      bool
}

var _ repositories.PageFetcher = (*SpyPageFetcher)(nil)

func (s *SpyPageFetcher) FetchText(_ context.Context, url string) (string, error) {
	s.FetchedURLs = append(s.FetchedURLs, url)
	if text, ok := s.Pages[url]; ok {
		return text, nil
	}
	if s.FetchErr != nil {
		return "", s.FetchErr
	}
	return "", fmt.Errorf("page not found: %s", url)
}

func (s *SpyPageFetcher) Close() error {
	s.Closed = true
	return nil
}

// StubEvidenceRepository implements repositories.EvidenceRepository with a
// per-URL evidence map keyed by normalized URL. Normalization is a
// simplified stand-in: GitHub HTTPS URLs pass through, everything else
// resolves to "".
type StubEvidenceRepository struct {
	Evidence map[string]entities.ReleaseEvidence

	// spy: URLs acquired (normalized), in order
	AcquiredURLs []string
}

var _ repositories.EvidenceRepository = (*StubEvidenceRepository)(nil)

var stubGithubPattern = regexp.MustCompile(`^https://github\.com/[^/]+/[^/]+`)

func (s *StubEvidenceRepository) Normalize(repoURL string) string {
	trimmed := strings.TrimSuffix(repoURL, ".git")
	if stubGithubPattern.MatchString(trimmed) {
		return trimmed
	}
	return ""
}

func (s *StubEvidenceRepository) Acquire(
	_ context.Context,
	repoURL string,
) entities.ReleaseEvidence {
	normalized := s.Normalize(repoURL)
	if normalized == "" {
		return entities.ReleaseEvidence{Verdict: entities.UnknownVerdict()}
	}
	s.AcquiredURLs = append(s.AcquiredURLs, normalized)
	if evidence, ok := s.Evidence[normalized]; ok {
		return evidence
	}
	return entities.ReleaseEvidence{Verdict: entities.UnknownVerdict()}
}

func (s *StubEvidenceRepository) AcquireMany(
	ctx context.Context,
	repoURLs []string,
) map[string]entities.ReleaseEvidence {
	results := make(map[string]entities.ReleaseEvidence)
	for _, raw := range repoURLs {
		normalized := s.Normalize(raw)
		if normalized == "" {
			continue
		}
		if _, done := results[normalized]; done {
			continue
		}
		results[normalized] = s.Acquire(ctx, raw)
	}
	return results
}
