package releasenotes

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/updaterisk/internal/domain/entities"
	"github.com/rios0rios0/updaterisk/internal/domain/repositories"
)

// notesSnippetLimit bounds the release-notes excerpt kept on each report
// item for explainability.
const notesSnippetLimit = 500

var (
	// githubRepoPattern accepts only canonical owner/repo paths after
	// normalization; anything else is not fetched.
	githubRepoPattern = regexp.MustCompile(`^https://github\.com/[^/]+/[^/]+`)

	// sshRemotePattern recognizes SSH-style host references
	// (git@github.com:owner/repo or ssh://git@github.com/owner/repo).
	sshRemotePattern = regexp.MustCompile(`^(?:ssh://)?git@github\.com[:/]([^/]+/[^/]+)`)
)

// ReleaseNotesEvidenceRepository obtains breaking-change evidence by
// fetching the releases page of a source repository and classifying its
// text. Both single and batch acquisition funnel through the same fetch
// path; the injected PageFetcher enforces the single-in-flight ceiling.
type ReleaseNotesEvidenceRepository struct {
	fetcher repositories.PageFetcher
}

// NewReleaseNotesEvidenceRepository creates a repository backed by the
// given page fetcher.
func NewReleaseNotesEvidenceRepository(
	fetcher repositories.PageFetcher,
) *ReleaseNotesEvidenceRepository {
	return &ReleaseNotesEvidenceRepository{fetcher: fetcher}
}

// Normalize resolves a raw repository reference to its canonical HTTPS
// form: version-control prefixes and source-archive suffixes are
// stripped, SSH-style references become HTTPS, and anything that does not
// end up as a recognized repository path yields "".
func (r *ReleaseNotesEvidenceRepository) Normalize(repoURL string) string {
	if repoURL == "" {
		return ""
	}

	cleaned := strings.TrimPrefix(repoURL, "git+")
	cleaned = strings.TrimPrefix(cleaned, "git://")
	cleaned = strings.TrimSuffix(cleaned, "/")
	cleaned = strings.TrimSuffix(cleaned, ".git")

	if m := sshRemotePattern.FindStringSubmatch(cleaned); m != nil {
		cleaned = "https://github.com/" + m[1]
	}

	if !strings.HasPrefix(cleaned, "http://") && !strings.HasPrefix(cleaned, "https://") {
		if !strings.Contains(cleaned, "github.com") {
			return ""
		}
		cleaned = "https://" + cleaned
	}
	cleaned = strings.Replace(cleaned, "http://", "https://", 1)

	if !githubRepoPattern.MatchString(cleaned) {
		return ""
	}
	return cleaned
}

// Acquire fetches and classifies the release notes of one repository.
// Unrecognized URLs and fetch failures degrade to the default unknown
// verdict without aborting the caller's run.
func (r *ReleaseNotesEvidenceRepository) Acquire(
	ctx context.Context,
	repoURL string,
) entities.ReleaseEvidence {
	normalized := r.Normalize(repoURL)
	if normalized == "" {
		return entities.ReleaseEvidence{Verdict: entities.UnknownVerdict()}
	}
	return r.fetchAndClassify(ctx, normalized)
}

// AcquireMany issues at most one fetch per distinct normalized repository
// URL and returns the evidence keyed by normalized URL.
func (r *ReleaseNotesEvidenceRepository) AcquireMany(
	ctx context.Context,
	repoURLs []string,
) map[string]entities.ReleaseEvidence {
	results := make(map[string]entities.ReleaseEvidence)

	for _, raw := range repoURLs {
		normalized := r.Normalize(raw)
		if normalized == "" {
			continue
		}
		if _, done := results[normalized]; done {
			continue
		}
		results[normalized] = r.fetchAndClassify(ctx, normalized)
	}

	return results
}

func (r *ReleaseNotesEvidenceRepository) fetchAndClassify(
	ctx context.Context,
	normalizedURL string,
) entities.ReleaseEvidence {
	releasesURL := normalizedURL + "/releases"
	logger.Debugf("Visiting releases page: %s", releasesURL)

	text, err := r.fetcher.FetchText(ctx, releasesURL)
	if err != nil {
		logger.Warnf("Release fetch failed for %s: %v", normalizedURL, err)
		return entities.ReleaseEvidence{Verdict: entities.UnknownVerdict()}
	}

	return entities.ReleaseEvidence{
		Verdict:      entities.ClassifyBreakingChange(text),
		NotesSnippet: truncateNotes(text),
	}
}

func truncateNotes(text string) string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) <= notesSnippetLimit {
		return trimmed
	}

	// Back the cut up to a rune boundary so the snippet stays valid UTF-8.
	cut := notesSnippetLimit
	for cut > 0 && !utf8.RuneStart(trimmed[cut]) {
		cut--
	}
	return trimmed[:cut]
}
