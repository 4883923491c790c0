package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/go-github/v66/github"
	"github.com/hashicorp/go-retryablehttp"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/updaterisk/internal/domain/entities"
)

const defaultRawBaseURL = "https://raw.githubusercontent.com"

var repoURLPattern = regexp.MustCompile(`(?:https?://)?(?:www\.)?github\.com/([^/]+)/([^/]+)`)

// GitHubManifestRepository fetches a repository's package.json, trying
// the common default branches before asking the API which branch is the
// actual default.
type GitHubManifestRepository struct {
	api        *github.Client
	client     *retryablehttp.Client
	rawBaseURL string
}

// NewGitHubManifestRepository creates a repository using the configured
// token when one is present. Unauthenticated access works for public
// repositories at a lower rate limit.
func NewGitHubManifestRepository(settings *entities.Settings) *GitHubManifestRepository {
	api := github.NewClient(nil)
	if settings.GitHub.Token != "" {
		api = api.WithAuthToken(settings.GitHub.Token)
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil

	return &GitHubManifestRepository{
		api:        api,
		client:     client,
		rawBaseURL: defaultRawBaseURL,
	}
}

// Fetch downloads and parses package.json from the repository. When no
// branch is given it tries "main" then "master", then falls back to the
// default branch reported by the API.
func (r *GitHubManifestRepository) Fetch(
	ctx context.Context,
	repoURL string,
	branch string,
) (*entities.Manifest, error) {
	owner, name, err := parseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}

	candidates := branchCandidates(branch)
	for _, candidate := range candidates {
		manifest, fetchErr := r.tryBranch(ctx, owner, name, candidate)
		if fetchErr == nil {
			return manifest, nil
		}
		logger.Debugf("No manifest on %s/%s@%s: %v", owner, name, candidate, fetchErr)
	}

	defaultBranch, err := r.defaultBranch(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default branch for %s/%s: %w", owner, name, err)
	}
	for _, candidate := range candidates {
		if candidate == defaultBranch {
			return nil, fmt.Errorf("no package.json found in %s/%s", owner, name)
		}
	}

	manifest, err := r.tryBranch(ctx, owner, name, defaultBranch)
	if err != nil {
		return nil, fmt.Errorf("no package.json found in %s/%s: %w", owner, name, err)
	}
	return manifest, nil
}

func (r *GitHubManifestRepository) tryBranch(
	ctx context.Context,
	owner, name, branch string,
) (*entities.Manifest, error) {
	endpoint := fmt.Sprintf("%s/%s/%s/%s/package.json", r.rawBaseURL, owner, name, branch)

	request, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build manifest request: %w", err)
	}

	response, err := r.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to download manifest: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", response.StatusCode)
	}

	var manifest entities.Manifest
	if err = json.NewDecoder(response.Body).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &manifest, nil
}

func (r *GitHubManifestRepository) defaultBranch(
	ctx context.Context,
	owner, name string,
) (string, error) {
	repository, _, err := r.api.Repositories.Get(ctx, owner, name)
	if err != nil {
		return "", err
	}
	return repository.GetDefaultBranch(), nil
}

func branchCandidates(branch string) []string {
	candidates := []string{"main", "master"}
	if branch == "" {
		return candidates
	}

	deduped := []string{branch}
	for _, candidate := range candidates {
		if candidate != branch {
			deduped = append(deduped, candidate)
		}
	}
	return deduped
}

func parseRepoURL(repoURL string) (string, string, error) {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(repoURL, "/"), ".git")
	matches := repoURLPattern.FindStringSubmatch(trimmed)
	if matches == nil {
		return "", "", fmt.Errorf("unsupported repository URL: %q", repoURL)
	}
	return matches[1], matches[2], nil
}
