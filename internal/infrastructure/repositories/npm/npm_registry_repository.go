package npm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/updaterisk/internal/domain/entities"
)

const defaultBaseURL = "https://registry.npmjs.org"

// packageDocument is the subset of the registry metadata the engine
// needs. Repository is either a plain string or an object with an "url"
// field depending on how the package was published.
type packageDocument struct {
	DistTags   map[string]string          `json:"dist-tags"`
	Versions   map[string]json.RawMessage `json:"versions"`
	Repository json.RawMessage            `json:"repository"`
}

// NpmRegistryRepository resolves package metadata from the npm registry.
type NpmRegistryRepository struct {
	client  *retryablehttp.Client
	baseURL string
}

// NewNpmRegistryRepository creates a repository configured from the
// registry settings.
func NewNpmRegistryRepository(settings *entities.Settings) *NpmRegistryRepository {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil

	baseURL := settings.Registry.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &NpmRegistryRepository{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Lookup fetches the latest published version and source repository URL
// for a package name (scoped names included).
func (r *NpmRegistryRepository) Lookup(
	ctx context.Context,
	name string,
) (*entities.PackageInfo, error) {
	endpoint := fmt.Sprintf("%s/%s", r.baseURL, url.PathEscape(name))

	request, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry request for %q: %w", name, err)
	}

	response, err := r.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to query registry for %q: %w", name, err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("package %q not found in registry", name)
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected registry status %d for %q", response.StatusCode, name)
	}

	var document packageDocument
	if err = json.NewDecoder(response.Body).Decode(&document); err != nil {
		return nil, fmt.Errorf("failed to decode registry response for %q: %w", name, err)
	}

	latest := document.DistTags["latest"]
	if latest == "" {
		latest = highestVersion(document.Versions)
	}
	if latest == "" {
		return nil, fmt.Errorf("no published versions found for %q", name)
	}

	return &entities.PackageInfo{
		LatestVersion: latest,
		SourceRepoURL: repositoryURL(document.Repository),
	}, nil
}

// highestVersion falls back to the greatest version key when the
// "latest" dist-tag is absent.
func highestVersion(versions map[string]json.RawMessage) string {
	keys := make([]string, 0, len(versions))
	for key := range versions {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return semver.Compare(canonical(keys[i]), canonical(keys[j])) > 0
	})
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

func canonical(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}

func repositoryURL(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var direct string
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct
	}

	var object struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &object); err == nil {
		return object.URL
	}
	return ""
}
