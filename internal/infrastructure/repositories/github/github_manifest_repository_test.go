//go:build unit

package github_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/updaterisk/internal/domain/entities"
	"github.com/rios0rios0/updaterisk/internal/infrastructure/repositories/github"
)

func newRepository(serverURL string) *github.GitHubManifestRepository {
	repo := github.NewGitHubManifestRepository(entities.DefaultSettings())
	repo.SetRawBaseURL(serverURL)
	return repo
}

func TestGitHubManifestRepositoryFetch(t *testing.T) {
	t.Parallel()

	t.Run("should fetch the manifest from the main branch", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/acme/app/main/package.json" {
				_, _ = w.Write([]byte(`{
					"name": "app",
					"dependencies": {"express": "^4.18.0"}
				}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		// when
		manifest, err := newRepository(server.URL).Fetch(
			context.Background(), "https://github.com/acme/app", "",
		)

		// then
		require.NoError(t, err)
		assert.Equal(t, "app", manifest.Name)
		assert.Equal(t, "^4.18.0", manifest.Dependencies["express"])
	})

	t.Run("should fall back to the master branch", func(t *testing.T) {
		// given
		var requestedPaths []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestedPaths = append(requestedPaths, r.URL.Path)
			if r.URL.Path == "/acme/app/master/package.json" {
				_, _ = w.Write([]byte(`{"name": "app"}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		// when
		manifest, err := newRepository(server.URL).Fetch(
			context.Background(), "https://github.com/acme/app", "",
		)

		// then
		require.NoError(t, err)
		assert.Equal(t, "app", manifest.Name)
		assert.Equal(t, []string{
			"/acme/app/main/package.json",
			"/acme/app/master/package.json",
		}, requestedPaths)
	})

	t.Run("should try an explicit branch first", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/acme/app/develop/package.json" {
				_, _ = w.Write([]byte(`{"name": "app-develop"}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		// when
		manifest, err := newRepository(server.URL).Fetch(
			context.Background(), "https://github.com/acme/app", "develop",
		)

		// then
		require.NoError(t, err)
		assert.Equal(t, "app-develop", manifest.Name)
	})

	t.Run("should fail for an unsupported repository URL", func(t *testing.T) {
		// when
		_, err := newRepository("http://unused").Fetch(
			context.Background(), "https://gitlab.com/group/project", "",
		)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported repository URL")
	})
}

func TestParseRepoURL(t *testing.T) {
	t.Parallel()

	t.Run("should accept the common URL shapes", func(t *testing.T) {
		cases := []string{
			"https://github.com/acme/app",
			"http://github.com/acme/app",
			"https://www.github.com/acme/app",
			"github.com/acme/app",
			"https://github.com/acme/app.git",
			"https://github.com/acme/app/",
		}

		for _, input := range cases {
			owner, name, err := github.ParseRepoURL(input)
			require.NoError(t, err, "input: %s", input)
			assert.Equal(t, "acme", owner)
			assert.Equal(t, "app", name)
		}
	})

	t.Run("should reject non-GitHub URLs", func(t *testing.T) {
		// when
		_, _, err := github.ParseRepoURL("https://bitbucket.org/acme/app")

		// then
		require.Error(t, err)
	})
}

func TestBranchCandidates(t *testing.T) {
	t.Parallel()

	t.Run("should not duplicate an explicit default branch", func(t *testing.T) {
		assert.Equal(t, []string{"main", "master"}, github.BranchCandidates("main"))
		assert.Equal(t, []string{"develop", "main", "master"}, github.BranchCandidates("develop"))
		assert.Equal(t, []string{"main", "master"}, github.BranchCandidates(""))
	})
}
