//go:build unit

package npm_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/updaterisk/internal/domain/entities"
	"github.com/rios0rios0/updaterisk/internal/infrastructure/repositories/npm"
)

func newRepository(serverURL string) *npm.NpmRegistryRepository {
	settings := entities.DefaultSettings()
	settings.Registry.BaseURL = serverURL
	return npm.NewNpmRegistryRepository(settings)
}

func TestNpmRegistryRepositoryLookup(t *testing.T) {
	t.Parallel()

	t.Run("should resolve the latest dist-tag and repository URL", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/express", r.URL.Path)
			_, _ = w.Write([]byte(`{
				"dist-tags": {"latest": "5.0.0"},
				"repository": {"url": "git+https://github.com/expressjs/express.git"}
			}`))
		}))
		defer server.Close()

		// when
		info, err := newRepository(server.URL).Lookup(context.Background(), "express")

		// then
		require.NoError(t, err)
		assert.Equal(t, "5.0.0", info.LatestVersion)
		assert.Equal(t, "git+https://github.com/expressjs/express.git", info.SourceRepoURL)
	})

	t.Run("should accept a plain string repository field", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{
				"dist-tags": {"latest": "1.0.0"},
				"repository": "github.com/acme/tool"
			}`))
		}))
		defer server.Close()

		// when
		info, err := newRepository(server.URL).Lookup(context.Background(), "tool")

		// then
		require.NoError(t, err)
		assert.Equal(t, "github.com/acme/tool", info.SourceRepoURL)
	})

	t.Run("should escape scoped package names", func(t *testing.T) {
		// given
		var requestedPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestedPath = r.URL.EscapedPath()
			_, _ = w.Write([]byte(`{"dist-tags": {"latest": "2.0.0"}}`))
		}))
		defer server.Close()

		// when
		info, err := newRepository(server.URL).Lookup(context.Background(), "@types/node")

		// then
		require.NoError(t, err)
		assert.Equal(t, "/@types%2Fnode", requestedPath)
		assert.Equal(t, "2.0.0", info.LatestVersion)
		assert.Empty(t, info.SourceRepoURL)
	})

	t.Run("should fall back to the highest version key without a latest tag", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{
				"versions": {"1.0.0": {}, "2.1.0": {}, "2.0.3": {}}
			}`))
		}))
		defer server.Close()

		// when
		info, err := newRepository(server.URL).Lookup(context.Background(), "legacy")

		// then
		require.NoError(t, err)
		assert.Equal(t, "2.1.0", info.LatestVersion)
	})

	t.Run("should report a missing package", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		// when
		_, err := newRepository(server.URL).Lookup(context.Background(), "ghost")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("should fail for a document without versions", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		// when
		_, err := newRepository(server.URL).Lookup(context.Background(), "empty")

		// then
		require.Error(t, err)
	})
}
