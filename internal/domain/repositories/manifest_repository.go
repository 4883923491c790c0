package repositories

import (
	"context"

	"github.com/rios0rios0/updaterisk/internal/domain/entities"
)

// ManifestRepository abstracts where a package manifest comes from.
// A run-level failure (unreachable repository, missing manifest) is
// returned as an error; the caller never receives invented data.
type ManifestRepository interface {
	// Fetch retrieves and parses the manifest of the given repository.
	// An empty branch means "try the usual defaults".
	Fetch(ctx context.Context, repoURL, branch string) (*entities.Manifest, error)
}
