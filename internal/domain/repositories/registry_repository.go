package repositories

import (
	"context"

	"github.com/rios0rios0/updaterisk/internal/domain/entities"
)

// RegistryRepository abstracts a package registry: given a package name,
// it returns the latest published version and the source repository URL.
type RegistryRepository interface {
	Lookup(ctx context.Context, name string) (*entities.PackageInfo, error)
}
