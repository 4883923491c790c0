package repositories

import (
	"go.uber.org/dig"

	domain "github.com/rios0rios0/updaterisk/internal/domain/repositories"
	"github.com/rios0rios0/updaterisk/internal/infrastructure/repositories/browser"
	"github.com/rios0rios0/updaterisk/internal/infrastructure/repositories/github"
	"github.com/rios0rios0/updaterisk/internal/infrastructure/repositories/local"
	"github.com/rios0rios0/updaterisk/internal/infrastructure/repositories/npm"
	"github.com/rios0rios0/updaterisk/internal/infrastructure/repositories/releasenotes"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register repository constructors
	if err := container.Provide(browser.NewChromePageFetcher); err != nil {
		return err
	}
	if err := container.Provide(releasenotes.NewReleaseNotesEvidenceRepository); err != nil {
		return err
	}
	if err := container.Provide(npm.NewNpmRegistryRepository); err != nil {
		return err
	}
	if err := container.Provide(github.NewGitHubManifestRepository); err != nil {
		return err
	}
	if err := container.Provide(local.NewLocalManifestRepository); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *browser.ChromePageFetcher) domain.PageFetcher {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(
		func(impl *releasenotes.ReleaseNotesEvidenceRepository) domain.EvidenceRepository {
			return impl
		},
	); err != nil {
		return err
	}
	if err := container.Provide(func(impl *npm.NpmRegistryRepository) domain.RegistryRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *github.GitHubManifestRepository) domain.ManifestRepository {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
