package internal

import (
	logger "github.com/sirupsen/logrus"
	"go.uber.org/dig"

	"github.com/rios0rios0/updaterisk/internal/domain/commands"
	"github.com/rios0rios0/updaterisk/internal/domain/entities"
	domainrepo "github.com/rios0rios0/updaterisk/internal/domain/repositories"
	"github.com/rios0rios0/updaterisk/internal/infrastructure/controllers"
	"github.com/rios0rios0/updaterisk/internal/infrastructure/repositories"
)

// AppInternal holds the wired application: the CLI controllers plus the
// resources that need an orderly shutdown.
type AppInternal struct {
	controllers *[]entities.Controller
	fetcher     domainrepo.PageFetcher
}

// NewAppInternal creates the application root from the container-built
// collaborators.
func NewAppInternal(
	controllerList *[]entities.Controller,
	fetcher domainrepo.PageFetcher,
) *AppInternal {
	return &AppInternal{
		controllers: controllerList,
		fetcher:     fetcher,
	}
}

// GetControllers returns all registered CLI controllers.
func (it *AppInternal) GetControllers() []entities.Controller {
	return *it.controllers
}

// Shutdown releases held resources, currently the headless browser.
func (it *AppInternal) Shutdown() {
	if err := it.fetcher.Close(); err != nil {
		logger.Warnf("Failed to close page fetcher: %v", err)
	}
}

// RegisterProviders registers all internal providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register all layers (bottom-up: infrastructure repos -> domain entities -> domain commands -> controllers)
	if err := repositories.RegisterProviders(container); err != nil {
		return err
	}
	if err := entities.RegisterProviders(container); err != nil {
		return err
	}
	if err := commands.RegisterProviders(container); err != nil {
		return err
	}
	if err := controllers.RegisterProviders(container); err != nil {
		return err
	}

	// Register the main app internal
	if err := container.Provide(NewAppInternal); err != nil {
		return err
	}

	return nil
}
