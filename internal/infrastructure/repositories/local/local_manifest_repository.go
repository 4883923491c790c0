package local

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"

	"github.com/rios0rios0/updaterisk/internal/domain/entities"
)

// LocalManifestRepository reads the package.json of a checked-out
// project directory.
type LocalManifestRepository struct{}

func NewLocalManifestRepository() *LocalManifestRepository {
	return &LocalManifestRepository{}
}

// Read parses the manifest at <directory>/package.json.
func (r *LocalManifestRepository) Read(directory string) (*entities.Manifest, error) {
	path := filepath.Join(directory, "package.json")

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest at %q: %w", path, err)
	}

	var manifest entities.Manifest
	if err = json.Unmarshal(contents, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest at %q: %w", path, err)
	}
	return &manifest, nil
}

// RemoteInfo reports the origin URL and current branch of the working
// copy, when the directory is a Git repository.
func (r *LocalManifestRepository) RemoteInfo(directory string) (string, string, error) {
	repository, err := git.PlainOpen(directory)
	if err != nil {
		return "", "", fmt.Errorf("failed to open repository at %q: %w", directory, err)
	}

	remote, err := repository.Remote("origin")
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", fmt.Errorf("origin remote has no URL configured")
	}

	head, err := repository.Head()
	if err != nil {
		return urls[0], "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return urls[0], head.Name().Short(), nil
}
