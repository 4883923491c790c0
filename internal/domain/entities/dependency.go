package entities

// DependencyCategory distinguishes runtime dependencies from tooling.
type DependencyCategory string

const (
	CategoryProduction  DependencyCategory = "production"
	CategoryDevelopment DependencyCategory = "development"
)

// Dependency is one declared dependency extracted from a manifest.
// Names are unique within a category, but the same name may appear
// once per category.
type Dependency struct {
	Name     string             // Package name as declared in the manifest
	Range    string             // Declared version range (e.g. "^1.2.3")
	Category DependencyCategory // production or development
}

// PackageInfo is the registry metadata the engine needs for one package.
type PackageInfo struct {
	LatestVersion string // Latest published version, empty if the registry has none
	SourceRepoURL string // Source repository URL as declared in the registry, unnormalized
}
