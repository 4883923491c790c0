package entities

import "sort"

// Manifest is the parsed dependency-declaration file of a package
// (package.json shape).
type Manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// ExtractDependencies flattens the manifest into a dependency list,
// production entries first. Within each category the entries are sorted
// by name so a given manifest always yields the same ordering.
func (m *Manifest) ExtractDependencies(includeDev bool) []Dependency {
	deps := make([]Dependency, 0, len(m.Dependencies)+len(m.DevDependencies))

	deps = append(deps, categoryDependencies(m.Dependencies, CategoryProduction)...)
	if includeDev {
		deps = append(deps, categoryDependencies(m.DevDependencies, CategoryDevelopment)...)
	}

	return deps
}

func categoryDependencies(declared map[string]string, category DependencyCategory) []Dependency {
	names := make([]string, 0, len(declared))
	for name := range declared {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make([]Dependency, 0, len(names))
	for _, name := range names {
		deps = append(deps, Dependency{
			Name:     name,
			Range:    declared[name],
			Category: category,
		})
	}
	return deps
}
