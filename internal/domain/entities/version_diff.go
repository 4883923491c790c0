package entities

import (
	"regexp"

	semver "github.com/Masterminds/semver/v3"
)

// DiffKind is the coarsest version component that differs between the
// resolved baseline of a range and a target version.
type DiffKind string

const (
	DiffMajor   DiffKind = "major"
	DiffMinor   DiffKind = "minor"
	DiffPatch   DiffKind = "patch"
	DiffSame    DiffKind = "same"
	DiffUnknown DiffKind = "unknown"
)

// VersionDiff classifies the distance between a declared version range
// and a target version. Kind is DiffUnknown exactly when the range could
// not be resolved or the target version is invalid; ResolvedBaseline is
// kept whenever the range itself was valid.
type VersionDiff struct {
	Kind             DiffKind `json:"kind"`
	ResolvedBaseline string   `json:"resolvedBaseline,omitempty"`
}

// versionLiteralPattern extracts the concrete versions embedded in a
// range string ("^1.2.3" -> "1.2.3", "^2.0.0 || ^1.0.0" -> both bounds).
var versionLiteralPattern = regexp.MustCompile(
	`\d+(\.\d+){0,2}(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`,
)

// ClassifyVersionDiff resolves versionRange to its minimal satisfying
// version and classifies the distance to targetVersion, comparing major,
// then minor, then patch. It never fails: unparseable input degrades to
// DiffUnknown.
func ClassifyVersionDiff(versionRange, targetVersion string) VersionDiff {
	baseline := resolveBaseline(versionRange)
	if baseline == nil {
		return VersionDiff{Kind: DiffUnknown}
	}

	target, err := semver.NewVersion(targetVersion)
	if err != nil {
		return VersionDiff{Kind: DiffUnknown, ResolvedBaseline: baseline.String()}
	}

	diff := VersionDiff{ResolvedBaseline: baseline.String()}
	switch {
	case baseline.Major() != target.Major():
		diff.Kind = DiffMajor
	case baseline.Minor() != target.Minor():
		diff.Kind = DiffMinor
	case baseline.Patch() != target.Patch():
		diff.Kind = DiffPatch
	default:
		diff.Kind = DiffSame
	}
	return diff
}

// resolveBaseline computes the minimal concrete version satisfying the
// range, or nil when the range is invalid or admits no version. Every
// version literal in the range is a candidate, as are its patch, minor,
// and major bumps (exclusive bounds like ">1.2.3" admit the next step,
// not the literal itself), plus 0.0.0 for ranges bounded only from
// above; the smallest accepted candidate wins, so union ranges resolve
// to their lowest branch regardless of spelling order.
func resolveBaseline(versionRange string) *semver.Version {
	constraint, err := semver.NewConstraint(versionRange)
	if err != nil {
		return nil
	}

	literals := versionLiteralPattern.FindAllString(versionRange, -1)
	literals = append(literals, "0.0.0")

	var minimal *semver.Version
	for _, literal := range literals {
		candidate, parseErr := semver.NewVersion(literal)
		if parseErr != nil {
			continue
		}
		for _, next := range []semver.Version{
			*candidate,
			candidate.IncPatch(),
			candidate.IncMinor(),
			candidate.IncMajor(),
		} {
			version := next
			if !constraint.Check(&version) {
				continue
			}
			if minimal == nil || version.LessThan(minimal) {
				minimal = &version
			}
		}
	}

	return minimal
}
