package model

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// UpdateType classifies the semantic-version impact of a dependency update
type UpdateType string

const (
	UpdateTypeMajor   UpdateType = "major"
	UpdateTypeMinor   UpdateType = "minor"
	UpdateTypePatch   UpdateType = "patch"
	UpdateTypeUnknown UpdateType = "unknown"
)

// ParseUpdateType maps a free-form string to an UpdateType.
// Anything unrecognized becomes UpdateTypeUnknown, never UpdateTypePatch.
func ParseUpdateType(s string) UpdateType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major":
		return UpdateTypeMajor
	case "minor":
		return UpdateTypeMinor
	case "patch":
		return UpdateTypePatch
	default:
		return UpdateTypeUnknown
	}
}

// ClassifyUpdate determines the update type from a version pair.
// Unparseable versions, downgrades and no-op bumps all classify as unknown.
func ClassifyUpdate(fromVersion, toVersion string) UpdateType {
	from, err := semver.NewVersion(fromVersion)
	if err != nil {
		return UpdateTypeUnknown
	}
	to, err := semver.NewVersion(toVersion)
	if err != nil {
		return UpdateTypeUnknown
	}

	if !to.GreaterThan(from) {
		return UpdateTypeUnknown
	}

	switch {
	case to.Major() != from.Major():
		return UpdateTypeMajor
	case to.Minor() != from.Minor():
		return UpdateTypeMinor
	default:
		return UpdateTypePatch
	}
}

// MergeMethod is the merge strategy attached to an approve-and-merge decision
type MergeMethod string

const (
	MergeMethodMerge  MergeMethod = "merge"
	MergeMethodSquash MergeMethod = "squash"
	MergeMethodRebase MergeMethod = "rebase"

	// MergeMethodInvalid marks an unrecognized configuration value.
	// Config validation rejects it before any evaluation runs.
	MergeMethodInvalid MergeMethod = ""
)

// ParseMergeMethod maps a free-form string to a MergeMethod
func ParseMergeMethod(s string) MergeMethod {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "merge":
		return MergeMethodMerge
	case "squash":
		return MergeMethodSquash
	case "rebase":
		return MergeMethodRebase
	default:
		return MergeMethodInvalid
	}
}

// UpdateRequest is one automated dependency-update proposal under evaluation.
// It is a single-use immutable value constructed fresh per evaluation.
type UpdateRequest struct {
	PackageName   string     // Ecosystem-qualified, e.g. "npm:left-pad"
	UpdateType    UpdateType // Classified before evaluation; ambiguity is "unknown"
	Ecosystem     string     // e.g. "npm", "pip", "cargo"
	IsSecurityFix bool       // True if the update remediates a known vulnerability
	SourceActor   string     // Proposing automation; verified by the caller, not the engine
}
