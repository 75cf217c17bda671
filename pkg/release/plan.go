// Package release plans and executes a release: version rewrite, changelog
// rewrite, and a commit naming both files, with optional tag and push.
package release

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Bump is a semver increment kind.
type Bump string

const (
	BumpMajor    Bump = "major"
	BumpMinor    Bump = "minor"
	BumpPatch    Bump = "patch"
	BumpExplicit Bump = "explicit"
)

// Plan is everything decided before any file is touched. It serializes to
// JSON for --dry-run inspection and for the interactive picker.
type Plan struct {
	Project        string    `json:"project"`
	CurrentVersion string    `json:"current_version"`
	NextVersion    string    `json:"next_version"`
	Bump           Bump      `json:"bump"`
	VersionFile    string    `json:"version_file"`
	ChangelogFile  string    `json:"changelog_file"`
	CommitMessage  string    `json:"commit_message"`
	Tag            string    `json:"tag,omitempty"`
	Push           bool      `json:"push,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Resolve turns the command-line version argument into a concrete version.
// The argument is either an explicit semver version or one of the bump
// keywords, which increment the current version.
func Resolve(arg, current string) (string, Bump, error) {
	switch Bump(strings.ToLower(arg)) {
	case BumpMajor, BumpMinor, BumpPatch:
		if current == "" {
			return "", "", fmt.Errorf("cannot bump %q: no current version found", arg)
		}
		next, err := NextVersion(current, Bump(strings.ToLower(arg)))
		if err != nil {
			return "", "", err
		}
		return next, Bump(strings.ToLower(arg)), nil
	}

	// Validate only. The literal argument is what gets written, so "0.25"
	// stays "0.25" instead of the normalized "0.25.0".
	literal := strings.TrimPrefix(arg, "v")
	if _, err := semver.NewVersion(literal); err != nil {
		return "", "", fmt.Errorf("invalid version %q: %w", arg, err)
	}
	return literal, BumpExplicit, nil
}

// NextVersion increments current by the given bump kind.
func NextVersion(current string, bump Bump) (string, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return "", fmt.Errorf("invalid current version %q: %w", current, err)
	}

	var next semver.Version
	switch bump {
	case BumpMajor:
		next = v.IncMajor()
	case BumpMinor:
		next = v.IncMinor()
	case BumpPatch:
		next = v.IncPatch()
	default:
		return "", fmt.Errorf("unknown bump kind %q", bump)
	}
	return next.String(), nil
}

// Increment classifies the jump from current to next for display.
func Increment(current, next string) string {
	if current == "" {
		return "initial"
	}
	cv, err1 := semver.NewVersion(strings.TrimPrefix(current, "v"))
	nv, err2 := semver.NewVersion(strings.TrimPrefix(next, "v"))
	if err1 != nil || err2 != nil {
		return "update"
	}
	switch {
	case cv.Major() != nv.Major():
		return "major"
	case cv.Minor() != nv.Minor():
		return "minor"
	case cv.Patch() != nv.Patch():
		return "patch"
	}
	return "-"
}
