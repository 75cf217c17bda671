// Package bumper locates and rewrites version declaration lines in source
// files. Only the declaration line changes; every other byte in the file is
// preserved, including the trailing-newline state.
package bumper

import (
	"fmt"
	"os"
	"strings"
)

// Match is a version declaration found in a file.
type Match struct {
	File    string
	Line    int // 1-based
	Pattern string
	Prefix  string
	Version string // without the leading "v"
	Suffix  string
	HasV    bool // declaration carried a "v" prefix
}

// ErrNoMatch is returned when a file contains no recognizable version
// declaration line.
type ErrNoMatch struct {
	File string
}

func (e *ErrNoMatch) Error() string {
	return fmt.Sprintf("no version declaration found in %s", e.File)
}

// Find returns every version declaration in the file, in line order.
func Find(path string) ([]Match, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var matches []Match
	for i, line := range strings.Split(string(data), "\n") {
		for _, p := range DeclarationPatterns {
			m := p.Regexp.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			matches = append(matches, Match{
				File:    path,
				Line:    i + 1,
				Pattern: p.Name,
				Prefix:  m[1],
				Version: m[2],
				Suffix:  m[3],
				HasV:    strings.HasPrefix(line[len(m[1]):], "v"),
			})
			break // one declaration per line
		}
	}
	return matches, nil
}

// FindDeclaration returns the primary version declaration: the first line
// that matches any pattern. This keeps dependency pins and other later
// version strings untouched.
func FindDeclaration(path string) (*Match, error) {
	matches, err := Find(path)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, &ErrNoMatch{File: path}
	}
	return &matches[0], nil
}

// Rewritten returns the declaration line rewritten to carry version. The
// "v" prefix is kept if the original declaration had one.
func (m *Match) Rewritten(version string) string {
	v := strings.TrimPrefix(version, "v")
	if m.HasV {
		v = "v" + v
	}
	return m.Prefix + v + m.Suffix
}

// Bump rewrites the primary version declaration in the file to the given
// version. Exactly one line changes. Bumping to the version already present
// rewrites the line to identical content, so the operation is idempotent at
// the file level.
func Bump(path, version string) (*Match, error) {
	m, err := FindDeclaration(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	if m.Line > len(lines) {
		return nil, fmt.Errorf("declaration line %d out of range in %s", m.Line, path)
	}
	lines[m.Line-1] = m.Rewritten(version)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	return m, nil
}
