// Package changelog rewrites the head of a changelog file for a release.
// The new file is the section header for the released version followed by
// all prior entries; whatever sat above the first prior section header
// (title lines, "unreleased" placeholders) is discarded.
package changelog

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Style is the section header convention used by a changelog.
type Style string

const (
	// StyleAuto detects the style from existing entries, defaulting to
	// StyleMarkdown for empty or headerless files.
	StyleAuto Style = "auto"
	// StyleMarkdown writes "## 2.3.1 - 2006-01-02" headers.
	StyleMarkdown Style = "markdown"
	// StyleUnderline writes "2.3.1" underlined with dashes.
	StyleUnderline Style = "underline"
)

// markdownHeaderRe accepts both plain headers ("## 1.0.0 - date") and the
// keep-a-changelog bracket form ("## [1.0.0] - date").
var (
	markdownHeaderRe  = regexp.MustCompile(`^##\s+\[?v?(\d+[^\s\]]*)\]?`)
	underlineTextRe   = regexp.MustCompile(`^v?(\d+[^\s]*)\s*$`)
	underlineDashesRe = regexp.MustCompile(`^[-=~]{3,}\s*$`)
)

// Section is a parsed section header.
type Section struct {
	Version string
	Line    int // 0-based index of the header's first line
	Style   Style
}

// FirstSection returns the first section header in the given lines, or nil
// when the file has none.
func FirstSection(lines []string) *Section {
	for i, line := range lines {
		if m := markdownHeaderRe.FindStringSubmatch(line); m != nil {
			return &Section{Version: m[1], Line: i, Style: StyleMarkdown}
		}
		if i+1 < len(lines) && underlineDashesRe.MatchString(lines[i+1]) {
			if m := underlineTextRe.FindStringSubmatch(line); m != nil {
				return &Section{Version: m[1], Line: i, Style: StyleUnderline}
			}
		}
	}
	return nil
}

// Header renders a section header for version in the given style.
func Header(style Style, version string, date time.Time) string {
	switch style {
	case StyleUnderline:
		return version + "\n" + strings.Repeat("-", len(version))
	default:
		return fmt.Sprintf("## %s - %s", version, date.Format("2006-01-02"))
	}
}

// Rewrite replaces the head of the changelog at path with a section header
// for version, keeping all prior entries. body, when non-empty, becomes the
// first content under the new header. A missing or blank file is treated as
// empty; a non-empty file with no recognizable section header is an error,
// never silently discarded.
//
// The rewrite goes through a temporary file in the same directory which is
// renamed into place; on any failure the temporary file is removed, so no
// temp file survives the call. If the top section already names version the
// file is left untouched.
func Rewrite(path, version string, style Style, body string, date time.Time) error {
	version = strings.TrimPrefix(version, "v")

	var lines []string
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		lines = strings.Split(string(data), "\n")
	case os.IsNotExist(err):
		lines = nil
	default:
		return fmt.Errorf("reading %s: %w", path, err)
	}

	first := FirstSection(lines)
	if first != nil && first.Version == version {
		// Already released at the head; rerunning must not stack sections.
		return nil
	}
	if first == nil && !blank(lines) {
		// Discarding content is only safe above a recognized section header.
		// An unrecognized format must never be thrown away wholesale.
		return fmt.Errorf("%s has no recognizable version section; refusing to rewrite it", path)
	}

	if style == StyleAuto || style == "" {
		style = StyleMarkdown
		if first != nil {
			style = first.Style
		}
	}

	var b strings.Builder
	b.WriteString(Header(style, version, date))
	b.WriteString("\n\n")
	if body != "" {
		b.WriteString(strings.TrimRight(body, "\n"))
		b.WriteString("\n\n")
	}
	if first != nil {
		b.WriteString(strings.Join(lines[first.Line:], "\n"))
	}

	return writeViaTemp(path, []byte(b.String()))
}

func blank(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}

// writeViaTemp writes data to path atomically through a sibling temp file.
func writeViaTemp(path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("setting mode on %s: %w", tmpName, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
