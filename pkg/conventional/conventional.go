// Package conventional parses conventional commit messages and renders
// changelog section bodies from them.
package conventional

import (
	"fmt"
	"regexp"
	"strings"
)

// Commit is a parsed conventional commit message.
type Commit struct {
	Type        string
	Scope       string
	Description string
	Body        string
	Breaking    bool
}

var headerRe = regexp.MustCompile(`^(\w+)(?:\(([^)]*)\))?(!)?:\s+(.+)$`)

// Parse parses a full commit message. It returns an error when the subject
// line does not follow the type(scope): description form.
func Parse(message string) (*Commit, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("empty commit message")
	}

	subject, body, _ := strings.Cut(message, "\n")
	m := headerRe.FindStringSubmatch(strings.TrimSpace(subject))
	if m == nil {
		return nil, fmt.Errorf("not a conventional commit: %q", subject)
	}

	c := &Commit{
		Type:        strings.ToLower(m[1]),
		Scope:       m[2],
		Description: m[4],
		Body:        strings.TrimSpace(body),
		Breaking:    m[3] == "!",
	}
	if strings.Contains(c.Body, "BREAKING CHANGE:") || strings.Contains(c.Body, "BREAKING-CHANGE:") {
		c.Breaking = true
	}
	return c, nil
}

// ParseAll parses every message, silently skipping non-conventional ones.
func ParseAll(messages []string) []*Commit {
	var commits []*Commit
	for _, msg := range messages {
		if c, err := Parse(msg); err == nil {
			commits = append(commits, c)
		}
	}
	return commits
}

// sectionOrder fixes the heading order in generated bodies. Types not
// listed here are grouped under "Other Changes".
var sectionOrder = []struct {
	types   []string
	heading string
}{
	{[]string{"feat"}, "Features"},
	{[]string{"fix"}, "Bug Fixes"},
	{[]string{"perf"}, "Performance"},
	{[]string{"docs"}, "Documentation"},
	{[]string{"refactor", "style", "test", "build", "ci", "chore"}, "Other Changes"},
}

// Generate renders a markdown changelog body from the given commits.
// Breaking changes always come first. Returns "" for no commits.
func Generate(commits []*Commit) string {
	if len(commits) == 0 {
		return ""
	}

	var b strings.Builder

	var breaking []*Commit
	for _, c := range commits {
		if c.Breaking {
			breaking = append(breaking, c)
		}
	}
	if len(breaking) > 0 {
		b.WriteString("### Breaking Changes\n\n")
		for _, c := range breaking {
			b.WriteString("- " + entry(c) + "\n")
		}
		b.WriteString("\n")
	}

	for _, sec := range sectionOrder {
		var group []*Commit
		for _, c := range commits {
			if c.Breaking {
				continue
			}
			for _, t := range sec.types {
				if c.Type == t {
					group = append(group, c)
					break
				}
			}
		}
		if len(group) == 0 {
			continue
		}
		b.WriteString("### " + sec.heading + "\n\n")
		for _, c := range group {
			b.WriteString("- " + entry(c) + "\n")
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func entry(c *Commit) string {
	if c.Scope != "" {
		return fmt.Sprintf("**%s:** %s", c.Scope, c.Description)
	}
	return c.Description
}
