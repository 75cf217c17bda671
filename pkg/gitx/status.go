package gitx

import (
	"regexp"
	"strconv"
	"strings"
)

// Status is the parsed result of `git status --porcelain --branch`.
type Status struct {
	Branch      string
	HasUpstream bool
	AheadCount  int
	BehindCount int
	Staged      []string
	Unstaged    []string
	Untracked   []string
}

// IsDirty reports whether the working tree has any local changes.
func (s *Status) IsDirty() bool {
	return len(s.Staged) > 0 || len(s.Unstaged) > 0 || len(s.Untracked) > 0
}

// The branch group is lazy so "..." separates branch from upstream even
// when the branch name itself contains dots (release-1.0).
var branchHeaderRe = regexp.MustCompile(`^## (\S+?)(?:\.\.\.(\S+))?(?: \[(.+)\])?$`)

// ParseStatus parses porcelain v1 output with a branch header. It is a pure
// function so the classification rules stay testable without a repository.
func ParseStatus(out string) *Status {
	s := &Status{}
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "## ") {
			if m := branchHeaderRe.FindStringSubmatch(line); m != nil {
				s.Branch = m[1]
				s.HasUpstream = m[2] != ""
				for _, part := range strings.Split(m[3], ", ") {
					if n, ok := strings.CutPrefix(part, "ahead "); ok {
						s.AheadCount, _ = strconv.Atoi(n)
					}
					if n, ok := strings.CutPrefix(part, "behind "); ok {
						s.BehindCount, _ = strconv.Atoi(n)
					}
				}
			}
			continue
		}

		if len(line) < 4 {
			continue
		}
		x, y, path := line[0], line[1], line[3:]
		switch {
		case x == '?' && y == '?':
			s.Untracked = append(s.Untracked, path)
		default:
			if x != ' ' {
				s.Staged = append(s.Staged, path)
			}
			if y != ' ' {
				s.Unstaged = append(s.Unstaged, path)
			}
		}
	}
	return s
}
