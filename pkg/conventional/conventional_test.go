package conventional

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		wantType string
		scope    string
		desc     string
		breaking bool
		wantErr  bool
	}{
		{
			name:     "plain feat",
			message:  "feat: add changelog preview",
			wantType: "feat",
			desc:     "add changelog preview",
		},
		{
			name:     "scoped fix",
			message:  "fix(parser): handle empty scope",
			wantType: "fix",
			scope:    "parser",
			desc:     "handle empty scope",
		},
		{
			name:     "breaking bang",
			message:  "feat(api)!: drop the v1 endpoints",
			wantType: "feat",
			scope:    "api",
			desc:     "drop the v1 endpoints",
			breaking: true,
		},
		{
			name:     "breaking footer",
			message:  "refactor: rework config loading\n\nBREAKING CHANGE: keys renamed",
			wantType: "refactor",
			desc:     "rework config loading",
			breaking: true,
		},
		{
			name:     "uppercase type normalized",
			message:  "Fix: normalize me",
			wantType: "fix",
			desc:     "normalize me",
		},
		{
			name:    "not conventional",
			message: "Fixed the thing",
			wantErr: true,
		},
		{
			name:    "empty",
			message: "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.message)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) succeeded, want error", tt.message)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.message, err)
			}
			if c.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", c.Type, tt.wantType)
			}
			if c.Scope != tt.scope {
				t.Errorf("Scope = %q, want %q", c.Scope, tt.scope)
			}
			if c.Description != tt.desc {
				t.Errorf("Description = %q, want %q", c.Description, tt.desc)
			}
			if c.Breaking != tt.breaking {
				t.Errorf("Breaking = %v, want %v", c.Breaking, tt.breaking)
			}
		})
	}
}

func TestParseAllSkipsNonConventional(t *testing.T) {
	commits := ParseAll([]string{
		"feat: one",
		"random merge commit",
		"fix: two",
	})
	if len(commits) != 2 {
		t.Fatalf("got %d commits, want 2", len(commits))
	}
}

func TestGenerate(t *testing.T) {
	commits := ParseAll([]string{
		"chore: tidy the build",
		"feat(cli): add --dry-run",
		"fix: stop eating the changelog",
		"feat!: change the config format",
	})

	body := Generate(commits)

	breakingIdx := strings.Index(body, "### Breaking Changes")
	featIdx := strings.Index(body, "### Features")
	fixIdx := strings.Index(body, "### Bug Fixes")
	otherIdx := strings.Index(body, "### Other Changes")

	if breakingIdx == -1 || featIdx == -1 || fixIdx == -1 || otherIdx == -1 {
		t.Fatalf("missing section in body:\n%s", body)
	}
	if !(breakingIdx < featIdx && featIdx < fixIdx && fixIdx < otherIdx) {
		t.Errorf("sections out of order:\n%s", body)
	}
	if !strings.Contains(body, "**cli:** add --dry-run") {
		t.Errorf("scoped entry missing:\n%s", body)
	}
	if strings.Count(body, "change the config format") != 1 {
		t.Errorf("breaking commit must appear exactly once:\n%s", body)
	}
}

func TestGenerateEmpty(t *testing.T) {
	if got := Generate(nil); got != "" {
		t.Errorf("Generate(nil) = %q, want empty", got)
	}
}
