package gitx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want Status
	}{
		{
			name: "clean with upstream",
			out:  "## main...origin/main\n",
			want: Status{Branch: "main", HasUpstream: true},
		},
		{
			name: "ahead and behind",
			out:  "## main...origin/main [ahead 2, behind 1]\n",
			want: Status{Branch: "main", HasUpstream: true, AheadCount: 2, BehindCount: 1},
		},
		{
			name: "no upstream",
			out:  "## feature/release\n",
			want: Status{Branch: "feature/release"},
		},
		{
			name: "dotted branch name",
			out:  "## release-1.0...origin/release-1.0 [behind 3]\n",
			want: Status{Branch: "release-1.0", HasUpstream: true, BehindCount: 3},
		},
		{
			name: "dotted branch without upstream",
			out:  "## release-1.0\n",
			want: Status{Branch: "release-1.0"},
		},
		{
			name: "mixed changes",
			out: "## main...origin/main\n" +
				"M  CHANGELOG.md\n" +
				" M suseapi/__init__.py\n" +
				"MM cmd/root.go\n" +
				"?? notes.txt\n",
			want: Status{
				Branch:      "main",
				HasUpstream: true,
				Staged:      []string{"CHANGELOG.md", "cmd/root.go"},
				Unstaged:    []string{"suseapi/__init__.py", "cmd/root.go"},
				Untracked:   []string{"notes.txt"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseStatus(tt.out)
			assert.Equal(t, &tt.want, got)
		})
	}
}

func TestStatusIsDirty(t *testing.T) {
	assert.False(t, ParseStatus("## main...origin/main\n").IsDirty())
	assert.True(t, ParseStatus("## main\n M VERSION\n").IsDirty())
	assert.True(t, ParseStatus("## main\n?? junk\n").IsDirty())
}
