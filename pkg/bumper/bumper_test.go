package bumper

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindDeclaration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		version string
		line    int
		pattern string
	}{
		{
			name:    "python dunder",
			content: "# comment\n__version__ = '1.2.3'\n",
			version: "1.2.3",
			line:    2,
			pattern: "python dunder version",
		},
		{
			name:    "uppercase assignment",
			content: "VERSION = \"0.9.0\"\n",
			version: "0.9.0",
			line:    1,
			pattern: "VERSION assignment",
		},
		{
			name:    "go const",
			content: "package version\n\nconst Version = \"2.0.0\"\n",
			version: "2.0.0",
			line:    3,
			pattern: "go version const",
		},
		{
			name:    "json field",
			content: "{\n  \"name\": \"app\",\n  \"version\": \"3.1.4\"\n}\n",
			version: "3.1.4",
			line:    3,
			pattern: "json version field",
		},
		{
			name:    "bare version file",
			content: "4.5.6\n",
			version: "4.5.6",
			line:    1,
			pattern: "bare version file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "f", tt.content)
			m, err := FindDeclaration(path)
			if err != nil {
				t.Fatalf("FindDeclaration: %v", err)
			}
			if m.Version != tt.version {
				t.Errorf("Version = %q, want %q", m.Version, tt.version)
			}
			if m.Line != tt.line {
				t.Errorf("Line = %d, want %d", m.Line, tt.line)
			}
			if m.Pattern != tt.pattern {
				t.Errorf("Pattern = %q, want %q", m.Pattern, tt.pattern)
			}
		})
	}
}

func TestFindDeclarationNoMatch(t *testing.T) {
	path := writeFile(t, "f", "nothing to see here\n")
	_, err := FindDeclaration(path)
	if err == nil {
		t.Fatal("expected error for file without declaration")
	}
	var noMatch *ErrNoMatch
	if !errors.As(err, &noMatch) {
		t.Errorf("expected ErrNoMatch, got %T", err)
	}
}

func TestBumpChangesOnlyDeclarationLine(t *testing.T) {
	content := "# suseapi package\n__version__ = '0.24'\nAUTHOR = 'somebody'\nURL = 'https://example.com/v1.0.0/docs'\n"
	path := writeFile(t, "__init__.py", content)

	m, err := Bump(path, "2.3.1")
	if err != nil {
		t.Fatalf("Bump: %v", err)
	}
	if m.Line != 2 {
		t.Errorf("bumped line = %d, want 2", m.Line)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "# suseapi package\n__version__ = '2.3.1'\nAUTHOR = 'somebody'\nURL = 'https://example.com/v1.0.0/docs'\n"
	if string(got) != want {
		t.Errorf("file after bump:\n%s\nwant:\n%s", got, want)
	}
}

func TestBumpIdempotent(t *testing.T) {
	path := writeFile(t, "version.go", "package v\n\nconst Version = \"1.0.0\"\n")

	if _, err := Bump(path, "1.1.0"); err != nil {
		t.Fatal(err)
	}
	first, _ := os.ReadFile(path)

	if _, err := Bump(path, "1.1.0"); err != nil {
		t.Fatal(err)
	}
	second, _ := os.ReadFile(path)

	if string(first) != string(second) {
		t.Error("second bump with same version changed the file")
	}
}

func TestBumpKeepsVPrefix(t *testing.T) {
	path := writeFile(t, "version.go", "const Version = \"v1.2.3\"\n")

	if _, err := Bump(path, "1.3.0"); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(path)
	if !strings.Contains(string(got), "\"v1.3.0\"") {
		t.Errorf("v prefix not preserved: %s", got)
	}
}
