package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/modfile"
)

type goHandler struct{}

func (h *goHandler) Kind() Kind { return KindGo }

func (h *goHandler) Matches(dir string) bool {
	return fileExists(filepath.Join(dir, "go.mod"))
}

func (h *goHandler) Describe(dir string) (*Info, error) {
	goModPath := filepath.Join(dir, "go.mod")
	data, err := os.ReadFile(goModPath)
	if err != nil {
		return nil, fmt.Errorf("reading go.mod: %w", err)
	}
	mf, err := modfile.Parse(goModPath, data, nil)
	if err != nil {
		return nil, fmt.Errorf("parsing go.mod: %w", err)
	}

	info := &Info{Kind: KindGo}
	if mf.Module != nil {
		info.Name = filepath.Base(mf.Module.Mod.Path)
	}
	info.VersionFile = firstExisting(dir,
		"version.go",
		filepath.Join("internal", "version", "version.go"),
		filepath.Join("pkg", "version", "version.go"),
		"VERSION",
	)
	return info, nil
}

type pythonHandler struct{}

func (h *pythonHandler) Kind() Kind { return KindPython }

func (h *pythonHandler) Matches(dir string) bool {
	return fileExists(filepath.Join(dir, "pyproject.toml")) ||
		fileExists(filepath.Join(dir, "setup.py"))
}

func (h *pythonHandler) Describe(dir string) (*Info, error) {
	info := &Info{Kind: KindPython}

	pyproject := filepath.Join(dir, "pyproject.toml")
	if fileExists(pyproject) {
		var doc struct {
			Project struct {
				Name    string `toml:"name"`
				Version string `toml:"version"`
			} `toml:"project"`
		}
		if _, err := toml.DecodeFile(pyproject, &doc); err != nil {
			return nil, fmt.Errorf("parsing pyproject.toml: %w", err)
		}
		info.Name = doc.Project.Name
		if doc.Project.Version != "" {
			info.VersionFile = "pyproject.toml"
		}
	}
	if info.Name == "" {
		info.Name = filepath.Base(dir)
	}

	// setuptools projects usually keep __version__ in the package __init__.
	if info.VersionFile == "" {
		info.VersionFile = firstExisting(dir,
			filepath.Join(info.Name, "__init__.py"),
			filepath.Join("src", info.Name, "__init__.py"),
			"setup.py",
			"VERSION",
		)
	}
	return info, nil
}

type nodeHandler struct{}

func (h *nodeHandler) Kind() Kind { return KindNode }

func (h *nodeHandler) Matches(dir string) bool {
	return fileExists(filepath.Join(dir, "package.json"))
}

func (h *nodeHandler) Describe(dir string) (*Info, error) {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return nil, fmt.Errorf("reading package.json: %w", err)
	}
	var pkg struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parsing package.json: %w", err)
	}

	name := pkg.Name
	if name == "" {
		name = filepath.Base(dir)
	}
	return &Info{Kind: KindNode, Name: name, VersionFile: "package.json"}, nil
}

type genericHandler struct{}

func (h *genericHandler) Kind() Kind { return KindGeneric }

func (h *genericHandler) Matches(dir string) bool { return true }

func (h *genericHandler) Describe(dir string) (*Info, error) {
	return &Info{
		Kind:        KindGeneric,
		Name:        filepath.Base(dir),
		VersionFile: firstExisting(dir, "VERSION", "VERSION.txt", "version.txt"),
	}, nil
}

func findChangelog(dir string) string {
	return firstExisting(dir, "CHANGELOG.md", "ChangeLog", "CHANGELOG", "CHANGES.md", "NEWS")
}

func firstExisting(dir string, candidates ...string) string {
	for _, c := range candidates {
		if fileExists(filepath.Join(dir, c)) {
			return c
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
