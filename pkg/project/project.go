// Package project detects what kind of project a directory holds and where
// its version is declared, so the release flow has sensible defaults before
// any configuration is read.
package project

// Kind identifies a project ecosystem.
type Kind string

const (
	KindGo      Kind = "go"
	KindPython  Kind = "python"
	KindNode    Kind = "node"
	KindGeneric Kind = "generic"
)

// Info describes a detected project.
type Info struct {
	Kind Kind
	// Name is the project name used in commit messages and logs.
	Name string
	// VersionFile is the best candidate for the version declaration, or ""
	// when detection found none.
	VersionFile string
	// ChangelogFile is the existing changelog, or "" when there is none.
	ChangelogFile string
}

// Handler is a per-ecosystem detector.
type Handler interface {
	Kind() Kind
	// Matches reports whether dir looks like a project of this kind.
	Matches(dir string) bool
	// Describe fills in Info for a matching dir.
	Describe(dir string) (*Info, error)
}

// handlers are tried in order; the generic handler always matches.
var handlers = []Handler{
	&goHandler{},
	&pythonHandler{},
	&nodeHandler{},
	&genericHandler{},
}

// Detect inspects dir and returns what it finds. It never fails in a way
// the caller can't proceed from: an unrecognized directory comes back as a
// generic project.
func Detect(dir string) (*Info, error) {
	for _, h := range handlers {
		if !h.Matches(dir) {
			continue
		}
		info, err := h.Describe(dir)
		if err != nil {
			return nil, err
		}
		info.ChangelogFile = findChangelog(dir)
		return info, nil
	}
	// Unreachable: the generic handler matches everything.
	return &Info{Kind: KindGeneric}, nil
}
