package bumper

import "regexp"

// Pattern describes one way a version declaration can appear in a file.
// Every regexp carries exactly three capture groups: prefix, version, suffix.
type Pattern struct {
	Name   string
	Regexp *regexp.Regexp
}

const semverRe = `v?(\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z.-]+)?)`

// DeclarationPatterns are tried in order against each line of the version
// file. The first line that matches any of them is the version declaration.
var DeclarationPatterns = []Pattern{
	{
		Name:   "python dunder version",
		Regexp: regexp.MustCompile(`^(\s*__version__\s*=\s*['"])` + semverRe + `(['"].*)$`),
	},
	{
		Name:   "VERSION assignment",
		Regexp: regexp.MustCompile(`^(\s*VERSION\s*[:=]\s*['"]?)` + semverRe + `(['"]?.*)$`),
	},
	{
		Name:   "go version const",
		Regexp: regexp.MustCompile(`^(\s*(?:const\s+|var\s+)?[Vv]ersion\s*=\s*")` + semverRe + `(".*)$`),
	},
	{
		Name:   "json version field",
		Regexp: regexp.MustCompile(`^(\s*"version"\s*:\s*")` + semverRe + `(".*)$`),
	},
	{
		Name:   "toml version field",
		Regexp: regexp.MustCompile(`^(\s*version\s*=\s*")` + semverRe + `(".*)$`),
	},
	{
		Name:   "yaml version field",
		Regexp: regexp.MustCompile(`^(\s*version\s*:\s*['"]?)` + semverRe + `(['"]?\s*)$`),
	},
	{
		Name:   "bare version file",
		Regexp: regexp.MustCompile(`^()` + semverRe + `(\s*)$`),
	},
}
