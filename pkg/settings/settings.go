// Package settings provides build metadata, per-run configuration, and
// context helpers shared by the objex CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "objex"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// InputSettings records where the root document comes from: a file path
// argument or piped standard input.
type InputSettings struct {
	Path      string
	FromStdin bool
}

// Run holds the configuration for a single invocation: logging, input
// source, the non-interactive tree dump, and the initial filter set.
type Run struct {
	MinLogLevel int8
	Input       InputSettings
	Tree        bool
	TreeDepth   int
	ShowPrivate bool
	Filters     []string
	EntryLimit  int
	NoColor     bool
	ExitOnError bool
}

// NewCliParams returns a Run with the CLI defaults: interactive mode, two
// tree levels when dumping, no filters, and errors terminating the run.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		TreeDepth:   2,
		ExitOnError: true,
	}
}
