package internal

import (
	"fmt"
	"runtime"
	"strings"
)

const (

	// Program name, used for the binary, runtime files, and the log group.
	Name = "persistd"

	// Placeholder for a variable the build pipeline did not set.
	defaultUndefined = "(undefined)"

	// Version string reported by builds made outside the pipeline.
	defaultLocalBuild = "(local)"

	// Branch whose builds carry no stage suffix.
	mainBranch = "main"
)

var (
	version   = "" // Release number, e.g. "1.2.3".
	stage     = "" // Branch the binary was built from.
	gitCommit = "" // Commit hash the binary was built from.

	rawQuiet   = "false" // Default for quiet mode.
	rawDebug   = "false" // Default for debug mode.
	rawVerbose = "false" // Default for verbose logging.
)

// Returns the release number without any "v" prefix, or "(undefined)".
func Version() string {
	v := strings.ToLower(strings.TrimSpace(version))
	v = strings.TrimPrefix(v, "v")
	if v == "" {
		return defaultUndefined
	}
	return v
}

// Returns the lower-cased build stage, or "(undefined)".
func Stage() string {
	s := strings.ToLower(strings.TrimSpace(stage))
	if s == "" {
		return defaultUndefined
	}
	return s
}

// Returns the git commit hash, or "(undefined)".
func GitCommit() string {
	c := strings.TrimSpace(gitCommit)
	if c == "" {
		return defaultUndefined
	}
	return c
}

// Returns true unless the pipeline set version, stage and commit.
func IsLocal() bool {
	return Version() == defaultUndefined ||
		Stage() == defaultUndefined ||
		GitCommit() == defaultUndefined
}

// Returns a detailed version string.
//
// Local builds report "(local)". Pipeline builds report
// "<version>[+<stage>] <commit> [<os>/<arch>]", where the stage is omitted for
// builds of the main branch.
func VersionString() string {
	if IsLocal() {
		return defaultLocalBuild
	}

	suffix := ""
	if s := Stage(); s != mainBranch {
		suffix = "+" + s
	}

	return fmt.Sprintf("%s%s %s [%s/%s]", Version(), suffix, GitCommit(), runtime.GOOS, runtime.GOARCH)
}
