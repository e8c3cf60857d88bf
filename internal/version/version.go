package version

import "github.com/fatih/color"

// Version information for the elide CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	versionMajor  = "0"
	versionMinor  = "1"
	versionPatch  = "0"
	versionSuffix = "-dev"

	// Semantic is the plain version string for machine-readable output.
	Semantic = versionMajor + "." + versionMinor + "." + versionPatch + versionSuffix

	// Version is the colorized semantic version of the CLI.
	Version = versionMajorColor.Sprint(versionMajor) + "." + versionMinorColor.Sprint(versionMinor) + "." + versionPatchColor.Sprint(versionPatch) + versionSuffix

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)
