package version

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Version information for the portast CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// TreeSchema is the version of the emitted portable tree encoding.
const TreeSchema = 1

// Colored renders Version with one color per semver component.
// Pre-release and build suffixes are kept uncolored.
func Colored() string {
	core, suffix := Version, ""
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core, suffix = core[:i], core[i:]
	}
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	return versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2]) + suffix
}

// Write prints the version banner: the version line and, when set, the
// commit, its message and the build date.
func Write(w io.Writer, colored bool) error {
	v := Version
	if colored {
		v = Colored()
	}
	if _, err := fmt.Fprintf(w, "portast %s (tree schema %d)\n", v, TreeSchema); err != nil {
		return err
	}
	if GitCommit != "" {
		line := GitCommit
		if GitMessage != "" {
			line += " " + GitMessage
		}
		if _, err := fmt.Fprintf(w, "commit: %s\n", line); err != nil {
			return err
		}
	}
	if BuildDate != "" {
		if _, err := fmt.Fprintf(w, "built:  %s\n", BuildDate); err != nil {
			return err
		}
	}
	return nil
}
