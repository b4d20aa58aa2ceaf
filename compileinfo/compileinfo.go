// Package compileinfo reports which build of submorph produced a set of
// tables, so results can be traced back to a commit.
package compileinfo

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
)

type CompileInfo struct {
	Binary     string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	if c.Binary == "" {
		return "No build information is embedded in this binary."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s", c.Binary)
	if c.Version != "" && c.Version != "(devel)" {
		fmt.Fprintf(&sb, " %s", c.Version)
	}
	fmt.Fprintf(&sb, " was built with %s", c.GoVersion)

	if c.Commit != "" {
		fmt.Fprintf(&sb, " at commit %s (%s)", c.Commit, c.CommitTime)
	}
	sb.WriteString(".")

	if c.Modified {
		sb.WriteString(" Files in the repo were modified after that commit.")
	}

	return sb.String()
}

// Get reads the build information embedded by the Go toolchain.
func Get() CompileInfo {
	z, ok := debug.ReadBuildInfo()
	if !ok {
		return CompileInfo{}
	}

	return fromBuildInfo(z)
}

func fromBuildInfo(z *debug.BuildInfo) CompileInfo {
	out := CompileInfo{
		Binary:    z.Path,
		Version:   z.Main.Version,
		GoVersion: z.GoVersion,
	}

	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func Fprint(w io.Writer) {
	fmt.Fprintln(w, Get())
}

func PrintToStdErr() {
	Fprint(os.Stderr)
}
