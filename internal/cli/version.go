package cli

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/winereview/internal/format"
)

const modulePath = "github.com/aidanlsb/winereview"

// Release builds set these with
// -ldflags "-X github.com/aidanlsb/winereview/internal/cli.version=...".
var (
	version = ""
	commit  = ""
	date    = ""
)

type versionInfo struct {
	Version    string `json:"version" yaml:"version"`
	ModulePath string `json:"module_path" yaml:"module_path"`
	Commit     string `json:"commit,omitempty" yaml:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty" yaml:"commit_time,omitempty"`
	Modified   bool   `json:"modified" yaml:"modified"`
	GoVersion  string `json:"go_version" yaml:"go_version"`
	Platform   string `json:"platform" yaml:"platform"`
}

var readBuildInfo = debug.ReadBuildInfo

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show wr version and build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := currentVersionInfo()
			if a.jsonOutput() {
				return format.WriteJSON(cmd.OutOrStdout(), format.Response{OK: true, Data: info})
			}
			printVersion(cmd.OutOrStdout(), info)
			return nil
		},
	}
}

func printVersion(w io.Writer, info versionInfo) {
	fmt.Fprintf(w, "wr %s\n", info.Version)
	fmt.Fprintf(w, "module:   %s\n", info.ModulePath)
	if info.Commit != "" {
		dirty := ""
		if info.Modified {
			dirty = " (modified)"
		}
		fmt.Fprintf(w, "commit:   %s%s\n", info.Commit, dirty)
	}
	if info.CommitTime != "" {
		fmt.Fprintf(w, "built:    %s\n", info.CommitTime)
	}
	fmt.Fprintf(w, "go:       %s\n", info.GoVersion)
	fmt.Fprintf(w, "platform: %s\n", info.Platform)
}

// currentVersionInfo prefers the module build info and falls back to the
// linker-injected values for anything it lacks.
func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:    "devel",
		ModulePath: modulePath,
		GoVersion:  runtime.Version(),
	}
	goos, goarch := runtime.GOOS, runtime.GOARCH

	if bi, ok := readBuildInfo(); ok && bi != nil {
		if bi.Main.Path != "" {
			info.ModulePath = bi.Main.Path
		}
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			info.Version = v
		}
		if bi.GoVersion != "" {
			info.GoVersion = bi.GoVersion
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Commit = s.Value
			case "vcs.time":
				info.CommitTime = s.Value
			case "vcs.modified":
				info.Modified = s.Value == "true"
			case "GOOS":
				goos = s.Value
			case "GOARCH":
				goarch = s.Value
			}
		}
	}
	info.Platform = goos + "/" + goarch

	if info.Version == "devel" && version != "" && version != "(devel)" {
		info.Version = version
	}
	if info.Commit == "" {
		info.Commit = commit
	}
	if info.CommitTime == "" {
		info.CommitTime = date
	}
	return info
}
