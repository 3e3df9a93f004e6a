package cli

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/xx-template/xx-cli/internal/branding"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	versionCmd.MarkFlagsMutuallyExclusive("short", "json")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentBuild()
		out := cmd.OutOrStdout()

		switch {
		case versionShort:
			fmt.Fprintln(out, info.Version)
		case versionJSON:
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
		default:
			fmt.Fprintln(out, info)
		}
		return nil
	},
}

// buildInfo describes the running binary.
type buildInfo struct {
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Date     string `json:"date"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
}

func (b buildInfo) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s, %s %s)",
		branding.CLIName(), b.Version, b.Commit, b.Date, b.Go, b.Platform)
}

// currentBuild combines ldflags values with what the Go toolchain recorded.
// Binaries installed with `go install` carry no ldflags, so the module
// version and VCS revision fill the gaps.
func currentBuild() buildInfo {
	info := buildInfo{
		Version:  buildVersion,
		Commit:   buildCommit,
		Date:     buildDate,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if unset(info.Version) && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if unset(info.Commit) {
				info.Commit = s.Value
			}
		case "vcs.time":
			if unset(info.Date) {
				info.Date = s.Value
			}
		}
	}
	return info
}

func unset(v string) bool {
	return v == "" || v == "dev" || v == "unknown"
}
