package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/goplus/ttpdist/pkgs/dist"
	"github.com/goplus/ttpdist/pkgs/platform"
	"github.com/spf13/cobra"
)

// platformFlags are the target settings shared by resolve and package.
type platformFlags struct {
	os        string
	arch      string
	buildType string
}

func (f *platformFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.os, "os", "", "Target OS: Windows, Android, Macos or Linux (default host)")
	cmd.Flags().StringVar(&f.arch, "arch", "", "Target architecture: x86_64, armv8, armv7 or x86 (default host)")
	cmd.Flags().StringVar(&f.buildType, "build-type", "", "Build type, e.g. Release or Debug (default from config)")
}

func (f *platformFlags) settings() platform.Settings {
	osName, arch, buildType := f.os, f.arch, f.buildType
	if osName == "" {
		osName = runtime.GOOS
	}
	if arch == "" {
		arch = runtime.GOARCH
	}
	if buildType == "" {
		buildType = cfg.BuildType
	}
	return platform.New(osName, arch, buildType)
}

var (
	resolveFlags     platformFlags
	resolveJSON      bool
	resolveAllowList string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the artifact directory and package layout of a platform",
	Args:  cobra.NoArgs,
	RunE:  runResolve,
}

func init() {
	resolveFlags.register(resolveCmd)
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Print as JSON")
	resolveCmd.Flags().StringVar(&resolveAllowList, "allowlist", "", "Allow-list file (default embedded list)")
	rootCmd.AddCommand(resolveCmd)
}

// resolveOutput is the printed form of a dist.Resolution.
type resolveOutput struct {
	OS        string   `json:"os"`
	Arch      string   `json:"arch"`
	BuildType string   `json:"build_type"`
	DirName   string   `json:"dir"`
	Selection string   `json:"selection"`
	AllowList []string `json:"allowlist,omitempty"`
	dist.Layout
}

func runResolve(cmd *cobra.Command, args []string) error {
	allowFile := resolveAllowList
	if allowFile == "" {
		allowFile = cfg.AllowList
	}
	allow, err := loadAllowList(allowFile)
	if err != nil {
		return err
	}
	res, err := dist.NewLocator(allow).Resolve(resolveFlags.settings())
	if err != nil {
		return err
	}
	out := resolveOutput{
		OS:        res.Settings.OSName(),
		Arch:      res.Settings.ArchName(),
		BuildType: res.Settings.BuildType,
		DirName:   res.DirName,
		Selection: res.Selection.String(),
		Layout:    res.Layout,
	}
	if res.Selection.Filtered() {
		out.AllowList = res.Selection.AllowList().Files()
	}
	if resolveJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	printResolve(cmd.OutOrStdout(), &out)
	return nil
}

func printResolve(w io.Writer, out *resolveOutput) {
	fmt.Fprintf(w, "dir:        %s\n", out.DirName)
	fmt.Fprintf(w, "selection:  %s\n", out.Selection)
	for _, f := range out.AllowList {
		fmt.Fprintf(w, "  %s\n", f)
	}
	fmt.Fprintln(w, "includedirs:")
	for _, d := range out.IncludeDirs {
		fmt.Fprintf(w, "  %s\n", d)
	}
	fmt.Fprintln(w, "libdirs:")
	for _, d := range out.LibDirs {
		fmt.Fprintf(w, "  %s\n", d)
	}
}
