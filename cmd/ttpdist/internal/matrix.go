package internal

import (
	"fmt"
	"text/tabwriter"

	"github.com/goplus/ttpdist/pkgs/dist"
	"github.com/goplus/ttpdist/pkgs/platform"
	"github.com/spf13/cobra"
)

var (
	matrixOS        []string
	matrixArch      []string
	matrixBuildType []string
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Resolve every combination of the given platforms",
	Long: `Matrix resolves the cartesian product of the given operating systems,
architectures and build types. Empty lists use every known value.`,
	Args: cobra.NoArgs,
	RunE: runMatrix,
}

func init() {
	matrixCmd.Flags().StringSliceVar(&matrixOS, "os", nil, "Operating systems")
	matrixCmd.Flags().StringSliceVar(&matrixArch, "arch", nil, "Architectures")
	matrixCmd.Flags().StringSliceVar(&matrixBuildType, "build-type", nil, "Build types")
	rootCmd.AddCommand(matrixCmd)
}

func runMatrix(cmd *cobra.Command, args []string) error {
	allow, err := loadAllowList(cfg.AllowList)
	if err != nil {
		return err
	}
	locator := dist.NewLocator(allow)
	m := platform.Matrix{OS: matrixOS, Arch: matrixArch, BuildType: matrixBuildType}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "OS\tARCH\tBUILD TYPE\tDIR\tSELECTION")
	for _, s := range m.Combinations() {
		res, err := locator.Resolve(s)
		if err != nil {
			logger.Debug("unresolved", "settings", s, "err", err)
			fmt.Fprintf(w, "%s\t%s\t%s\t-\t%v\n", s.OSName(), s.ArchName(), s.BuildType, unwrapAll(err))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.OSName(), s.ArchName(), s.BuildType, res.DirName, res.Selection)
	}
	return w.Flush()
}

// unwrapAll returns the innermost wrapped error.
func unwrapAll(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok || u.Unwrap() == nil {
			return err
		}
		err = u.Unwrap()
	}
}
