package internal

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/goplus/ttpdist/internal/build"
	"github.com/goplus/ttpdist/internal/env"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List packages recorded in the workspace index",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	workDir, err := env.WorkDir()
	if err != nil {
		return err
	}
	entries, err := build.List(workDir)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tDIR\tFILES\tBUILT\tOUTPUT")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", e.Version, e.DirName, e.Files, e.BuildTime.Local().Format(time.DateTime), e.OutputDir)
	}
	return w.Flush()
}
