package internal

import (
	"fmt"

	"github.com/goplus/ttpdist/pkgs/mod/versions"
	"github.com/spf13/cobra"
)

var versionFile string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the distribution version declared in the version file",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().StringVarP(&versionFile, "file", "f", "", "Version file (default "+versions.DefaultFile+")")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	ver, err := readVersion(versionFile)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ver)
	return nil
}

// readVersion parses file, falling back to the configured version file.
func readVersion(file string) (string, error) {
	if file == "" {
		file = cfg.VersionFile
	}
	logger.Debug("reading version", "file", file)
	return versions.Parse(file, nil)
}
