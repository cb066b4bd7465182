package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

var allowListFile string

var allowListCmd = &cobra.Command{
	Use:   "allowlist",
	Short: "Validate and print the Windows x86_64 library allow-list",
	Args:  cobra.NoArgs,
	RunE:  runAllowList,
}

func init() {
	allowListCmd.Flags().StringVarP(&allowListFile, "file", "f", "", "Allow-list file (default embedded list)")
	rootCmd.AddCommand(allowListCmd)
}

func runAllowList(cmd *cobra.Command, args []string) error {
	file := allowListFile
	if file == "" {
		file = cfg.AllowList
	}
	allow, err := loadAllowList(file)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, c := range allow.Categories {
		fmt.Fprintf(w, "%s:\n", c.Name)
		for _, f := range c.Files {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}
	return nil
}
