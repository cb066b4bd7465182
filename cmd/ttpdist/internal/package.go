package internal

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goplus/ttpdist/internal/build"
	"github.com/goplus/ttpdist/internal/env"
	"github.com/goplus/ttpdist/pkgs/dist"
	"github.com/spf13/cobra"
)

var (
	packageFlags       platformFlags
	packageSource      string
	packageOutputDir   string
	packageArchive     string
	packageVersionFile string
	packageAllowList   string
	packageNoIndex     bool
)

var packageCmd = &cobra.Command{
	Use:   "package",
	Short: "Package the pre-built artifacts of a platform",
	Long: `Package copies the include, bin and debuglib directories of the platform's
artifact directory and its compile-time libraries into the output directory.
On Windows x86_64 only allow-listed libraries are copied.`,
	Args: cobra.NoArgs,
	RunE: runPackage,
}

func init() {
	packageFlags.register(packageCmd)
	packageCmd.Flags().StringVarP(&packageSource, "source", "s", "", "Directory holding the pre-built platform directories (default from config)")
	packageCmd.Flags().StringVar(&packageOutputDir, "output-dir", "", "Package output directory (default from config)")
	packageCmd.Flags().StringVarP(&packageArchive, "output", "o", "", "Also write the package to a .zip file")
	packageCmd.Flags().StringVar(&packageVersionFile, "version-file", "", "Version file (default "+cfg.VersionFile+")")
	packageCmd.Flags().StringVar(&packageAllowList, "allowlist", "", "Allow-list file (default embedded list)")
	packageCmd.Flags().BoolVar(&packageNoIndex, "no-index", false, "Do not record the package in the workspace index")
	rootCmd.AddCommand(packageCmd)
}

func runPackage(cmd *cobra.Command, args []string) error {
	if packageArchive != "" && !strings.HasSuffix(packageArchive, ".zip") {
		return fmt.Errorf("output %q: only .zip archives are supported", packageArchive)
	}

	version, err := readVersion(packageVersionFile)
	if err != nil {
		return err
	}

	allowFile := packageAllowList
	if allowFile == "" {
		allowFile = cfg.AllowList
	}
	allow, err := loadAllowList(allowFile)
	if err != nil {
		return err
	}

	opts := build.Options{
		SourceDir: firstNonEmpty(packageSource, cfg.SourceDir),
		OutputDir: firstNonEmpty(packageOutputDir, cfg.OutputDir),
		Locator:   dist.NewLocator(allow),
		Logger:    logger,
	}
	if !packageNoIndex {
		workDir, err := env.WorkDir()
		if err != nil {
			return fmt.Errorf("failed to get workspace dir: %w", err)
		}
		opts.WorkspaceDir = workDir
	}

	packager, err := build.NewPackager(opts)
	if err != nil {
		return err
	}

	s := packageFlags.settings()
	result, err := packager.Package(context.Background(), s, version)
	if err != nil {
		return fmt.Errorf("failed to package %s: %w", s, err)
	}

	if packageArchive != "" {
		abs, err := filepath.Abs(packageArchive)
		if err != nil {
			return fmt.Errorf("failed to resolve output path: %w", err)
		}
		if err := build.Archive(result.OutputDir, abs); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		logger.Info("archived", "file", abs)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.OutputDir)
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
