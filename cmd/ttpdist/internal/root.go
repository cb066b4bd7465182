package internal

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/goplus/ttpdist/internal/config"
	"github.com/goplus/ttpdist/internal/env"
	"github.com/goplus/ttpdist/pkgs/dist"
	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool

	cfg    = config.Default()
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "ttpdist"})
)

var rootCmd = &cobra.Command{
	Use:   "ttpdist",
	Short: "ttpdist packages the pre-built third-party distribution",
	Long: `ttpdist resolves the pre-built artifact directory of a target platform
and packages its headers, runtime binaries and compile-time libraries.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default "+env.ConfigFile()+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	path, required := configFile, true
	if path == "" {
		path, required = env.ConfigFile(), false
	}
	c, err := config.Load(path, required)
	if err != nil {
		return err
	}
	cfg = c
	level := log.InfoLevel
	if verbose || cfg.Debug {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
	logger.SetOutput(cmd.ErrOrStderr())
	return nil
}

// loadAllowList returns the allow-list at file, or the embedded one if
// file is empty.
func loadAllowList(file string) (*dist.AllowList, error) {
	if file == "" {
		return dist.DefaultAllowList(), nil
	}
	logger.Debug("loading allow-list", "file", file)
	return dist.LoadAllowList(file)
}
