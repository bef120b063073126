package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/holon-run/propedit/pkg/config"
	holonlog "github.com/holon-run/propedit/pkg/log"
	"github.com/holon-run/propedit/pkg/resource"
)

var (
	configPath   string
	searchPaths  []string
	extraSchemes []string
	logLevel     string
	logFormat    string
)

var rootCmd = &cobra.Command{
	Use:   "propedit",
	Short: "Resolve locators into canonical URLs",
	Long: `propedit converts textual locators into canonical URLs.

Locators may be absolute URLs with a known scheme (https:, mailto:, file:, ...),
classpath: references looked up on the search path, or plain paths.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// loadConfig merges the config file (if any) with command-line overrides and
// initializes logging.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// Command-line paths are relative to the working directory, not the config file.
	for _, p := range searchPaths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve search path %s: %w", p, err)
		}
		cfg.AddSearchPath(abs)
	}
	cfg.Schemes = append(cfg.Schemes, extraSchemes...)
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logCfg, err := cfg.LoggerConfig()
	if err != nil {
		return nil, err
	}
	logCfg.Output = cmd.ErrOrStderr()
	if err := holonlog.Init(logCfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildRegistry(cmd *cobra.Command) (*resource.Registry, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return cfg.BuildRegistry()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to a propedit YAML config file")
	flags.StringArrayVarP(&searchPaths, "search-path", "p", nil, "Directory or .zip/.jar archive searched for classpath: locators (repeatable)")
	flags.StringArrayVar(&extraSchemes, "scheme", nil, "Additional URL scheme to accept (repeatable)")
	flags.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "console", "Log format: console, json")
}

func main() {
	err := rootCmd.Execute()
	_ = holonlog.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
