// Package cli implements the molforge command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turtacn/molforge/internal/config"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions holds the global flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
	output     string
}

// NewRootCommand assembles the command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "molforge",
		Short: "Combinatorial drug-like molecule generator",
		Long: `molforge assembles candidate molecules from a curated library of ring
fragments and linkers, validates each candidate, and keeps the ones whose
molecular weight falls in the drug-like window of 150 to 500 Daltons.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to YAML config file (default: environment only)")
	flags.StringVar(&opts.logLevel, "log-level", "", "override log level (debug|info|warn|error)")
	flags.StringVarP(&opts.output, "output", "o", "table", "output format (table|json)")

	root.AddCommand(newGenerateCommand(opts))
	root.AddCommand(newLibraryCommand(opts))

	return root
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration for a command invocation.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newLogger builds the command logger; CLI output defaults to the console
// encoder so log lines stay readable next to command output.
func (o *rootOptions) newLogger(cfg *config.Config) (logging.Logger, error) {
	logCfg := logging.LogConfig{
		Level:       cfg.Log.Level,
		Format:      "console",
		OutputPaths: []string{"stderr"},
	}
	return logging.NewLogger(logCfg)
}
