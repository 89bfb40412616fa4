// Package cli defines the dealbridge command tree: serve (API server),
// worker (event consumer) and migrate (schema management).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dealbridge/dealbridge/internal/config"
	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/logging"
)

const defaultConfigPath = "configs/config.yaml"

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
}

// NewRootCommand builds the dealbridge root command with all subcommands
// mounted.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "dealbridge",
		Short:   "dealbridge — marketplace matching and valuation platform",
		Long:    "dealbridge scores buyer/listing fit, values businesses from wizard data,\nand keeps both result sets fresh off the marketplace event stream.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file path (default: ./configs/config.yaml, then env)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(
		newServeCommand(opts),
		newWorkerCommand(opts),
		newMigrateCommand(opts),
		newScoreCommand(),
		newValuateCommand(),
	)

	return cmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger every subcommand needs.
func setup(opts *rootOptions) (*config.Config, logging.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case opts.configPath != "":
		cfg, err = config.Load(opts.configPath)
	default:
		if _, statErr := os.Stat(defaultConfigPath); statErr == nil {
			cfg, err = config.Load(defaultConfigPath)
		} else {
			cfg, err = config.LoadFromEnv()
		}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	log, err := logging.NewLogger(logging.Config{
		Level:            cfg.Log.Level,
		Format:           cfg.Log.Format,
		OutputPaths:      cfg.Log.OutputPaths,
		ErrorOutputPaths: cfg.Log.ErrorOutputPaths,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}
