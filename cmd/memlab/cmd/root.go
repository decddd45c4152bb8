// Package cmd implements the memlab CLI commands.
//
// The root command resolves memlab.yaml and installs the process logger
// before any subcommand runs. Subcommands register themselves from init in
// their own files.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/go-drift/memlab/cmd/memlab/internal/config"
	merrors "github.com/go-drift/memlab/pkg/errors"
	"github.com/go-drift/memlab/pkg/logging"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

var flags struct {
	config   string
	logLevel string
	logFile  string
}

// resolved is the configuration for the running command.
var resolved *config.Resolved

var rootCmd = &cobra.Command{
	Use:   "memlab",
	Short: "memlab - memory cost of Drift rendering primitives",
	Long: `memlab renders N instances of a component type and reports how much
process memory they cost, before and after creation and removal.

Use "memlab <command> --help" for more information about a command.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		_ = logging.L().Sync()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", config.FileName, "path to memlab.yaml")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFile, "log-file", "", "write logs to this file instead of stderr")
}

// registerCommand adds a subcommand to the CLI.
func registerCommand(c *cobra.Command) {
	rootCmd.AddCommand(c)
}

func setup(c *cobra.Command, _ []string) error {
	res, err := config.Resolve(flags.config)
	if err != nil {
		merrors.Report(&merrors.MemlabError{Op: "config.Resolve", Kind: merrors.KindConfig, Err: err})
		return err
	}
	if flags.logLevel != "" {
		res.LogLevel = flags.logLevel
	}
	if flags.logFile != "" {
		res.LogFile = flags.logFile
	}
	resolved = res

	logger, err := logging.New(logging.Options{Level: res.LogLevel, File: res.LogFile})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logging.Set(logger.With(zap.String("app", res.AppName)))
	merrors.SetHandler(&merrors.LogHandler{Verbose: res.LogLevel == "debug"})

	logging.L().Debug("configuration resolved",
		zap.String("command", c.Name()),
		zap.String("path", res.Path),
		zap.String("componentType", string(res.ComponentType)),
		zap.Int("count", res.Count),
		zap.Duration("interval", res.Interval),
		zap.String("probe", res.Probe),
		zap.Bool("deferred", res.Deferred),
	)
	return nil
}

// Execute runs the CLI.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
