package cmd

import (
	"context"
	"os"

	"goldilocks/internal/config"
	"goldilocks/internal/logging"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	logger     *zap.Logger
	level      zap.AtomicLevel
	cfg        *config.Config
	configPath string
	logLevel   string

	newLogger func(level zap.AtomicLevel, encoding string) (*zap.Logger, error)
}

func newApp(logger *zap.Logger, level zap.AtomicLevel) *app {
	return &app{logger: logger, level: level, newLogger: logging.New}
}

// NewRootCmd builds the command tree. level must be the level logger was built with.
func NewRootCmd(logger *zap.Logger, level zap.AtomicLevel) *cobra.Command {
	return newApp(logger, level).rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "goldilocks",
		Short: "Render URL records and drive a number stack",
		Long: `goldilocks reads URL records (protocol, host name, optional port, optional path)
and prints their debug strings, optionally sorted or with duplicates removed.
It can also run push/pop/peek operations against a stack of numbers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")

	rootCmd.AddCommand(newRenderCmd(a))
	rootCmd.AddCommand(newStackCmd(a))
	return rootCmd
}

// setup loads the config file and reconfigures logging from it.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if cmd.Flags().Changed("log-level") {
		level = a.logLevel
	}
	if err := logging.SetLevel(a.level, level); err != nil {
		return err
	}

	if cfg.Log.Encoding != "console" {
		logger, err := a.newLogger(a.level, cfg.Log.Encoding)
		if err != nil {
			return err
		}
		a.logger = logger
	}

	a.logger = a.logger.With(zap.String("run_id", uuid.NewString()))
	a.logger.Debug("configuration loaded",
		zap.String("config_path", a.configPath),
		zap.String("log_level", level),
		zap.String("command", cmd.Name()))
	return nil
}

// execute runs the command tree with args and logs a failure through the
// logger the invocation ended up with, which setup may have replaced.
func (a *app) execute(ctx context.Context, args []string) error {
	rootCmd := a.rootCmd()
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		a.logger.Error("execution failed", zap.Error(err))
	}
	return err
}

// Execute runs the command line and exits non-zero on failure.
func Execute(ctx context.Context, logger *zap.Logger, level zap.AtomicLevel) {
	a := newApp(logger, level)
	if err := a.execute(ctx, os.Args[1:]); err != nil {
		a.logger.Sync()
		os.Exit(1)
	}
}
