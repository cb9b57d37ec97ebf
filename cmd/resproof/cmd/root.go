package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/resource-proof/config"
)

var (
	// Version is the version of the binary, set by main.
	Version string
	// Commit is the commit hash of the binary, set by main.
	Commit string

	cfg    = config.DefaultConfig()
	logger = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "resproof",
	Short: "Create and validate resource proofs",
	Long: `resproof creates and checks lightweight proofs of work.
A proof shows that the prover held data of at least the configured size and spent
about 2^difficulty hash computations on it. Several proofs may be chained, i.e. a large
difficulty and small size or a large size and small difficulty, to check CPU and
bandwidth separately.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd.Flags())
		if err != nil {
			return err
		}

		logger, err = newLogger(cmd)
		if err != nil {
			return err
		}

		if printConfig, _ := cmd.Flags().GetBool("print-config"); printConfig {
			spew.Fdump(cmd.ErrOrStderr(), cfg)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and runs it until it completes or
// the process is interrupted.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (%s)", Version, Commit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", config.DefaultConfigFile(), "path to the configuration file")
	flags.String("log-level", zapcore.InfoLevel.String(), "log level (debug, info, warn, error)")
	flags.Bool("print-config", false, "print the used config before running")
	bindConfigFlags(flags)
}

func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	levelStr, _ := cmd.Flags().GetString("log-level")
	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	zapCfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		// stdout carries the command output.
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize zap logger: %w", err)
	}
	return logger, nil
}
