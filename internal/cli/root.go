package cli

import (
	"fmt"
	"os"

	"github.com/iqbalbaharum/serum-swap-client/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logLevel string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "serum-swap",
	Short: "Serum swap client",
	Long: `serum-swap decodes Serum DEX market accounts and builds Serum swap
program instructions.

Configuration is read from .env and the environment:
- RPC_HTTP_URL, SWAP_PROGRAM_ID, DEX_PROGRAM_ID, SWAP_GENERATION
- REDIS_ADDR, REDIS_PASSWORD, REDIS_DB
- HTTP_PORT, LOG_LEVEL`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitEnv(); err != nil {
			return err
		}

		level := config.LogLevel
		if logLevel != "" {
			level = logLevel
		}

		var err error
		logger, err = newLogger(level)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command. The server is started when no subcommand
// is given.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides LOG_LEVEL")
	rootCmd.RunE = serveCmd.RunE
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}
