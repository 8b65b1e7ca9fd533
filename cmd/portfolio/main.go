package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cosmic-portfolio/internal/config"
	"cosmic-portfolio/internal/logging"
)

var version = "dev"

var (
	// Global flags
	verbose bool
	envFile string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio assistant: chat widget backend, relay and tools",
	Long: `portfolio serves the portfolio site's chat assistant.

The assistant answers from a curated knowledge corpus; an optional language
model relay handles free-form questions.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envErr := godotenv.Load(envFile)

		var err error
		cfg, err = config.New()
		if err != nil {
			return err
		}
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, cfg.LogDevelopment)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if envErr != nil {
			logger.Debug(".env file not loaded", zap.String("path", envFile), zap.Error(envErr))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment is parsed")

	askCmd.Flags().BoolVar(&askAI, "ai", false, "ask the language model relay instead of the local assistant")
	askCmd.Flags().BoolVar(&askPlain, "plain", false, "print raw text without terminal markdown")
	reportCmd.Flags().StringVar(&reportDate, "date", "", "day to report on (YYYY-MM-DD, UTC); defaults to today")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "print the stats as JSON")

	rootCmd.AddCommand(serveCmd, askCmd, mcpCmd, reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
