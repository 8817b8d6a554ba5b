package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/username/plant-hire-calculator/internal/config"
	"go.uber.org/zap"
)

var (
	configPath  string
	sessionPath string
	cfg         *config.Config
	logger      *zap.Logger
	out         io.Writer = os.Stdout
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "plant-hire",
		Short:         "Plant hire billing calculator",
		Long:          "Compute monthly plant hire invoices with idle days, weekend and public holiday rates and length-of-hire discounts",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to load .env: %w", err)
			}

			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if sessionPath != "" {
				cfg.State.SessionFile = sessionPath
			}

			if cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger(cfg.Log.Level) // Fallback to console
				}
			} else {
				initLogger(cfg.Log.Level)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: search ., $HOME/.plant-hire, /etc/plant-hire)")
	rootCmd.PersistentFlags().StringVarP(&sessionPath, "session", "s", "", "Session file path (overrides state.session_file)")

	rootCmd.AddCommand(holidaysCmd())
	rootCmd.AddCommand(ratesCmd())
	rootCmd.AddCommand(equipmentCmd())
	rootCmd.AddCommand(idleCmd())
	rootCmd.AddCommand(monthCmd())
	rootCmd.AddCommand(invoiceCmd())
	rootCmd.AddCommand(serveCmd())

	return rootCmd
}

func outPrintf(format string, a ...interface{}) {
	fmt.Fprintf(out, format, a...)
}

func outPrintln(a ...interface{}) {
	fmt.Fprintln(out, a...)
}
