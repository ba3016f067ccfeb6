package main

import (
	"fmt"
	"os"

	"go-grafik/internal/bootstrap"
	"go-grafik/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logLevel string
	logger   *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "grafikctl",
		Short: "Offline tools for grafik documents",
		Long:  "Render grid and work card PDFs and compute statistics from exported attendance JSON files",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var err error
			logger, err = bootstrap.NewLogger(config.LogConfig{Level: logLevel})
			if err != nil {
				logger = zap.NewNop()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level")

	rootCmd.AddCommand(gridCmd(), cardsCmd(), statsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
