package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AuraMage11/Weather-script/internal/config"
	"github.com/AuraMage11/Weather-script/internal/logger"
	"github.com/AuraMage11/Weather-script/internal/service/simulator"
	"github.com/AuraMage11/Weather-script/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// listenAddress overrides the configured HTTP listen address.
	listenAddress string
	// logLevel sets the verbosity of the console log.
	logLevel string

	// rootCmd represents the base command running the simulation.
	rootCmd = &cobra.Command{
		Use:   "weather-sim",
		Short: "Run the day/night and weather simulation.",
		Long: `Long-running environment simulation for a virtual world.

Drives a repeating day/night cycle that derives lighting parameters every
tick, and a probabilistic weather scheduler that starts storms (rain plus
randomized thunder) during the day. The current state is observable over a
read-only HTTP endpoint together with prometheus metrics.

All timings and probabilities come from the settings file; invalid values
abort startup before any loop begins. The process runs until SIGINT or
SIGTERM and then shuts every loop down gracefully.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Raise or lower verbosity before anything logs.
			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return simulator.Run(ctx, &simulator.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
			})
		},
	}
)

// Execute runs the weather-sim CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&listenAddress, "listen", "l", "", "override the HTTP listen address")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}
