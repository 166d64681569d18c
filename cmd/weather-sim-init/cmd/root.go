package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AuraMage11/Weather-script/internal/config"
	"github.com/AuraMage11/Weather-script/internal/logger"
	"github.com/AuraMage11/Weather-script/internal/version"
)

var (
	// configPath stores the destination path of the settings YAML file.
	configPath string
	// force allows overwriting an existing settings file.
	force bool

	// errConfigExists is returned when the destination file already exists
	// and --force was not given.
	errConfigExists = errors.New("settings file already exists, use --force to overwrite")

	// rootCmd represents the base command writing the default settings file.
	rootCmd = &cobra.Command{
		Use:   "weather-sim-init",
		Short: "Write the default simulation settings file.",
		Long: `Create a settings YAML file with the reference configuration of the
simulation: 300s day, 120s night, 1s clock tick, a weather check every 30s
with storm probability 0.3, and 120s storms with thunder every 5-15s.

Edit the generated file and pass it to weather-sim with --config.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := logger.WithName(context.Background(), "weather-sim-init")

			if _, err := os.Stat(configPath); err == nil && !force {
				return errConfigExists
			}

			if err := config.Save(configPath, config.Default()); err != nil {
				return fmt.Errorf("write settings: %w", err)
			}

			logger.InfoKV(ctx, "Settings written", "path", configPath)

			return nil
		},
	}
)

// Execute runs the weather-sim-init CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "destination path of the settings file")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing settings file")
}
