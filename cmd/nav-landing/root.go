package main

import (
	"fmt"

	"github.com/iwvelando/nav-landing/internal/config"
	"github.com/iwvelando/nav-landing/internal/store"
	"github.com/iwvelando/nav-landing/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds the state shared by every command once the root pre-run has
// loaded the configuration.
type app struct {
	configPath string
	logLevel   string

	conf   *config.Configuration
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "nav-landing",
		Short:         "Semi-annual NAV per share projection for closed-end funds",
		Long:          "Projects a fund's net asset value per share from its last known NAV to its end date, applying asset revaluations and fund-level impacts.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.LoadConfiguration(a.configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", a.configPath, err)
			}
			a.conf = conf

			// serve builds its own logger from the server configuration
			if cmd.Name() == "serve" {
				return nil
			}
			logger, err := initializeLogger(conf.Logging, a.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(
		newProjectCmd(a),
		newExportCmd(a),
		newSimulationsCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) openStore() (store.Store, error) {
	s, err := store.Open(a.conf.Storage, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store at %s: %w", a.conf.Storage.Driver, a.conf.Storage.Path, err)
	}
	return s, nil
}

// loadParameters reads a parameter file and reports its normalization notices
// and configuration warnings.
func (a *app) loadParameters(path string) (config.FundParameters, error) {
	params, notices, err := config.LoadParameters(a.logger, path)
	if err != nil {
		return config.FundParameters{}, fmt.Errorf("%s: %w", path, err)
	}
	a.logger.Debug("parameters loaded",
		zap.String("op", "main.loadParameters"),
		zap.String("path", path),
		zap.Int("notices", len(notices)),
	)
	for _, warning := range params.ValidateConfiguration() {
		a.logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.loadParameters"),
			zap.String("path", path),
		)
	}
	return params, nil
}
