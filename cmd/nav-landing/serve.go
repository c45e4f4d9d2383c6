package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/nav-landing/internal/server"
	"github.com/iwvelando/nav-landing/internal/store"
	"github.com/iwvelando/nav-landing/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var (
		serverConfigPath string
		address          string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web editor and the projection API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srvCfg, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return fmt.Errorf("failed to load server configuration at %s: %w", serverConfigPath, err)
			}
			if address != "" {
				srvCfg.Address = address
			}

			logger, err := initializeLogger(srvCfg.Logging, a.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger

			storageCfg := a.conf.Storage
			if srvCfg.Storage.Driver != "" {
				storageCfg = srvCfg.Storage
			}
			simulations, err := store.Open(storageCfg, logger)
			if err != nil {
				return fmt.Errorf("failed to open %s store at %s: %w", storageCfg.Driver, storageCfg.Path, err)
			}
			defer simulations.Close()

			handler := server.NewHandler(logger, server.Options{
				MaxUploadSize:  srvCfg.UploadSizeBytes(),
				Version:        version,
				AllowedOrigins: srvCfg.AllowedOrigins,
				Store:          simulations,
			})

			httpServer := &http.Server{
				Addr:              srvCfg.Address,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server listening",
					zap.String("op", "main.serve"),
					zap.String("address", srvCfg.Address),
					zap.String("storage", storageCfg.Driver),
				)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down", zap.String("op", "main.serve"))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shut down server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to the server configuration file")
	cmd.Flags().StringVar(&address, "address", "", "listen address override")
	return cmd
}
