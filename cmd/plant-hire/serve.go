package main

import (
	"github.com/spf13/cobra"
	"github.com/username/plant-hire-calculator/internal/server"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the billing API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, cal, err := initializeManager()
			if err != nil {
				return err
			}

			if addr != "" {
				cfg.Server.Addr = addr
			}

			metrics := server.NewMetrics()
			metrics.SetEquipmentItems(len(manager.Equipment()))

			api := server.NewAPI(manager, cal, metrics, logger)
			router := server.NewRouter(api, metrics, cfg.Server.Metrics, logger)

			srv := server.New(server.Options{
				Addr:         cfg.Server.Addr,
				ReadTimeout:  cfg.Server.GetReadTimeout(),
				WriteTimeout: cfg.Server.GetWriteTimeout(),
			}, router, logger)

			logger.Info("Starting plant hire API",
				zap.String("addr", cfg.Server.Addr),
				zap.String("session", cfg.State.SessionFile),
				zap.Bool("metrics", cfg.Server.Metrics))

			if err := srv.Start(); err != nil {
				return err
			}

			return manager.Save()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")

	return cmd
}
