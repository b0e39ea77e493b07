package main

import (
	"github.com/spf13/cobra"

	"github.com/wheelease/wheelease/internal/app"
	"github.com/wheelease/wheelease/internal/common/middleware"
	"github.com/wheelease/wheelease/internal/common/server"
	"github.com/wheelease/wheelease/internal/common/tracing"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the rental HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}

		_, closer, err := tracing.InitTracer(cfg.Server.Name, cfg.Jaeger.Endpoint, cfg.Jaeger.Sampler)
		if err != nil {
			log.Warnf("failed to init tracer: %v", err)
		} else {
			defer closer.Close()
		}

		a, err := app.New(cfg, log)
		if err != nil {
			return err
		}
		return server.RunHTTPServer(cfg, log, a.Register,
			server.WithRateLimiter(middleware.NewTokenBucket(200, 100)),
		)
	},
}
