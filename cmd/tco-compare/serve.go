package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/opscart/hardware-cost-compare/pkg/pricing"
	"github.com/opscart/hardware-cost-compare/pkg/server"
	"github.com/opscart/hardware-cost-compare/pkg/session"
	"github.com/opscart/hardware-cost-compare/pkg/sizing"
)

var listenAddr string

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the comparison session over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (default from TCO_LISTEN_ADDR)")
	return serveCmd
}

func runServe(cmd *cobra.Command, args []string) error {
	card, err := loadRateCard()
	if err != nil {
		return err
	}
	addr := cfg.ListenAddr
	if listenAddr != "" {
		addr = listenAddr
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := server.NewMetrics(registry)

	estimators := pricing.NewSet(card)
	sess := session.NewWithSpec(estimators, cfg.DefaultSpec, logger, metrics)

	handler := server.NewHandler(sess, estimators, logger).WithSizingTimeout(cfg.SizingTimeout)

	if kube, err := sizing.NewKubernetesSource(cfg.Kubeconfig, cfg.SizingHeadroom, logger); err != nil {
		logger.Warn().Err(err).Msg("Kubernetes sizing disabled")
	} else {
		handler.WithNodeSource(sizing.NewCachedSource(kube, cfg.SizingCacheTTL)).WithNodeLister(kube)
	}

	if cfg.PrometheusURL != "" {
		prom, err := sizing.NewPrometheusSource(cfg.PrometheusURL, cfg.SizingLookback, cfg.SizingHeadroom, logger)
		if err != nil {
			return err
		}
		handler.WithPrometheusSource(sizing.NewCachedSource(prom.WithPercentile(cfg.SizingPercentile), cfg.SizingCacheTTL))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(handler, registry, metrics, logger).ListenAndServe(ctx, addr)
}
