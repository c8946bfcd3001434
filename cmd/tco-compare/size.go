package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opscart/hardware-cost-compare/pkg/output"
	"github.com/opscart/hardware-cost-compare/pkg/pricing"
	"github.com/opscart/hardware-cost-compare/pkg/session"
	"github.com/opscart/hardware-cost-compare/pkg/sizing"
)

var (
	// Size flags
	sizingMode    string
	kubeconfig    string
	prometheusURL string
)

func newSizeCmd() *cobra.Command {
	sizeCmd := &cobra.Command{
		Use:   "size",
		Short: "Derive a specification from an existing machine and compare it",
	}
	sizeCmd.PersistentFlags().StringVar(&sizingMode, "mode", "capacity", "capacity (installed) or usage (observed percentile plus headroom)")

	nodeCmd := &cobra.Command{
		Use:   "node <name>",
		Short: "Size from a Kubernetes node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := kubernetesSource()
			if err != nil {
				return err
			}
			return runSize(cmd, source, args[0])
		},
	}
	nodeCmd.Flags().StringVar(&kubeconfig, "kubeconfig", "", "Path to kubeconfig (default from KUBECONFIG)")

	nodesCmd := &cobra.Command{
		Use:   "nodes",
		Short: "List the Ready nodes that can be sized",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := kubernetesSource()
			if err != nil {
				return err
			}
			return runListNodes(cmd, source)
		},
	}
	nodesCmd.Flags().StringVar(&kubeconfig, "kubeconfig", "", "Path to kubeconfig (default from KUBECONFIG)")

	promCmd := &cobra.Command{
		Use:   "prometheus <instance>",
		Short: "Size from node-exporter series in Prometheus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := cfg.PrometheusURL
			if prometheusURL != "" {
				url = prometheusURL
			}
			if url == "" {
				return fmt.Errorf("no Prometheus URL: set PROMETHEUS_URL or --prometheus-url")
			}
			source, err := sizing.NewPrometheusSource(url, cfg.SizingLookback, cfg.SizingHeadroom, logger)
			if err != nil {
				return err
			}
			return runSize(cmd, source.WithPercentile(cfg.SizingPercentile), args[0])
		},
	}
	promCmd.Flags().StringVar(&prometheusURL, "prometheus-url", "", "Prometheus base URL (default from PROMETHEUS_URL)")

	sizeCmd.AddCommand(nodeCmd, nodesCmd, promCmd)
	addReportFlags(nodeCmd)
	addReportFlags(promCmd)
	return sizeCmd
}

func runSize(cmd *cobra.Command, source sizing.Source, target string) error {
	mode, err := sizing.ParseMode(sizingMode)
	if err != nil {
		return err
	}
	card, err := loadRateCard()
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, cfg.SizingTimeout)
	defer cancel()

	result, err := source.Specification(ctx, target, mode)
	if err != nil {
		return fmt.Errorf("sizing %s failed: %w", target, err)
	}

	sess := session.NewWithSpec(pricing.NewSet(card), result.Specification, logger)
	return display(cmd, card, sess.Snapshot(), result)
}

func kubernetesSource() (*sizing.KubernetesSource, error) {
	path := cfg.Kubeconfig
	if kubeconfig != "" {
		path = kubeconfig
	}
	return sizing.NewKubernetesSource(path, cfg.SizingHeadroom, logger)
}

func runListNodes(cmd *cobra.Command, lister sizing.NodeLister) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, cfg.SizingTimeout)
	defer cancel()

	nodes, err := lister.ListNodes(ctx)
	if err != nil {
		return err
	}

	handler, err := output.NewHandler(cfg.OutputFormat, cmd.OutOrStdout(), nil)
	if err != nil {
		return err
	}
	return handler.DisplayNodes(ctx, nodes)
}
