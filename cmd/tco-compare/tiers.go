package main

import (
	"github.com/spf13/cobra"

	"github.com/opscart/hardware-cost-compare/pkg/output"
)

func newTiersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "Print the active rate card",
		Long:  `Print the tier tables used for pricing. With -o yaml the output is a valid --rate-card file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := loadRateCard()
			if err != nil {
				return err
			}
			handler, err := output.NewHandler(cfg.OutputFormat, cmd.OutOrStdout(), card)
			if err != nil {
				return err
			}
			return handler.DisplayTiers(cmd.Context(), card)
		},
	}
}
