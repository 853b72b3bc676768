package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shipment-tracker/internal/features/shipments/classify"
	"shipment-tracker/internal/features/shipments/service"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trackingNumber>",
		Short: "Show a shipment with its full tracking history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shipment, err := ctx.shipmentFetcher().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			view := service.Describe(*shipment, classify.DefaultAttentionDetector())
			fmt.Fprint(cmd.OutOrStdout(), renderShipmentDetail(view))
			return nil
		},
	}
}

func newStatusesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "statuses",
		Short: "List status codes and how they are classified",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), renderStatuses())
			return nil
		},
	}
}
