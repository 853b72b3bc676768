package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shipment-tracker/internal/features/shipments/classify"
	"shipment-tracker/internal/features/shipments/lookup"
	"shipment-tracker/internal/features/shipments/service"
)

func newTrackCommand(ctx *commandContext) *cobra.Command {
	var mode string
	var showAll bool

	cmd := &cobra.Command{
		Use:   "track [query]",
		Short: "Find shipments by tracking number",
		Long: "Find shipments by tracking number. Exact mode matches the whole number;\n" +
			"substring mode lists every number containing the query. Case is ignored.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := lookup.ParseMode(mode)
			if err != nil {
				return err
			}

			query := strings.Join(args, "")
			resolver := lookup.Resolver{Mode: parsed, ShowAllOnEmpty: showAll}

			if strings.TrimSpace(query) == "" && !(showAll && parsed == lookup.ModeSubstring) {
				return fmt.Errorf("tracking number is required: %w", lookup.ErrEmptyQuery)
			}

			matches, err := ctx.resolve(cmd.Context(), query, resolver)
			if err != nil {
				return err
			}

			detector := classify.DefaultAttentionDetector()
			views := make([]service.TrackedShipment, 0, len(matches))
			for _, m := range matches {
				views = append(views, service.Describe(m, detector))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTrackedShipments(views))
			fmt.Fprintf(out, "%d shipment(s) matched\n", len(views))
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", string(lookup.ModeExact), "Match mode: exact or substring")
	cmd.Flags().BoolVar(&showAll, "all", false, "With substring mode, list every shipment when no query is given")
	return cmd
}
