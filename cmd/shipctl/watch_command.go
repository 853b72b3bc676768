package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"shipment-tracker/internal/core/logger"
	"shipment-tracker/internal/features/shipments/classify"
	"shipment-tracker/internal/features/shipments/lookup"
	"shipment-tracker/internal/features/shipments/search"
	"shipment-tracker/internal/features/shipments/service"

	"go.uber.org/zap"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Read tracking numbers from stdin and look each one up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := lookup.ParseMode(mode)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			state := search.NewState()
			resolver := lookup.Resolver{Mode: parsed}
			detector := classify.DefaultAttentionDetector()

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				if err := cmd.Context().Err(); err != nil {
					return err
				}

				ticket, err := state.SubmitQuery(scanner.Text())
				if err != nil {
					fmt.Fprintln(out, state.Message())
					continue
				}

				matches, err := ctx.resolve(cmd.Context(), state.Query(), resolver)
				if err != nil {
					if !errors.Is(err, lookup.ErrNotFound) {
						logger.Get().Debug("Lookup failed", zap.String("query", state.Query()), zap.Error(err))
					}
					state.ReceiveError(ticket, err)
				} else {
					state.ReceiveResults(ticket, matches)
				}
				printSearchState(out, state, detector)
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read queries: %w", err)
			}

			printRecent(out, state.Recent())
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", string(lookup.ModeExact), "Match mode: exact or substring")
	return cmd
}

func printSearchState(out io.Writer, state *search.State, detector classify.AttentionDetector) {
	switch state.Phase() {
	case search.PhaseLoaded:
		results := state.Results()
		views := make([]service.TrackedShipment, 0, len(results))
		for _, r := range results {
			views = append(views, service.Describe(r, detector))
		}
		fmt.Fprintln(out, renderTrackedShipments(views))
	default:
		fmt.Fprintf(out, "%s: %s\n", state.Query(), state.Message())
	}
}

func printRecent(out io.Writer, recent []string) {
	if len(recent) == 0 {
		return
	}
	rows := make([]tableRow, 0, len(recent))
	for i, q := range recent {
		rows = append(rows, tableRow{cells: []string{fmt.Sprintf("%d", i+1), q}})
	}
	fmt.Fprintln(out, "Recent searches")
	fmt.Fprintln(out, recentTable.render(rows))
}
