package main

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"shipment-tracker/internal/core/logger"
)

const defaultAPIURL = "http://localhost:8080"

func newRootCommand() *cobra.Command {
	var apiURL string
	var logLevel string
	var timeout time.Duration
	var noColor bool

	ctx := newCommandContext(&apiURL, &timeout)

	rootCmd := &cobra.Command{
		Use:           "shipctl",
		Short:         "Look up shipments from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				text.DisableColors()
			} else {
				text.EnableColors()
			}
			return logger.Init("development", logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	defaultURL := os.Getenv("SHIPCTL_API_URL")
	if defaultURL == "" {
		defaultURL = defaultAPIURL
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", defaultURL, "Base URL of the shipment API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "error", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", os.Getenv("NO_COLOR") != "", "Do not highlight problem statuses")

	rootCmd.AddCommand(newTrackCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newStatusesCommand())
	rootCmd.AddCommand(newWatchCommand(ctx))

	return rootCmd
}
