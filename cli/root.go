// Package cli wires the ticket-assigner commands.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	Version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "ticket-assigner",
	Short: "Prioritize support tickets and assign them to the best-matching agents",
	Long: `ticket-assigner reads a dataset of agents and tickets, ranks tickets by
urgency, and greedily assigns each one to the highest-scoring agent.

Quick Start:
  ticket-assigner validate --input dataset.json
  ticket-assigner run --input dataset.json --output output_result.json
  ticket-assigner serve --addr :8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.json", "config file (missing file means built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newRunCmd(),
		newValidateCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ticket-assigner version %s\n", Version)
		},
	}
}

// newLogger writes human-readable logs to stderr so stdout stays clean for
// reports.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Str("service", "ticket-assigner").
		Logger()
}
