package cli

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/spf13/cobra"

	"ticket-assigner/config"
	"ticket-assigner/engine"
	customerrors "ticket-assigner/errors"
	"ticket-assigner/formatter"
	"ticket-assigner/metrics"
	"ticket-assigner/parser"
)

type runOptions struct {
	input            string
	output           string
	simplifiedOutput string
	format           string
	metricsAddr      string
	pushURL          string
	wait             bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Assign every ticket in a dataset and write the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssign(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "dataset.json", "input JSON dataset")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "output_result.json", "full report output file")
	cmd.Flags().StringVar(&opts.simplifiedOutput, "simplified-output", "output_result_simplified.json", "simplified report output file (empty to skip)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "stdout format: text|json|csv")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "address to expose Prometheus metrics (e.g., :9090)")
	cmd.Flags().StringVar(&opts.pushURL, "push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	cmd.Flags().BoolVar(&opts.wait, "wait", false, "keep process running after completion to allow for metric scraping")
	return cmd
}

func runAssign(cmd *cobra.Command, opts runOptions) error {
	logger := newLogger()

	// Validate format enum
	validFormats := map[string]bool{"text": true, "json": true, "csv": true}
	if !validFormats[opts.format] {
		return fmt.Errorf("%w: %q (want text, json or csv)", customerrors.ErrUnsupportedFormat, opts.format)
	}

	// Start metrics server if address provided
	if opts.metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			logger.Info().Str("addr", opts.metricsAddr).Msg("metrics server listening")
			if err := http.ListenAndServe(opts.metricsAddr, mux); err != nil {
				logger.Error().Err(err).Msg("metrics server error")
			}
		}()
	}

	cfg := config.Load(cfgFile, logger)

	ds, err := parser.ParseFile(opts.input)
	if err != nil {
		return err
	}
	logger.Info().Int("agents", len(ds.Agents)).Int("tickets", len(ds.Tickets)).Msg("dataset loaded")

	report := engine.New(cfg, engine.WithLogger(logger)).Process(ds)

	full, err := formatter.FormatJSON(report)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, []byte(full), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", opts.output, err)
	}
	if opts.simplifiedOutput != "" {
		simplified, err := formatter.FormatSimplifiedJSON(report)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.simplifiedOutput, []byte(simplified), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", opts.simplifiedOutput, err)
		}
	}
	logger.Info().Str("path", opts.output).Str("simplified", opts.simplifiedOutput).Msg("report written")

	// Output based on format
	out := cmd.OutOrStdout()
	switch opts.format {
	case "json":
		fmt.Fprintln(out, full)
	case "csv":
		rows, err := formatter.FormatCSV(report)
		if err != nil {
			return err
		}
		fmt.Fprint(out, rows)
	default: // "text"
		fmt.Fprint(out, formatter.FormatText(report, ds, cfg))
	}

	// Handle metrics pushing or waiting
	if opts.pushURL != "" {
		if err := push.New(opts.pushURL, "ticket_assigner").Gatherer(metrics.Registry).Push(); err != nil {
			logger.Error().Err(err).Str("url", opts.pushURL).Msg("pushing to Pushgateway failed")
		} else {
			logger.Info().Str("url", opts.pushURL).Msg("metrics pushed to Pushgateway")
		}
	}

	if opts.wait && opts.metricsAddr != "" {
		logger.Info().Msg("process kept alive for metric scraping, press Ctrl+C to exit")
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
	} else if opts.metricsAddr != "" && opts.pushURL == "" {
		// Small delay to allow a final scrape when not waiting explicitly
		time.Sleep(100 * time.Millisecond)
	}
	return nil
}
