package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aluiziolira/go-scrape-recipes/config"
	"github.com/aluiziolira/go-scrape-recipes/heroimage"
	"github.com/aluiziolira/go-scrape-recipes/models"
	"github.com/aluiziolira/go-scrape-recipes/pipeline"
	"github.com/aluiziolira/go-scrape-recipes/scraper"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var (
	flagInput       string
	flagOutput      string
	flagFormat      string
	flagParallel    int
	flagMaxRetries  int
	flagMetricsAddr string
	flagImages      bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [url...]",
	Short: "Scrape many recipe pages and write them to CSV or JSON lines",
	Long: `Batch scrapes every URL given as an argument or listed in --input (one per
line, # starts a comment) and streams the recipes through the output pipeline.

Examples:
  scraper batch --input urls.txt --output output/recipes.csv
  scraper batch --input urls.txt --format dual --images --metrics-addr :9090`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&flagInput, "input", "", "File with one URL per line")
	batchCmd.Flags().StringVar(&flagOutput, "output", "", "Output file path")
	batchCmd.Flags().StringVar(&flagFormat, "format", "", "Output format: csv, json, or dual")
	batchCmd.Flags().IntVar(&flagParallel, "parallel", 0, "Number of concurrent scrapes")
	batchCmd.Flags().IntVar(&flagMaxRetries, "max-retries", 0, "Retry attempts for timeouts and connection failures")
	batchCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Prometheus metrics listen address (e.g. :9090)")
	batchCmd.Flags().BoolVar(&flagImages, "images", false, "Download and normalize hero images")
}

func applyBatchFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputFile = flagOutput
	}
	if flags.Changed("format") {
		cfg.OutputFormat = strings.ToLower(flagFormat)
	}
	if flags.Changed("parallel") {
		cfg.Parallelism = flagParallel
	}
	if flags.Changed("max-retries") {
		cfg.MaxRetries = flagMaxRetries
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = flagMetricsAddr
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	applyBatchFlags(cmd, cfg)
	if err := validateConfig(); err != nil {
		return err
	}

	urls, err := collectURLs(args, flagInput)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs given: pass them as arguments or with --input")
	}

	ctx := cmd.Context()
	slog.Info("starting batch",
		slog.Int("urls", len(urls)),
		slog.Int("workers", cfg.Parallelism),
		slog.String("output", cfg.OutputFile),
	)

	s, err := scraper.NewScraper(cfg)
	if err != nil {
		return fmt.Errorf("initialising scraper: %w", err)
	}
	if flagImages {
		store := heroimage.NewFileStore(cfg.ImageDir, cfg.ImageURLPrefix)
		s.SetImageRetriever(heroimage.NewRetriever(cfg, store))
	}

	writer, err := createWriter(cfg.OutputFormat, cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if err := writer.Close(); err != nil {
			slog.Error("close writer", slog.Any("error", err))
		}
	}()

	metricsServer := startMetricsServer(cfg.MetricsAddr, s.Metrics)

	p := pipeline.NewPipeline(ctx, writer, cfg)
	p.Start(cfg.Parallelism)
	if cfg.Verbose {
		p.StartMetricsReporting(10 * time.Second)
	}

	result, runErr := s.Run(ctx, urls, p)
	if runErr != nil {
		slog.Warn("batch interrupted", slog.Any("error", runErr))
	}

	if err := p.Close(); err != nil {
		return fmt.Errorf("pipeline shutdown failed: %w", err)
	}
	if err := writer.Validate(); err != nil {
		return fmt.Errorf("output validation failed: %w", err)
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		cancel()
	}

	printSummary(cmd, result, cfg.OutputFile, p.GetMetrics())
	return runErr
}

// collectURLs merges args with the non-blank, non-comment lines of inputFile.
func collectURLs(args []string, inputFile string) ([]string, error) {
	urls := append([]string(nil), args...)
	if inputFile == "" {
		return urls, nil
	}

	f, err := os.Open(inputFile)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return urls, nil
}

func startMetricsServer(addr string, metrics *scraper.Metrics) *http.Server {
	if addr == "" || metrics == nil {
		return nil
	}

	server := &http.Server{
		Addr:    addr,
		Handler: promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}),
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", slog.Any("error", err))
		}
	}()
	slog.Info("metrics server enabled", slog.String("addr", addr))
	return server
}

func createWriter(format, filename string) (pipeline.OutputWriter, error) {
	switch format {
	case "json":
		return pipeline.NewJSONWriter(filename)
	case "csv":
		return pipeline.NewCSVWriter(filename)
	case "dual":
		jsonFilename := strings.TrimSuffix(filename, ".csv") + ".jsonl"
		return pipeline.NewDualWriter(filename, jsonFilename)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func printSummary(cmd *cobra.Command, result *models.BatchResult, outputFile string, metrics map[string]interface{}) {
	out := cmd.OutOrStdout()
	separator := "--------------------------------------------------"
	fmt.Fprintln(out, "\n"+separator)
	fmt.Fprintln(out, "Batch complete")

	processed := int64(0)
	if n, ok := metrics["processed_recipes"].(int64); ok {
		processed = n
	}
	duration := result.EndTime.Sub(result.StartTime)

	successRate := 0.0
	if result.URLCount > 0 {
		successRate = float64(result.SuccessCount) / float64(result.URLCount) * 100
	}
	perSec := 0.0
	if duration.Seconds() > 0 {
		perSec = float64(result.SuccessCount) / duration.Seconds()
	}

	fmt.Fprintf(out, "  URLs:          %d\n", result.URLCount)
	fmt.Fprintf(out, "  Recipes:       %d (%d written)\n", result.SuccessCount, processed)
	fmt.Fprintf(out, "  Success rate:  %.2f%%\n", successRate)
	if len(result.ByMethod) > 0 {
		fmt.Fprintf(out, "  By method:     %v\n", result.ByMethod)
	}
	fmt.Fprintf(out, "  Errors:        %d\n", result.ErrorCount)
	fmt.Fprintf(out, "  Retries:       %d\n", result.RetryCount)
	fmt.Fprintf(out, "  Requests:      %d\n", result.RequestCount)
	if result.ImageCount > 0 {
		fmt.Fprintf(out, "  Images:        %d\n", result.ImageCount)
	}
	if len(result.ErrorsByType) > 0 {
		fmt.Fprintf(out, "  Error types:   %v\n", result.ErrorsByType)
	}
	if valErrors, ok := metrics["validation_errors"].(map[string]int); ok && len(valErrors) > 0 {
		fmt.Fprintf(out, "  Validation:    %v\n", valErrors)
	}
	fmt.Fprintf(out, "  Duration:      %v\n", duration)
	fmt.Fprintf(out, "  Recipes/sec:   %.2f\n", perSec)
	fmt.Fprintf(out, "  Output file:   %s\n", outputFile)
	fmt.Fprintln(out, separator)
}
