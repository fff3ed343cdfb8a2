package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/reactorwatch/psrscan/internal/config"
	"github.com/reactorwatch/psrscan/internal/database"
	"github.com/reactorwatch/psrscan/internal/extract"
	"github.com/reactorwatch/psrscan/internal/fetch"
	"github.com/reactorwatch/psrscan/internal/log"
	"github.com/reactorwatch/psrscan/internal/model"
	"github.com/reactorwatch/psrscan/internal/pipeline"
	"github.com/reactorwatch/psrscan/internal/report"
)

// NewScrapeCmd creates the scrape command.
func NewScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Download the 1999 archive and extract reactor status records",
		Long: `Scrape walks every day of calendar year 1999 in order, downloads the
daily Power Reactor Status Report page (or reuses the on-disk cache),
and appends one pipe-delimited line per reactor unit to the output file:

  M/D/YYYY|UNIT|POWER|REASON_OR_COMMENT

Days whose page cannot be fetched or parsed are logged and skipped;
the run continues and reports them in the final summary. Re-running
after a partial failure reuses cached pages and only downloads the
missing days.

Examples:
  # Produce output/nrc_reactor_status_1999.psv with defaults
  psrscan scrape

  # Custom output path and cache location
  psrscan scrape --out data/1999.psv --cache-dir /tmp/nrc-cache

  # Re-fetch everything, ignoring the cache
  psrscan scrape --no-cache

  # Write a Markdown run summary alongside the data
  psrscan scrape --summary output/summary.md`,
		Args: cobra.NoArgs,
		RunE: runScrapeCmd,
	}

	// Output flags
	cmd.Flags().StringP("out", "o", config.DefaultOutputFile,
		"Pipe-delimited output file path (truncated at run start)")
	cmd.Flags().StringP("summary", "s", "",
		"Write a Markdown run summary to the specified file")

	// Cache flags
	cmd.Flags().String("cache-dir", config.DefaultCacheDir,
		"Directory for the raw HTML cache")
	cmd.Flags().Bool("no-cache", false,
		"Fetch every page from the network and skip the cache entirely")

	// Fetch behavior flags
	cmd.Flags().String("base-url", config.DefaultBaseURL,
		"Archive URL prefix for the daily report pages")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")
	cmd.Flags().IntP("retries", "r", config.DefaultRetries,
		"Maximum attempts per network fetch")
	cmd.Flags().Duration("retry-backoff", config.DefaultRetryBackoff,
		"Base of the linear backoff between retry attempts")
	cmd.Flags().Duration("delay", config.DefaultFetchDelay,
		"Politeness delay between network fetches (cache hits skip it)")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header for HTTP requests")
	cmd.Flags().Bool("ignore-robots", false,
		"Skip the robots.txt courtesy check")

	// Database flags
	cmd.Flags().Bool("no-db", false,
		"Disable the SQLite record store and fetch ledger")
	cmd.Flags().String("db-dir", "",
		"Directory for the SQLite database (default: XDG data directory)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .psrscan in current or home directory)")

	return cmd
}

// runScrapeCmd executes the scrape command.
func runScrapeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScrape(ctx, cfg, logger)
}

// buildConfig creates a Config from the config file and command flags.
// Precedence from lowest to highest: built-in defaults, config file,
// explicitly set flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly named a config file, it must exist.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyFlags overrides config values with explicitly set flags.
// Unset flags keep whatever the defaults and config file produced.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("out") {
		if cfg.OutputFile, err = flags.GetString("out"); err != nil {
			return err
		}
	}
	if flags.Changed("summary") {
		if cfg.SummaryFile, err = flags.GetString("summary"); err != nil {
			return err
		}
	}
	if flags.Changed("cache-dir") {
		if cfg.CacheDir, err = flags.GetString("cache-dir"); err != nil {
			return err
		}
	}
	if cfg.NoCache, err = flags.GetBool("no-cache"); err != nil {
		return err
	}
	if flags.Changed("base-url") {
		if cfg.BaseURL, err = flags.GetString("base-url"); err != nil {
			return err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("retries") {
		if cfg.Retries, err = flags.GetInt("retries"); err != nil {
			return err
		}
	}
	if flags.Changed("retry-backoff") {
		if cfg.RetryBackoff, err = flags.GetDuration("retry-backoff"); err != nil {
			return err
		}
	}
	if flags.Changed("delay") {
		if cfg.FetchDelay, err = flags.GetDuration("delay"); err != nil {
			return err
		}
	}
	if flags.Changed("user-agent") {
		if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
			return err
		}
	}
	if flags.Changed("ignore-robots") {
		if cfg.IgnoreRobots, err = flags.GetBool("ignore-robots"); err != nil {
			return err
		}
	}

	noDB, err := flags.GetBool("no-db")
	if err != nil {
		return err
	}
	cfg.SaveToDB = !noDB

	if flags.Changed("db-dir") {
		if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
			return err
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.JSONLog, _ = cmd.Root().PersistentFlags().GetBool("log-json") //nolint:errcheck // Flag is always registered

	return nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on the config.
func setupLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	w := cmd.ErrOrStderr()
	if cfg.JSONLog {
		return log.NewJSONLogger(w, cfg.Verbose)
	}
	return log.NewLogger(w, cfg.Verbose)
}

// runScrape executes the extraction run.
func runScrape(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting run",
		"baseURL", cfg.BaseURL,
		"output", cfg.OutputFile,
		"cacheDir", cfg.CacheDir,
		"noCache", cfg.NoCache,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.StatusDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "path", db.Path())
	}

	// The output file is truncated here: a run regenerates the dataset
	// from scratch, appending day by day as extraction proceeds.
	outFile, err := report.CreateOutputFile(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer outFile.Close()

	fetcher, err := newFetcher(ctx, cfg, logger)
	if err != nil {
		return err
	}

	steps := []pipeline.Step{
		pipeline.NewFetchStep(fetcher),
		pipeline.NewExtractStep(extract.NewExtractor()),
		pipeline.NewStoreStep(db),
		pipeline.NewWriteStep(report.NewPSVWriter(outFile)),
	}

	runner := pipeline.NewRunner(
		pipeline.NewPipeline(steps, pipeline.WithLogger(logger)),
		pipeline.WithRunnerLogger(logger),
		pipeline.WithFailureLedger(db),
	)

	dateRange := model.Year1999()
	fmt.Printf("Extracting %s (%d days)...\n", dateRange, dateRange.Len())
	startTime := time.Now()

	summary, err := runner.Run(ctx, dateRange)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Run cancelled")
		}
		return err
	}

	elapsed := time.Since(startTime)
	fmt.Printf("Run completed in %s\n\n", elapsed.Round(time.Millisecond))
	printSummary(summary, cfg.OutputFile)

	if cfg.SummaryFile != "" {
		if err := writeSummaryFile(cfg.SummaryFile, summary); err != nil {
			return err
		}
		fmt.Printf("Summary written to %s\n", cfg.SummaryFile)
	}

	return nil
}

// newFetcher assembles the fetcher from the config: HTTP client, cache,
// and the optional robots.txt courtesy check.
func newFetcher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*fetch.Fetcher, error) {
	client := fetch.NewHTTPClient(cfg.Timeout)

	opts := []fetch.Option{
		fetch.WithRetries(cfg.Retries),
		fetch.WithBackoff(cfg.RetryBackoff),
		fetch.WithDelay(cfg.FetchDelay),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithLogger(logger),
	}

	if !cfg.NoCache {
		opts = append(opts, fetch.WithCache(fetch.NewCache(cfg.CacheDir)))
	}

	if !cfg.IgnoreRobots {
		group, err := fetch.LoadRobots(ctx, client, cfg.BaseURL, cfg.UserAgent)
		if err != nil {
			return nil, err
		}
		if group != nil {
			opts = append(opts, fetch.WithRobots(group))
		}
	}

	return fetch.NewFetcher(client, cfg.BaseURL, opts...), nil
}

// printSummary prints the run outcome to stdout.
func printSummary(summary *model.RunSummary, outputFile string) {
	fmt.Printf("Days processed: %d (failed: %d, empty: %d)\n",
		summary.DaysProcessed, summary.DaysFailed, summary.DaysEmpty)
	fmt.Printf("Cache hits: %d, network fetches: %d\n",
		summary.CacheHits, summary.NetworkFetches)
	fmt.Printf("Records written: %d -> %s\n", summary.Records, outputFile)

	if len(summary.FailedDates) > 0 {
		fmt.Println("\nFailed days:")
		for _, d := range summary.FailedDates {
			fmt.Printf("  %s\n", d.Format("2006-01-02"))
		}
	}
}

// writeSummaryFile writes the Markdown run summary.
func writeSummaryFile(path string, summary *model.RunSummary) error {
	f, err := report.CreateOutputFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := report.NewSummaryWriter(f).WriteSummary(summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
