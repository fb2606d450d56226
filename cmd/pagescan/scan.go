package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/pagescan/internal/config"
	"github.com/nao1215/pagescan/internal/extract"
	"github.com/nao1215/pagescan/internal/fetch"
	"github.com/nao1215/pagescan/internal/model"
	"github.com/nao1215/pagescan/internal/pipeline"
	"github.com/nao1215/pagescan/internal/report"
	"github.com/nao1215/pagescan/internal/settings"
	"github.com/nao1215/pagescan/internal/tor"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [url]",
		Short: "Scan a web page for contacts and media",
		Long: `Scan fetches one page and extracts:
- Email addresses (page text, mailto links)
- Phone numbers, validated and written in E.164 form
- Links to known social platforms
- Title, meta description, headings and link/image counts
- Image, video and document (.pdf, .zip, .docx) links

The report is printed as the segments a chat bot would send. Images, videos
and files sections follow the settings of --user (see "pagescan settings").

Examples:
  # Scan a page
  pagescan scan https://example.com/contact

  # Scan with the settings of user 42 and write JSON
  pagescan scan --user 42 --json -o report.json https://example.com

  # Scan an onion service through a running Tor daemon
  pagescan scan --tor-proxy 127.0.0.1:9050 http://exampleonion.onion/`,
		Args: cobra.ExactArgs(1),
		RunE: runScanCmd,
	}

	cmd.Flags().StringP("user", "u", config.DefaultUserID,
		"User whose media settings apply")

	// Fetch flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for the page fetch")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with the fetch")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum number of body bytes read")

	// Tor flags
	cmd.Flags().StringP("tor-proxy", "x", "",
		"Fetch through the Tor SOCKS5 proxy at this address (e.g., 127.0.0.1:9050)")
	cmd.Flags().Bool("embedded-tor", false,
		"Start an embedded Tor daemon and fetch through it")
	cmd.Flags().Duration("tor-timeout", config.DefaultTorStartupTimeout,
		"Timeout for embedded Tor startup")

	// Output flags
	cmd.Flags().Int("chunk-threshold", config.DefaultChunkThreshold,
		"Length above which output is split into segments")
	cmd.Flags().Int("chunk-limit", config.DefaultChunkLimit,
		"Maximum segment length")
	cmd.Flags().Bool("no-media", false,
		"Omit the images, videos and files sections")
	cmd.Flags().Bool("concurrent", false,
		"Run independent extraction steps concurrently")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	cmd.Flags().String("db-dir", "",
		"Directory of the settings database (default: XDG data directory)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.URL = args[0]

	logger := setupLogger(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runScan(ctx, cfg, cmd.OutOrStdout(), logger)
}

// runScan executes one scan and writes the report.
func runScan(ctx context.Context, cfg *config.Config, stdout io.Writer, logger *slog.Logger) error {
	httpClient, cleanup, err := newHTTPClient(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	store, err := settings.Open(cfg.DBDir, settings.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open settings database: %w", err)
	}
	defer store.Close()

	scanner := newScanner(cfg, httpClient, store, logger)

	logger.Info("starting scan",
		"url", cfg.URL,
		"user", cfg.UserID,
		"steps", scanner.Steps(),
	)

	scan := scanner.Scan(ctx, cfg.UserID, cfg.URL)

	if err := outputReport(cfg, stdout, scan); err != nil {
		return err
	}

	if scan.Failed() {
		return fmt.Errorf("scan of %s failed: %w", cfg.URL, scan.Error)
	}
	return nil
}

// newScanner wires the fetcher, extraction engine and settings store into
// a scanner configured from cfg.
func newScanner(cfg *config.Config, httpClient *http.Client, store settings.Store, logger *slog.Logger) *pipeline.Scanner {
	fetchOpts := []fetch.Option{
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithLogger(logger),
	}
	if httpClient != nil {
		fetchOpts = append(fetchOpts, fetch.WithHTTPClient(httpClient))
	}

	engine := extract.New(
		extract.WithLogger(logger),
		extract.WithConcurrentSteps(cfg.ConcurrentExtraction),
	)

	return pipeline.NewScanner(fetch.New(fetchOpts...), store,
		pipeline.WithScannerLogger(logger),
		pipeline.WithExtractor(engine),
		pipeline.WithChunkLimits(cfg.ChunkThreshold, cfg.ChunkLimit),
		pipeline.WithMedia(!cfg.NoMedia),
	)
}

// newHTTPClient returns the client fetches go through. A nil client means
// a direct connection. cleanup is always non-nil.
func newHTTPClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*http.Client, func(), error) {
	noop := func() {}

	switch {
	case cfg.TorProxyAddress != "":
		client, err := tor.NewClient(cfg.TorProxyAddress, cfg.Timeout)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create Tor client: %w", err)
		}

		status := client.CheckConnection(ctx)
		if status != tor.ProxyStatusOK {
			return nil, noop, fmt.Errorf("tor proxy check failed: %s (make sure Tor is running at %s)",
				status, cfg.TorProxyAddress)
		}

		logger.Info("Tor proxy connection verified", "address", cfg.TorProxyAddress)
		return client.NewHTTPClient(), noop, nil

	case cfg.UseEmbeddedTor:
		client, embeddedTor, err := startEmbeddedTor(ctx, cfg, logger)
		if err != nil {
			return nil, noop, err
		}
		cleanup := func() {
			logger.Info("stopping embedded Tor daemon")
			if err := embeddedTor.Stop(); err != nil {
				logger.Error("failed to stop embedded Tor", "error", err)
			}
		}
		return client.NewHTTPClient(), cleanup, nil
	}

	return nil, noop, nil
}

// startEmbeddedTor starts an embedded Tor daemon using tornago.
func startEmbeddedTor(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*tor.Client, *tor.EmbeddedTor, error) {
	fmt.Fprintln(os.Stderr, "Starting embedded Tor daemon (this may take 1-3 minutes)...")

	embeddedTor := tor.NewEmbeddedTor(
		tor.WithStartupTimeout(cfg.TorStartupTimeout),
	)

	if err := embeddedTor.Start(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to start embedded Tor: %w", err)
	}

	logger.Info("embedded Tor daemon started", "socksAddr", embeddedTor.SocksAddr())

	client, err := embeddedTor.NewClient(cfg.Timeout)
	if err != nil {
		_ = embeddedTor.Stop() //nolint:errcheck // Best effort cleanup
		return nil, nil, fmt.Errorf("failed to create Tor client: %w", err)
	}

	status := client.CheckConnection(ctx)
	if status != tor.ProxyStatusOK {
		_ = embeddedTor.Stop() //nolint:errcheck // Best effort cleanup
		return nil, nil, fmt.Errorf("embedded Tor proxy check failed: %s", status)
	}

	return client, embeddedTor, nil
}

// outputReport writes the scan report in the requested format.
func outputReport(cfg *config.Config, stdout io.Writer, scan *model.ScanReport) error {
	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports hold personal data, so only the owner may read them.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	if _, err := writer.Write(scan); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
