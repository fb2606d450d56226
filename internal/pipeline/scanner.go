package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/pagescan/internal/chunk"
	"github.com/nao1215/pagescan/internal/extract"
	"github.com/nao1215/pagescan/internal/model"
	"github.com/nao1215/pagescan/internal/settings"
)

// Scanner runs scan requests. It holds no per-request state and is safe for
// concurrent use as long as its collaborators are.
type Scanner struct {
	pipeline *Pipeline
	chunking chunking
	logger   *slog.Logger
}

// ScannerOption configures a Scanner.
type ScannerOption func(*scannerConfig)

type scannerConfig struct {
	logger    *slog.Logger
	extractor Extractor
	chunking  chunking
	media     bool
}

// WithScannerLogger sets the logger for the scanner and its steps.
func WithScannerLogger(logger *slog.Logger) ScannerOption {
	return func(c *scannerConfig) {
		c.logger = logger
	}
}

// WithExtractor replaces the default extraction engine.
func WithExtractor(extractor Extractor) ScannerOption {
	return func(c *scannerConfig) {
		c.extractor = extractor
	}
}

// WithChunkLimits sets the length above which output is split and the
// maximum segment length.
func WithChunkLimits(threshold, limit int) ScannerOption {
	return func(c *scannerConfig) {
		c.chunking = chunking{threshold: threshold, limit: limit}
	}
}

// WithMedia enables or disables the media sections for every user.
func WithMedia(enabled bool) ScannerOption {
	return func(c *scannerConfig) {
		c.media = enabled
	}
}

// NewScanner creates a Scanner that fetches with fetcher and reads media
// settings from store.
func NewScanner(fetcher Fetcher, store settings.Store, opts ...ScannerOption) *Scanner {
	cfg := &scannerConfig{
		chunking: chunking{threshold: chunk.DefaultThreshold, limit: chunk.DefaultLimit},
		media:    true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.extractor == nil {
		cfg.extractor = extract.New(extract.WithLogger(cfg.logger))
	}

	p := New(WithLogger(cfg.logger))
	p.AddSteps(
		NewFetchStep(fetcher),
		NewSettingsStep(store, cfg.logger),
		NewExtractStep(cfg.extractor),
		&ReportStep{chunking: cfg.chunking},
	)
	if cfg.media {
		p.AddSteps(&MediaStep{chunking: cfg.chunking})
	}

	return &Scanner{
		pipeline: p,
		chunking: cfg.chunking,
		logger:   cfg.logger,
	}
}

// Steps returns the names of the steps a scan runs.
func (s *Scanner) Steps() []string {
	return s.pipeline.StepNames()
}

// Scan fetches url for userID and returns the filled report. It never
// returns nil. When the scan fails, the report's segments are a single
// error section holding the failure message.
func (s *Scanner) Scan(ctx context.Context, userID, url string) *model.ScanReport {
	scan := model.NewScanReport(userID, url)

	if err := s.pipeline.Execute(ctx, scan); err != nil {
		scan.Segments = model.NewSegments(model.SectionError, s.chunking.segments(err.Error()))
		return scan
	}

	s.logger.Info("scan completed",
		"url", scan.FinalURL,
		"status", scan.StatusCode,
		"segments", len(scan.Segments),
	)

	return scan
}
