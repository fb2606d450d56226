package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/pagescan/internal/chunk"
	"github.com/nao1215/pagescan/internal/fetch"
	"github.com/nao1215/pagescan/internal/model"
	"github.com/nao1215/pagescan/internal/report"
	"github.com/nao1215/pagescan/internal/settings"
)

// Fetcher retrieves a page. *fetch.Fetcher implements it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Response, error)
}

// Extractor turns a page body into a result. *extract.Engine implements it.
type Extractor interface {
	Extract(ctx context.Context, body []byte, baseURL, contentType string) *model.ExtractionResult
}

// chunking holds the split threshold and per-segment limit.
type chunking struct {
	threshold int
	limit     int
}

func (c chunking) segments(text string) []string {
	return chunk.Segments(text, c.threshold, c.limit)
}

// FetchStep downloads the page.
type FetchStep struct {
	fetcher Fetcher
}

// NewFetchStep creates a FetchStep.
func NewFetchStep(fetcher Fetcher) *FetchStep {
	return &FetchStep{fetcher: fetcher}
}

// Name returns the step name.
func (s *FetchStep) Name() string { return "fetch" }

// Do fetches scan.URL and records the response.
func (s *FetchStep) Do(ctx context.Context, scan *model.ScanReport) error {
	resp, err := s.fetcher.Fetch(ctx, scan.URL)
	if err != nil {
		return err
	}

	scan.FinalURL = resp.URL
	scan.StatusCode = resp.StatusCode
	scan.ContentType = resp.ContentType
	scan.Headers = resp.Headers
	scan.Body = resp.Body

	return nil
}

// SettingsStep loads the user's media settings. A store failure falls back
// to the defaults rather than failing the scan.
type SettingsStep struct {
	store  settings.Store
	logger *slog.Logger
}

// NewSettingsStep creates a SettingsStep.
func NewSettingsStep(store settings.Store, logger *slog.Logger) *SettingsStep {
	return &SettingsStep{store: store, logger: logger}
}

// Name returns the step name.
func (s *SettingsStep) Name() string { return "settings" }

// Do loads the settings for scan.UserID.
func (s *SettingsStep) Do(ctx context.Context, scan *model.ScanReport) error {
	current, err := s.store.Get(ctx, scan.UserID)
	if err != nil {
		s.logger.Warn("using default settings", "user", scan.UserID, "error", err)
		current = model.DefaultSettings()
	}
	scan.Settings = current
	return nil
}

// ExtractStep runs the extraction engine over the fetched body.
type ExtractStep struct {
	extractor Extractor
}

// NewExtractStep creates an ExtractStep.
func NewExtractStep(extractor Extractor) *ExtractStep {
	return &ExtractStep{extractor: extractor}
}

// Name returns the step name.
func (s *ExtractStep) Name() string { return "extract" }

// Do fills scan.Result.
func (s *ExtractStep) Do(ctx context.Context, scan *model.ScanReport) error {
	scan.Result = s.extractor.Extract(ctx, scan.Body, scan.FinalURL, scan.ContentType)
	return nil
}

// ReportStep formats the main report and splits it into segments.
type ReportStep struct {
	chunking
}

// Name returns the step name.
func (s *ReportStep) Name() string { return "report" }

// Do appends the report section.
func (s *ReportStep) Do(_ context.Context, scan *model.ScanReport) error {
	text := report.Format(report.Status{URL: scan.FinalURL}, scan.Result)
	scan.AddSegments(model.SectionReport, s.segments(text))
	return nil
}

// MediaStep appends the images, videos and files sections the user has
// enabled. Empty lists produce no section.
type MediaStep struct {
	chunking
}

// Name returns the step name.
func (s *MediaStep) Name() string { return "media" }

// Do appends the media sections.
func (s *MediaStep) Do(_ context.Context, scan *model.ScanReport) error {
	if scan.Result == nil {
		return nil
	}

	media := scan.Result.Media
	sections := []struct {
		section model.Section
		field   model.SettingField
		urls    []string
	}{
		{model.SectionImages, model.SettingImages, media.Images},
		{model.SectionVideos, model.SettingVideos, media.Videos},
		{model.SectionFiles, model.SettingFiles, media.Files},
	}

	for _, sec := range sections {
		if !scan.Settings.Enabled(sec.field) || len(sec.urls) == 0 {
			continue
		}
		scan.AddSegments(sec.section, s.segments(report.MediaSection(sec.section, sec.urls)))
	}

	return nil
}
