package model

import (
	"time"
)

// ScanReport is the record one scan request fills as it runs through the pipeline.
type ScanReport struct {
	// UserID identifies who asked for the scan. It selects the media settings.
	UserID string `json:"user_id"`

	// URL is the URL as requested.
	URL string `json:"url"`

	// FinalURL is the URL after redirects. Relative links resolve against it.
	FinalURL string `json:"final_url,omitempty"`

	// StatusCode is the HTTP status of the final response.
	StatusCode int `json:"status_code,omitempty"`

	// ContentType is the Content-Type header of the final response.
	ContentType string `json:"content_type,omitempty"`

	// Headers are the response headers, one joined value per name.
	Headers map[string]string `json:"headers,omitempty"`

	// Body is the fetched body, already capped by the fetcher.
	Body []byte `json:"-"`

	// Result is the extraction result. Nil when the fetch failed.
	Result *ExtractionResult `json:"result,omitempty"`

	// Settings are the media settings used for this scan.
	Settings Settings `json:"settings"`

	// Segments are the outgoing messages in delivery order.
	Segments []Segment `json:"segments"`

	// Error is the failure that stopped the scan, if any.
	Error error `json:"-"`

	// ErrorMessage is Error as a string for JSON output.
	ErrorMessage string `json:"error,omitempty"`

	// PerformedSteps lists the pipeline steps that ran.
	PerformedSteps []string `json:"performed_steps"`

	// DateScanned is when the scan started.
	DateScanned time.Time `json:"date_scanned"`
}

// NewScanReport creates an empty report for the given user and URL.
func NewScanReport(userID, url string) *ScanReport {
	return &ScanReport{
		UserID:         userID,
		URL:            url,
		Settings:       DefaultSettings(),
		Segments:       make([]Segment, 0),
		PerformedSteps: make([]string, 0),
		DateScanned:    time.Now(),
	}
}

// AddSegments appends tagged chunks for a section.
func (r *ScanReport) AddSegments(section Section, chunks []string) {
	r.Segments = append(r.Segments, NewSegments(section, chunks)...)
}

// SegmentsFor returns the segments of one section.
func (r *ScanReport) SegmentsFor(section Section) []Segment {
	out := make([]Segment, 0)
	for _, s := range r.Segments {
		if s.Section == section {
			out = append(out, s)
		}
	}
	return out
}

// Failed reports whether the scan stopped with an error.
func (r *ScanReport) Failed() bool {
	return r.Error != nil
}
