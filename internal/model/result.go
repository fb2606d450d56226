package model

import "slices"

// FileExtensions are the link suffixes collected as downloadable files.
var FileExtensions = []string{".pdf", ".zip", ".docx"}

// Meta holds page-level metadata.
type Meta struct {
	// Title is the trimmed text of the first <title> element.
	Title string `json:"title"`

	// Description is the trimmed content of <meta name="description">.
	Description string `json:"description"`

	// H1s holds, per <h1> in document order, its trimmed text pieces joined
	// without a separator.
	H1s []string `json:"h1s"`

	// LinksCount is the number of <a> elements carrying an href attribute.
	LinksCount int `json:"links_count"`

	// ImagesCount is the number of <img> elements carrying a src attribute.
	ImagesCount int `json:"images_count"`

	// JSONLDCount is the number of non-empty application/ld+json scripts.
	JSONLDCount int `json:"json_ld_count"`
}

// Media holds absolute media URLs in first-seen document order.
// Duplicates are kept.
type Media struct {
	// Images are <img src> URLs with the query string removed.
	Images []string `json:"images"`

	// Videos are <video src> and nested <source src> URLs with the query string removed.
	Videos []string `json:"videos"`

	// Files are links to documents with one of FileExtensions.
	Files []string `json:"files"`
}

// ExtractionResult contains everything extracted from one page.
// It is built once per fetched page and not modified afterwards.
type ExtractionResult struct {
	// Emails are lowercase, unique and sorted ascending.
	Emails []string `json:"emails"`

	// Phones are E.164 numbers, unique and sorted ascending.
	Phones []string `json:"phones"`

	// Meta is the page metadata.
	Meta Meta `json:"meta"`

	// Social maps a platform domain to its sorted, unique absolute URLs.
	// Only platforms with at least one URL are present.
	Social map[string][]string `json:"social"`

	// SocialOrder lists the platforms of Social in the order their first
	// link appears in the document.
	SocialOrder []string `json:"-"`

	// Media holds image, video and file URLs.
	Media Media `json:"media"`
}

// NewExtractionResult returns a result with all collections empty.
func NewExtractionResult() *ExtractionResult {
	return &ExtractionResult{
		Emails: make([]string, 0),
		Phones: make([]string, 0),
		Meta: Meta{
			H1s: make([]string, 0),
		},
		Social:      make(map[string][]string),
		SocialOrder: make([]string, 0),
		Media: Media{
			Images: make([]string, 0),
			Videos: make([]string, 0),
			Files:  make([]string, 0),
		},
	}
}

// SocialPlatforms returns the platforms present in Social in first-seen
// document order. Platforms missing from SocialOrder follow in
// SocialDomains order.
func (r *ExtractionResult) SocialPlatforms() []string {
	platforms := make([]string, 0, len(r.Social))
	for _, domain := range r.SocialOrder {
		if len(r.Social[domain]) > 0 && !slices.Contains(platforms, domain) {
			platforms = append(platforms, domain)
		}
	}
	for _, domain := range SocialDomains {
		if len(r.Social[domain]) > 0 && !slices.Contains(platforms, domain) {
			platforms = append(platforms, domain)
		}
	}
	return platforms
}

// HasSocial reports whether any social link was found.
func (r *ExtractionResult) HasSocial() bool {
	for _, urls := range r.Social {
		if len(urls) > 0 {
			return true
		}
	}
	return false
}
