package model

// Section identifies which part of a scan a segment belongs to.
type Section string

// Section constants.
const (
	// SectionReport is the main contact and metadata report.
	SectionReport Section = "report"
	// SectionImages is the images list.
	SectionImages Section = "images"
	// SectionVideos is the videos list.
	SectionVideos Section = "videos"
	// SectionFiles is the document links list.
	SectionFiles Section = "files"
	// SectionError carries a fetch failure message.
	SectionError Section = "error"
)

// ParseModeMarkdown is the text rendering mode for segments. It supports
// *emphasis*, `code` and [label](url) links.
const ParseModeMarkdown = "Markdown"

// Segment is one transport-safe piece of output text.
type Segment struct {
	// Section is the part of the scan this segment belongs to.
	Section Section `json:"section"`

	// Index is the 1-based position of this segment within its section.
	Index int `json:"index"`

	// Total is the number of segments in the section.
	Total int `json:"total"`

	// Text is the segment content.
	Text string `json:"text"`

	// BackButton asks the delivery layer to attach a "back" affordance.
	BackButton bool `json:"back_button"`

	// ParseMode is the rendering mode the text was written for.
	ParseMode string `json:"parse_mode"`
}

// NewSegments tags every chunk of a section.
func NewSegments(section Section, chunks []string) []Segment {
	segments := make([]Segment, 0, len(chunks))
	for i, chunk := range chunks {
		segments = append(segments, Segment{
			Section:    section,
			Index:      i + 1,
			Total:      len(chunks),
			Text:       chunk,
			BackButton: true,
			ParseMode:  ParseModeMarkdown,
		})
	}
	return segments
}
