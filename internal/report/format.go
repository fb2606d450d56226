package report

import (
	"fmt"
	"strings"

	"github.com/nao1215/pagescan/internal/model"
)

// maxSocialURLs caps the URLs listed per social platform.
const maxSocialURLs = 5

// Status describes the fetch that produced a result.
type Status struct {
	// URL is the final URL of the page.
	URL string
	// Error, when not empty, replaces the whole report.
	Error string
}

// Format renders result as a chat report using *emphasis* and `code` spans.
//
// Sections appear in a fixed order: URL, title, description, link and image
// counts, emails, phones and social links. Emails and phones fall back to a
// "None found" line; the social section is omitted when empty. The HTTP
// status is not shown, so a 404 page renders like any other.
func Format(status Status, result *model.ExtractionResult) string {
	if status.Error != "" {
		return fmt.Sprintf("*❌ Error:* `%s`", status.Error)
	}
	if result == nil {
		result = model.NewExtractionResult()
	}

	lines := []string{fmt.Sprintf("*🌐 URL:* `%s`", status.URL), ""}

	meta := result.Meta
	if meta.Title != "" {
		lines = append(lines, "*📄 Title:* "+meta.Title)
	}
	if meta.Description != "" {
		lines = append(lines, "*📄 Meta Description:* "+meta.Description, "")
	}
	lines = append(lines,
		fmt.Sprintf("*🔗 Links Found:* `%d`", meta.LinksCount),
		fmt.Sprintf("*🖼️ Images Found:* `%d`", meta.ImagesCount),
		"",
	)

	lines = appendList(lines, "*✉️ Emails:*", result.Emails)
	lines = appendList(lines, "*📞 Phones:*", result.Phones)

	if result.HasSocial() {
		lines = append(lines, "*📱 Social Links:*")
		for _, platform := range result.SocialPlatforms() {
			lines = append(lines, fmt.Sprintf("  • *%s*", platform))
			urls := result.Social[platform]
			if len(urls) > maxSocialURLs {
				urls = urls[:maxSocialURLs]
			}
			for _, u := range urls {
				lines = append(lines, fmt.Sprintf("      `%s`", u))
			}
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func appendList(lines []string, header string, items []string) []string {
	if len(items) == 0 {
		return append(lines, header+" None found", "")
	}
	lines = append(lines, header)
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("  • `%s`", item))
	}
	return append(lines, "")
}

// mediaHeaders are the section headers of the media lists.
var mediaHeaders = map[model.Section]string{
	model.SectionImages: "*Images:*",
	model.SectionVideos: "*Videos:*",
	model.SectionFiles:  "*Files:*",
}

// MediaSection renders one media list with a [filename](url) item per URL.
// It returns "" when urls is empty or kind is not a media section.
func MediaSection(kind model.Section, urls []string) string {
	header, ok := mediaHeaders[kind]
	if !ok || len(urls) == 0 {
		return ""
	}

	lines := make([]string, 0, len(urls)+2)
	lines = append(lines, header)
	for _, u := range urls {
		lines = append(lines, fmt.Sprintf("  • [%s](%s)", Filename(u), u))
	}
	lines = append(lines, "")

	return strings.Join(lines, "\n")
}

// Filename returns the text after the last slash of u, or u itself when
// that is empty.
func Filename(u string) string {
	name := u[strings.LastIndex(u, "/")+1:]
	if name == "" {
		return u
	}
	return name
}
