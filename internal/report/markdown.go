package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/pagescan/internal/model"
)

// MarkdownWriter outputs a scan report as a GitHub-flavoured markdown
// document, for sharing or archiving outside a chat.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ScanReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)

	if report.Failed() || report.Result == nil {
		w.writeFailure(md, report)
		w.writeFooter(md)
		return len(md.String()), md.Build()
	}

	result := report.Result
	w.writeSummary(md, result)
	w.writeMeta(md, result.Meta)
	w.writeContacts(md, "Emails", result.Emails)
	w.writeContacts(md, "Phones", result.Phones)
	w.writeSocial(md, result)
	w.writeMedia(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.ScanReport) {
	md.H1("pagescan Report")
	md.PlainText("")

	finalURL := report.FinalURL
	if finalURL == "" {
		finalURL = "-"
	}
	status := "-"
	if report.StatusCode != 0 {
		status = strconv.Itoa(report.StatusCode)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", "`" + report.URL + "`"},
			{"Final URL", "`" + finalURL + "`"},
			{"HTTP Status", status},
			{"Scan Date", report.DateScanned.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeFailure(md *markdown.Markdown, report *model.ScanReport) {
	msg := report.ErrorMessage
	if report.Error != nil {
		msg = report.Error.Error()
	}
	if msg == "" {
		msg = "no result"
	}
	md.Cautionf("The page could not be scanned: %s", msg)
	md.PlainText("")
}

// writeSummary writes the signal counts, with a pie chart when anything was found.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, result *model.ExtractionResult) {
	socialCount := 0
	for _, urls := range result.Social {
		socialCount += len(urls)
	}

	counts := []struct {
		label string
		n     int
	}{
		{"Emails", len(result.Emails)},
		{"Phones", len(result.Phones)},
		{"Social Links", socialCount},
		{"Images", len(result.Media.Images)},
		{"Videos", len(result.Media.Videos)},
		{"Files", len(result.Media.Files)},
	}

	md.H2("Summary")
	md.PlainText("")

	rows := make([][]string, 0, len(counts))
	total := 0
	for _, c := range counts {
		rows = append(rows, []string{c.label, strconv.Itoa(c.n)})
		total += c.n
	}
	md.Table(markdown.TableSet{Header: []string{"Signal", "Count"}, Rows: rows})
	md.PlainText("")

	if total == 0 {
		md.Note("No contact or media signals were found on this page.")
		md.PlainText("")
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Signals Found"),
		piechart.WithShowData(true),
	)
	for _, c := range counts {
		if c.n > 0 {
			chart.LabelAndIntValue(c.label, uint64(c.n))
		}
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeMeta(md *markdown.Markdown, meta model.Meta) {
	md.H2("Metadata")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Title", orDash(meta.Title)},
			{"Description", orDash(meta.Description)},
			{"Links", strconv.Itoa(meta.LinksCount)},
			{"Images", strconv.Itoa(meta.ImagesCount)},
			{"JSON-LD Blocks", strconv.Itoa(meta.JSONLDCount)},
		},
	})
	md.PlainText("")

	if len(meta.H1s) > 0 {
		md.Details("Headings (h1)", strings.Join(meta.H1s, "\n"))
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeContacts(md *markdown.Markdown, title string, items []string) {
	md.H2(title)
	md.PlainText("")

	if len(items) == 0 {
		md.PlainText("None found.")
		md.PlainText("")
		return
	}

	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "`" + item + "`"
	}
	md.BulletList(quoted...)
	md.PlainText("")
}

func (w *MarkdownWriter) writeSocial(md *markdown.Markdown, result *model.ExtractionResult) {
	if !result.HasSocial() {
		return
	}

	md.H2("Social Links")
	md.PlainText("")

	title := cases.Title(language.English)
	rows := make([][]string, 0)
	for _, platform := range result.SocialPlatforms() {
		for _, u := range result.Social[platform] {
			rows = append(rows, []string{title.String(platform), u})
		}
	}
	md.Table(markdown.TableSet{Header: []string{"Platform", "URL"}, Rows: rows})
	md.PlainText("")
}

// writeMedia writes the media lists the user has enabled.
func (w *MarkdownWriter) writeMedia(md *markdown.Markdown, report *model.ScanReport) {
	media := report.Result.Media
	sections := []struct {
		field model.SettingField
		urls  []string
	}{
		{model.SettingImages, media.Images},
		{model.SettingVideos, media.Videos},
		{model.SettingFiles, media.Files},
	}

	title := cases.Title(language.English)
	for _, s := range sections {
		if len(s.urls) == 0 {
			continue
		}
		md.H2(title.String(string(s.field)))
		md.PlainText("")
		if !report.Settings.Enabled(s.field) {
			md.PlainTextf("%d item(s) hidden by settings.", len(s.urls))
			md.PlainText("")
			continue
		}
		items := make([]string, len(s.urls))
		for i, u := range s.urls {
			items[i] = fmt.Sprintf("[%s](%s)", Filename(u), u)
		}
		md.BulletList(items...)
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [pagescan](https://github.com/nao1215/pagescan)*")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
