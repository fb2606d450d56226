// Package report renders extraction results for delivery.
//
// Format and MediaSection produce the chat-style text that is chunked into
// segments. The Writer implementations print a whole model.ScanReport:
//   - SimpleWriter: the segments as plain text for terminal display
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: a GitHub-flavoured markdown document
package report
