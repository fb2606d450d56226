// Package pipeline runs one scan request from URL to delivery segments.
//
// A Scanner executes a fixed sequence of Steps over a model.ScanReport:
// fetch, settings, extract, report and media. Each step reads what the
// earlier ones left in the report and adds its own part. A failing step
// stops the pipeline; the Scanner then replaces any output with a single
// error section carrying the failure message as is.
package pipeline
