// Package model defines the core data structures used throughout pagescan.
//
// This package contains the following main types:
//   - ExtractionResult: Contact, metadata and media signals extracted from one page
//   - Settings: Per-user toggles for media delivery
//   - Segment: One transport-safe piece of user-facing text
//   - ScanReport: The record a single scan request fills as it moves through the pipeline
//
// Multiple packages (extract, report, pipeline, api) share these types, so they
// live here to keep the import graph acyclic. All types serialize to JSON for
// the --json output and the HTTP API.
package model
