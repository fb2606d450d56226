// Package main provides the entry point for the pagescan CLI.
//
// pagescan fetches a single web page and reports the contact details,
// social links, metadata and media it references, split into chat-sized
// segments.
//
// Usage:
//
//	pagescan scan https://example.com/contact
//	pagescan settings toggle images --user 42
//	pagescan serve --listen :8080
//
// See --help for all available options.
package main

// main is the entry point for pagescan.
func main() {
	Execute()
}
