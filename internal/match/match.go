// Package match provides the text recognizers used by the extraction engine.
//
// All functions are pure and safe for concurrent use. They return candidates;
// validation (where any) happens elsewhere.
package match

import (
	"regexp"
	"strings"
)

var (
	// EmailPattern matches email addresses. It is permissive and has no
	// support for RFC 5322 comments or quoted local parts.
	EmailPattern = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)

	// PhonePattern matches international phone number candidates: a plus
	// sign, a digit, at least six digits or separators, and a final digit.
	// Digits and spaces are Unicode classes, so &nbsp; separators match.
	// It over-matches; candidates must go through phone.Normalize.
	PhonePattern = regexp.MustCompile(`\+\p{Nd}[\p{Nd}\s\v\x{1c}-\x{1f}\x{85}\p{Z}\-().]{6,}\p{Nd}`)

	// mailtoPattern captures everything after a mailto: scheme.
	mailtoPattern = regexp.MustCompile(`(?i)^mailto:(.+)`)
)

// Emails returns every email-like substring of text in order of appearance.
// Matches are returned as found, without case folding or deduplication.
func Emails(text string) []string {
	if text == "" {
		return nil
	}
	return EmailPattern.FindAllString(text, -1)
}

// PhoneCandidates returns every phone-like substring of text in order of appearance.
func PhoneCandidates(text string) []string {
	if text == "" {
		return nil
	}
	return PhonePattern.FindAllString(text, -1)
}

// MailtoTarget returns the address part of a mailto: href.
// The href is trimmed first; the remainder is returned literally, including
// any ?subject= style parameters.
func MailtoTarget(href string) (string, bool) {
	m := mailtoPattern.FindStringSubmatch(strings.TrimSpace(href))
	if m == nil {
		return "", false
	}
	return m[1], true
}
