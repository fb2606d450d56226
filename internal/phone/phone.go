// Package phone validates international phone number candidates and renders
// them in E.164 form.
//
// Validity is decided by the libphonenumber numbering-plan metadata shipped
// with github.com/nyaruka/phonenumbers.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// noRegion asks the parser not to assume a default region. Candidates must
// therefore carry their own country code after a leading plus sign.
const noRegion = ""

// Normalize parses raw as an international number and returns its E.164 form
// (a plus sign followed by country code and national number).
//
// The second return value is false when raw does not parse, is not a possible
// number, or is not a valid number in an assigned range. Normalize never
// panics; a failure inside the parser is treated as a rejection.
func Normalize(raw string) (normalized string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			normalized, ok = "", false
		}
	}()

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	num, err := phonenumbers.Parse(raw, noRegion)
	if err != nil {
		return "", false
	}
	if !phonenumbers.IsPossibleNumber(num) || !phonenumbers.IsValidNumber(num) {
		return "", false
	}

	return phonenumbers.Format(num, phonenumbers.E164), true
}

// NormalizeAll normalizes every candidate and returns the accepted numbers in
// input order. Rejected candidates are dropped silently.
func NormalizeAll(candidates []string) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if n, ok := Normalize(c); ok {
			out = append(out, n)
		}
	}
	return out
}
