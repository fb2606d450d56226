package extract

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// fallbackEncoding is what charset.DetermineEncoding reports when nothing
// in the header, a BOM or a meta tag declared an encoding.
const fallbackEncoding = "windows-1252"

// utf8Encoding is the canonical name reported for UTF-8 labels.
const utf8Encoding = "utf-8"

// decode converts body to a UTF-8 string.
//
// Bodies that are already valid UTF-8 are used as is. Otherwise a charset
// declared by the Content-Type header, a byte order mark or a <meta> tag is
// honoured. Anything still undecodable is dropped, including invalid bytes in
// a body declared as UTF-8.
func decode(body []byte, contentType string) string {
	if utf8.Valid(body) {
		return string(body)
	}

	enc, name, certain := charset.DetermineEncoding(body, contentType)
	if name == utf8Encoding {
		return strings.ToValidUTF8(string(body), "")
	}
	if certain || name != fallbackEncoding {
		if s, _, err := transform.String(enc.NewDecoder(), string(body)); err == nil {
			return strings.ToValidUTF8(s, "")
		}
	}

	return strings.ToValidUTF8(string(body), "")
}
