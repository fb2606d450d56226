package fetch

import "errors"

// Fetch errors. Their messages are shown to users verbatim, so the wrapped
// forms read "fetch error: ..." and "content-type not HTML: ...".
var (
	// ErrInvalidURL is returned for URLs that are not absolute http(s) URLs.
	ErrInvalidURL = errors.New("send a full URL starting with http:// or https://")

	// ErrRequest is returned when the request could not be sent or the
	// response body could not be read.
	ErrRequest = errors.New("fetch error")

	// ErrNotHTML is returned when the response Content-Type is not text/html.
	ErrNotHTML = errors.New("content-type not HTML")
)
