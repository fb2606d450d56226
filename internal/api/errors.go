package api

import "errors"

var (
	// ErrInvalidRequestBody is returned when the request body cannot be decoded.
	ErrInvalidRequestBody = errors.New("invalid request body")
	// ErrMultipleJSONObjects is returned when the request body contains more than one JSON object.
	ErrMultipleJSONObjects = errors.New("request body must contain a single JSON object")
	// ErrURLRequired is returned when a scan request has no URL.
	ErrURLRequired = errors.New("url required")
	// ErrUserIDRequired is returned when a scan request has no user ID.
	ErrUserIDRequired = errors.New("user_id required")
)
