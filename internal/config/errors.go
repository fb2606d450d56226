package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is not positive.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be positive")

	// ErrInvalidChunkLimit is returned when the segment limit is not positive.
	ErrInvalidChunkLimit = errors.New("invalid chunk limit: must be positive")

	// ErrInvalidChunkThreshold is returned when the split threshold is below the segment limit.
	ErrInvalidChunkThreshold = errors.New("invalid chunk threshold: must not be below the chunk limit")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrConflictingTorOptions is returned when both --tor-proxy and
	// --embedded-tor are specified.
	ErrConflictingTorOptions = errors.New("conflicting tor options: --tor-proxy and --embedded-tor cannot be used together")

	// ErrInvalidTorStartupTimeout is returned when the embedded Tor startup
	// timeout is not positive.
	ErrInvalidTorStartupTimeout = errors.New("invalid tor startup timeout: must be positive")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidConfigFile is returned when the configuration file cannot be parsed.
	ErrInvalidConfigFile = errors.New("invalid configuration file")
)
