package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "pagescan"

	// DefaultTimeout bounds one page fetch, redirects included.
	DefaultTimeout = 15 * time.Second

	// DefaultUserAgent is sent with every fetch.
	DefaultUserAgent = "ParserBot/1.0"

	// DefaultMaxBodySize is the number of body bytes read before the rest is discarded.
	DefaultMaxBodySize = 2_000_000

	// DefaultChunkThreshold is the text length at or below which output is sent whole.
	DefaultChunkThreshold = 4000

	// DefaultChunkLimit is the maximum length of one segment.
	DefaultChunkLimit = 3900

	// DefaultListenAddress is where `pagescan serve` listens.
	DefaultListenAddress = "127.0.0.1:8080"

	// DefaultUserID selects the settings of CLI scans run without --user.
	DefaultUserID = "local"

	// DefaultTorStartupTimeout is the maximum time to wait for the embedded
	// Tor daemon to bootstrap.
	DefaultTorStartupTimeout = 3 * time.Minute
)

// Config holds all configuration options for pagescan.
// It is populated from the configuration file and CLI flags and passed
// down explicitly rather than kept in global state.
type Config struct {
	// URL is the page to scan.
	URL string

	// UserID selects whose media settings apply.
	UserID string

	// Timeout bounds one fetch.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with the fetch.
	UserAgent string

	// MaxBodySize is the maximum number of body bytes read.
	MaxBodySize int64

	// ChunkThreshold is the length above which output is split.
	ChunkThreshold int

	// ChunkLimit is the maximum segment length.
	ChunkLimit int

	// ConcurrentExtraction runs independent extraction steps in parallel.
	ConcurrentExtraction bool

	// NoMedia suppresses the images, videos and files sections.
	NoMedia bool

	// TorProxyAddress routes fetches through a SOCKS5 proxy in "host:port"
	// format. Empty means a direct connection.
	TorProxyAddress string

	// UseEmbeddedTor starts a Tor daemon for the fetch.
	// Mutually exclusive with TorProxyAddress.
	UseEmbeddedTor bool

	// TorStartupTimeout is the maximum time to wait for the embedded daemon.
	TorStartupTimeout time.Duration

	// Verbose enables debug logging.
	Verbose bool

	// JSONReport writes the scan as JSON. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport writes the scan as GitHub Flavored Markdown.
	MarkdownReport bool

	// ReportFile is the output path. Empty means stdout.
	ReportFile string

	// ConfigFilePath is the configuration file given with --config.
	ConfigFilePath string

	// DBDir is the directory of the settings database.
	// Defaults to the XDG data directory (~/.local/share/pagescan on Linux).
	DBDir string

	// ListenAddress is the address the API server binds.
	ListenAddress string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		UserID:            DefaultUserID,
		Timeout:           DefaultTimeout,
		UserAgent:         DefaultUserAgent,
		MaxBodySize:       DefaultMaxBodySize,
		ChunkThreshold:    DefaultChunkThreshold,
		ChunkLimit:        DefaultChunkLimit,
		TorStartupTimeout: DefaultTorStartupTimeout,
		DBDir:             XDGDataDir(),
		ListenAddress:     DefaultListenAddress,
	}
}

// XDGDataDir returns the XDG data directory for pagescan.
// On Linux: ~/.local/share/pagescan
// On macOS: ~/Library/Application Support/pagescan
// On Windows: %LOCALAPPDATA%\pagescan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for pagescan.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize <= 0 {
		return ErrInvalidMaxBodySize
	}

	if c.ChunkLimit <= 0 {
		return ErrInvalidChunkLimit
	}

	if c.ChunkThreshold < c.ChunkLimit {
		return ErrInvalidChunkThreshold
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.UseEmbeddedTor && c.TorProxyAddress != "" {
		return ErrConflictingTorOptions
	}

	if c.UseEmbeddedTor && c.TorStartupTimeout <= 0 {
		return ErrInvalidTorStartupTimeout
	}

	return nil
}
