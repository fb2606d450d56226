package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".pagescan"

// File represents the structure of the .pagescan configuration file.
// Zero values leave the corresponding Config field untouched.
type File struct {
	// Fetch configures page retrieval.
	Fetch FetchSection `yaml:"fetch,omitempty"`

	// Output configures segmentation and media delivery.
	Output OutputSection `yaml:"output,omitempty"`

	// Tor configures proxy routing.
	Tor TorSection `yaml:"tor,omitempty"`

	// Server configures `pagescan serve`.
	Server ServerSection `yaml:"server,omitempty"`

	// Database configures settings persistence.
	Database DatabaseSection `yaml:"database,omitempty"`
}

// FetchSection holds fetch overrides.
type FetchSection struct {
	// Timeout is a Go duration string such as "15s".
	Timeout     string `yaml:"timeout,omitempty"`
	UserAgent   string `yaml:"userAgent,omitempty"`
	MaxBodySize int64  `yaml:"maxBodySize,omitempty"`
}

// OutputSection holds output overrides.
type OutputSection struct {
	ChunkThreshold int  `yaml:"chunkThreshold,omitempty"`
	ChunkLimit     int  `yaml:"chunkLimit,omitempty"`
	NoMedia        bool `yaml:"noMedia,omitempty"`
	Concurrent     bool `yaml:"concurrent,omitempty"`
}

// TorSection holds proxy overrides.
type TorSection struct {
	Proxy string `yaml:"proxy,omitempty"`
}

// ServerSection holds API server overrides.
type ServerSection struct {
	Listen string `yaml:"listen,omitempty"`
}

// DatabaseSection holds persistence overrides.
type DatabaseSection struct {
	Dir string `yaml:"dir,omitempty"`
}

// LoadConfigFile loads a configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfigFile, err)
	}

	return &cf, nil
}

// Apply copies the values set in the file onto cfg.
func (cf *File) Apply(cfg *Config) error {
	if cf.Fetch.Timeout != "" {
		timeout, err := time.ParseDuration(cf.Fetch.Timeout)
		if err != nil {
			return fmt.Errorf("%w: fetch.timeout: %v", ErrInvalidConfigFile, err)
		}
		cfg.Timeout = timeout
	}
	if cf.Fetch.UserAgent != "" {
		cfg.UserAgent = cf.Fetch.UserAgent
	}
	if cf.Fetch.MaxBodySize != 0 {
		cfg.MaxBodySize = cf.Fetch.MaxBodySize
	}

	if cf.Output.ChunkThreshold != 0 {
		cfg.ChunkThreshold = cf.Output.ChunkThreshold
	}
	if cf.Output.ChunkLimit != 0 {
		cfg.ChunkLimit = cf.Output.ChunkLimit
	}
	if cf.Output.NoMedia {
		cfg.NoMedia = true
	}
	if cf.Output.Concurrent {
		cfg.ConcurrentExtraction = true
	}

	if cf.Tor.Proxy != "" {
		cfg.TorProxyAddress = cf.Tor.Proxy
	}
	if cf.Server.Listen != "" {
		cfg.ListenAddress = cf.Server.Listen
	}
	if cf.Database.Dir != "" {
		cfg.DBDir = cf.Database.Dir
	}

	return nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .pagescan in the current directory
// 3. Look for .pagescan in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// Load resolves and applies the configuration file onto cfg.
// A missing file is only an error when configPath was given explicitly.
// It returns the path of the file applied, or "" when none was found.
func Load(cfg *Config, configPath string) (string, error) {
	path := FindConfigFile(configPath)
	if path == "" {
		if configPath != "" {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return "", nil
	}

	file, err := LoadConfigFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	if err := file.Apply(cfg); err != nil {
		return "", err
	}
	return path, nil
}
