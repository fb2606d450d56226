// Package config provides the pagescan configuration: defaults, the optional
// YAML configuration file and validation.
//
// Values are layered. NewConfig supplies defaults, a .pagescan file in the
// working or home directory overrides them, and command-line flags override
// the file.
package config
