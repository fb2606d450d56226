package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/pagescan/internal/config"
	"github.com/nao1215/pagescan/internal/log"
)

// NewRootCmd creates the root command for pagescan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagescan",
		Short: "Extract contacts and media from a web page",
		Long: `pagescan fetches one web page and extracts the email addresses, phone
numbers, social profile links, page metadata and image, video and document
links it contains.

Output is split into segments no longer than a chat message, in the order a
bot would send them. Per-user settings choose which media sections are sent.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .pagescan in current or home directory)")

	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewSettingsCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the secure structured logger and installs it as the
// slog default.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	logger := log.NewSecureLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	slog.SetDefault(logger)
	return logger
}

// loadConfig layers defaults, the configuration file and changed flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	if f := cmd.Flags().Lookup("config"); f != nil {
		cfg.ConfigFilePath = f.Value.String()
	}
	if _, err := config.Load(cfg, cfg.ConfigFilePath); err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	overrides := []error{
		override(cmd, "user", cmd.Flags().GetString, &cfg.UserID),
		override(cmd, "timeout", cmd.Flags().GetDuration, &cfg.Timeout),
		override(cmd, "user-agent", cmd.Flags().GetString, &cfg.UserAgent),
		override(cmd, "max-body-size", cmd.Flags().GetInt64, &cfg.MaxBodySize),
		override(cmd, "chunk-threshold", cmd.Flags().GetInt, &cfg.ChunkThreshold),
		override(cmd, "chunk-limit", cmd.Flags().GetInt, &cfg.ChunkLimit),
		override(cmd, "concurrent", cmd.Flags().GetBool, &cfg.ConcurrentExtraction),
		override(cmd, "no-media", cmd.Flags().GetBool, &cfg.NoMedia),
		override(cmd, "tor-proxy", cmd.Flags().GetString, &cfg.TorProxyAddress),
		override(cmd, "embedded-tor", cmd.Flags().GetBool, &cfg.UseEmbeddedTor),
		override(cmd, "tor-timeout", cmd.Flags().GetDuration, &cfg.TorStartupTimeout),
		override(cmd, "json", cmd.Flags().GetBool, &cfg.JSONReport),
		override(cmd, "markdown", cmd.Flags().GetBool, &cfg.MarkdownReport),
		override(cmd, "output", cmd.Flags().GetString, &cfg.ReportFile),
		override(cmd, "db-dir", cmd.Flags().GetString, &cfg.DBDir),
		override(cmd, "listen", cmd.Flags().GetString, &cfg.ListenAddress),
	}
	for _, err := range overrides {
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// override copies a flag value into dst when the user set the flag.
// Flags the command does not define are ignored.
func override[T any](cmd *cobra.Command, name string, get func(string) (T, error), dst *T) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := get(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
