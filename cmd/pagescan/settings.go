package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nao1215/pagescan/internal/config"
	"github.com/nao1215/pagescan/internal/model"
	"github.com/nao1215/pagescan/internal/settings"
)

// NewSettingsCmd creates the settings command.
func NewSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change per-user media settings",
		Long: `Settings choose which media sections a scan sends. Every section is on
until the user turns it off. Fields: images, videos, files.

Examples:
  pagescan settings show --user 42
  pagescan settings toggle videos --user 42`,
	}

	cmd.PersistentFlags().StringP("user", "u", config.DefaultUserID, "User whose settings to use")
	cmd.PersistentFlags().String("db-dir", "",
		"Directory of the settings database (default: XDG data directory)")

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the settings of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(ctx context.Context, cfg *config.Config, store settings.Store) error {
				current, err := store.Get(ctx, cfg.UserID)
				if err != nil {
					return err
				}
				printSettings(cmd.OutOrStdout(), cfg.UserID, current)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "toggle [field]",
		Short:     "Flip one media setting of a user",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(model.SettingImages), string(model.SettingVideos), string(model.SettingFiles)},
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := model.ParseSettingField(args[0])
			if err != nil {
				return fmt.Errorf("%w: %q (want images, videos or files)", err, args[0])
			}
			return withStore(cmd, func(ctx context.Context, cfg *config.Config, store settings.Store) error {
				updated, err := store.Toggle(ctx, cfg.UserID, field)
				if err != nil {
					return err
				}
				printSettings(cmd.OutOrStdout(), cfg.UserID, updated)
				return nil
			})
		},
	})

	return cmd
}

// withStore opens the settings database for the duration of fn.
func withStore(cmd *cobra.Command, fn func(context.Context, *config.Config, settings.Store) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupLogger(cmd)

	store, err := settings.Open(cfg.DBDir, settings.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open settings database: %w", err)
	}
	defer store.Close()

	return fn(cmd.Context(), cfg, store)
}

func printSettings(w io.Writer, userID string, s model.Settings) {
	fmt.Fprintf(w, "Settings for %s:\n", userID)
	for _, field := range model.SettingFields {
		state := "off"
		if s.Enabled(field) {
			state = "on"
		}
		fmt.Fprintf(w, "  %-7s %s\n", field, state)
	}
}
