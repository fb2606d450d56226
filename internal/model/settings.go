package model

import (
	"errors"
	"strings"
)

// ErrUnknownSettingField is returned when a setting name is not recognized.
var ErrUnknownSettingField = errors.New("unknown setting field")

// SettingField names one toggle in Settings.
type SettingField string

// Setting field constants.
const (
	// SettingImages toggles delivery of the images section.
	SettingImages SettingField = "images"
	// SettingVideos toggles delivery of the videos section.
	SettingVideos SettingField = "videos"
	// SettingFiles toggles delivery of the files section.
	SettingFiles SettingField = "files"
)

// SettingFields lists all toggles in display order.
var SettingFields = []SettingField{SettingImages, SettingVideos, SettingFiles}

// ParseSettingField converts a user-supplied name into a SettingField.
// It accepts "images", "toggle_images" and "send_images" style names.
func ParseSettingField(name string) (SettingField, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "toggle_")
	name = strings.TrimPrefix(name, "send_")

	switch SettingField(name) {
	case SettingImages, SettingVideos, SettingFiles:
		return SettingField(name), nil
	default:
		return "", ErrUnknownSettingField
	}
}

// Settings holds per-user media delivery toggles.
type Settings struct {
	// SendImages enables the images section.
	SendImages bool `json:"send_images"`

	// SendVideos enables the videos section.
	SendVideos bool `json:"send_videos"`

	// SendFiles enables the files section.
	SendFiles bool `json:"send_files"`
}

// DefaultSettings returns settings with every section enabled.
func DefaultSettings() Settings {
	return Settings{
		SendImages: true,
		SendVideos: true,
		SendFiles:  true,
	}
}

// Enabled reports whether the given field is on.
func (s Settings) Enabled(field SettingField) bool {
	switch field {
	case SettingImages:
		return s.SendImages
	case SettingVideos:
		return s.SendVideos
	case SettingFiles:
		return s.SendFiles
	default:
		return false
	}
}

// Toggle returns a copy of s with the given field flipped.
func (s Settings) Toggle(field SettingField) (Settings, error) {
	switch field {
	case SettingImages:
		s.SendImages = !s.SendImages
	case SettingVideos:
		s.SendVideos = !s.SendVideos
	case SettingFiles:
		s.SendFiles = !s.SendFiles
	default:
		return s, ErrUnknownSettingField
	}
	return s, nil
}
