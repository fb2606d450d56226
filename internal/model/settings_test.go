package model

import (
	"errors"
	"testing"
)

func TestParseSettingField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    SettingField
		wantErr bool
	}{
		{input: "images", want: SettingImages},
		{input: "toggle_videos", want: SettingVideos},
		{input: "send_files", want: SettingFiles},
		{input: " Images ", want: SettingImages},
		{input: "audio", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSettingField(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownSettingField) {
					t.Errorf("expected ErrUnknownSettingField, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSettings_Toggle(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	for _, field := range SettingFields {
		if !s.Enabled(field) {
			t.Errorf("default %s should be enabled", field)
		}
	}

	toggled, err := s.Toggle(SettingVideos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toggled.SendVideos {
		t.Error("videos should be disabled after toggle")
	}
	if !toggled.SendImages || !toggled.SendFiles {
		t.Error("other fields should be unchanged")
	}
	if !s.SendVideos {
		t.Error("Toggle must not modify the receiver")
	}

	again, err := toggled.Toggle(SettingVideos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != DefaultSettings() {
		t.Errorf("double toggle should restore defaults, got %+v", again)
	}

	if _, err := s.Toggle("audio"); !errors.Is(err, ErrUnknownSettingField) {
		t.Errorf("expected ErrUnknownSettingField, got %v", err)
	}
}
