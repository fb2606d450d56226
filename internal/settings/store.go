// Package settings stores per-user media delivery toggles.
//
// Two Store implementations exist: MemoryStore for a single long-running
// process such as `pagescan serve`, and SQLiteStore, which persists toggles
// so separate CLI invocations see the same settings.
package settings

import (
	"context"
	"errors"
	"strings"

	"github.com/nao1215/pagescan/internal/model"
)

// ErrEmptyUserID is returned when a user ID is blank.
var ErrEmptyUserID = errors.New("user ID must not be empty")

// Store reads and toggles settings. Users without stored settings get
// model.DefaultSettings. Implementations are safe for concurrent use.
type Store interface {
	// Get returns the settings of userID.
	Get(ctx context.Context, userID string) (model.Settings, error)
	// Toggle flips one field for userID and returns the new settings.
	Toggle(ctx context.Context, userID string, field model.SettingField) (model.Settings, error)
}

func normalizeUserID(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", ErrEmptyUserID
	}
	return userID, nil
}
