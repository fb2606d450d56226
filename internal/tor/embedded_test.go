package tor

import (
	"errors"
	"testing"
	"time"
)

func TestNewEmbeddedTor(t *testing.T) {
	t.Parallel()

	t.Run("default timeout", func(t *testing.T) {
		t.Parallel()

		if got := NewEmbeddedTor().startupTimeout; got != defaultStartupTimeout {
			t.Errorf("startupTimeout = %v, want %v", got, defaultStartupTimeout)
		}
	})

	t.Run("custom timeout", func(t *testing.T) {
		t.Parallel()

		if got := NewEmbeddedTor(WithStartupTimeout(30 * time.Second)).startupTimeout; got != 30*time.Second {
			t.Errorf("startupTimeout = %v", got)
		}
	})
}

func TestEmbeddedTor_NotStarted(t *testing.T) {
	t.Parallel()

	e := NewEmbeddedTor()

	if e.IsRunning() {
		t.Error("IsRunning() = true before Start")
	}
	if e.SocksAddr() != "" {
		t.Errorf("SocksAddr() = %q before Start", e.SocksAddr())
	}
	if err := e.Stop(); err != nil {
		t.Errorf("Stop() on unstarted instance: %v", err)
	}
	if err := e.Stop(); err != nil {
		t.Errorf("second Stop(): %v", err)
	}
	if _, err := e.NewClient(time.Second); !errors.Is(err, ErrNotRunning) {
		t.Errorf("NewClient() error = %v, want ErrNotRunning", err)
	}
}
