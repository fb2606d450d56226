package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/pagescan/internal/config"
	"github.com/nao1215/pagescan/internal/fetch"
	"github.com/nao1215/pagescan/internal/model"
	"github.com/nao1215/pagescan/internal/report"
)

const testPage = `<!doctype html>
<html><head><title>Acme Contact</title>
<meta name="description" content="Reach the Acme team">
</head><body>
<h1>Contact us</h1>
<p>Mail <a href="mailto:Sales@Acme.test">sales</a> or call +1 650-253-0000.</p>
<a href="https://www.linkedin.com/company/acme">LinkedIn</a>
<img src="/img/team.jpg?w=200">
<a href="/docs/price-list.pdf">Prices</a>
</body></html>`

func newTestSite(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(testPage))
	})
	mux.HandleFunc("/logo.png", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// runRoot executes the root command and returns stdout and stderr.
func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// TestNewScanCmd tests the scan command creation.
func TestNewScanCmd(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()

	if cmd.Use != "scan [url]" {
		t.Errorf("expected use 'scan [url]', got %q", cmd.Use)
	}

	flags := []struct {
		name      string
		shorthand string
		def       string
	}{
		{"user", "u", config.DefaultUserID},
		{"timeout", "t", "15s"},
		{"user-agent", "", "ParserBot/1.0"},
		{"max-body-size", "", "2000000"},
		{"tor-proxy", "x", ""},
		{"embedded-tor", "", "false"},
		{"chunk-threshold", "", "4000"},
		{"chunk-limit", "", "3900"},
		{"no-media", "", "false"},
		{"concurrent", "", "false"},
		{"json", "j", "false"},
		{"markdown", "m", "false"},
		{"output", "o", ""},
		{"db-dir", "", ""},
	}
	for _, f := range flags {
		t.Run(f.name, func(t *testing.T) {
			t.Parallel()

			flag := cmd.Flags().Lookup(f.name)
			if flag == nil {
				t.Fatalf("expected %s flag", f.name)
			}
			if flag.Shorthand != f.shorthand {
				t.Errorf("expected shorthand %q, got %q", f.shorthand, flag.Shorthand)
			}
			if flag.DefValue != f.def {
				t.Errorf("expected default %q, got %q", f.def, flag.DefValue)
			}
		})
	}
}

// TestRunScanCmd runs whole scans against a local site.
func TestRunScanCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints segments", func(t *testing.T) {
		t.Parallel()

		srv := newTestSite(t)
		stdout, _, err := runRoot(t, "scan", srv.URL+"/", "--db-dir", t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, want := range []string{
			"*📄 Title:* Acme Contact",
			"*📄 Meta Description:* Reach the Acme team",
			"`sales@acme.test`",
			"`+16502530000`",
			"*linkedin.com*",
			"*Images:*",
			"[team.jpg](" + srv.URL + "/img/team.jpg)",
			"*Files:*",
			"[price-list.pdf](" + srv.URL + "/docs/price-list.pdf)",
		} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected output to contain %q:\n%s", want, stdout)
			}
		}
		if strings.Contains(stdout, "*Videos:*") {
			t.Error("empty videos section should be omitted")
		}
	})

	t.Run("writes json report to file", func(t *testing.T) {
		t.Parallel()

		srv := newTestSite(t)
		out := filepath.Join(t.TempDir(), "reports", "acme.json")

		stdout, _, err := runRoot(t, "scan", srv.URL, "--db-dir", t.TempDir(), "--json", "-o", out, "--no-media")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != "" {
			t.Errorf("expected nothing on stdout, got %q", stdout)
		}

		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		var got report.JSONReport
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got.Report == nil || got.Report.Result == nil {
			t.Fatalf("missing result: %s", data)
		}
		if len(got.Report.Result.Emails) != 1 || got.Report.Result.Emails[0] != "sales@acme.test" {
			t.Errorf("emails = %v", got.Report.Result.Emails)
		}
		for _, seg := range got.Report.Segments {
			if seg.Section != model.SectionReport {
				t.Errorf("unexpected section %q with --no-media", seg.Section)
			}
		}
	})

	t.Run("honours toggled settings", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		if _, _, err := runRoot(t, "settings", "toggle", "images", "--user", "7", "--db-dir", dbDir); err != nil {
			t.Fatalf("toggle failed: %v", err)
		}

		srv := newTestSite(t)
		stdout, _, err := runRoot(t, "scan", srv.URL, "--user", "7", "--db-dir", dbDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(stdout, "*Images:*") {
			t.Error("images section should be hidden for user 7")
		}
		if !strings.Contains(stdout, "*Files:*") {
			t.Error("files section should still be sent")
		}
	})

	t.Run("non-html page fails with message", func(t *testing.T) {
		t.Parallel()

		srv := newTestSite(t)
		stdout, _, err := runRoot(t, "scan", srv.URL+"/logo.png", "--db-dir", t.TempDir())
		if !errors.Is(err, fetch.ErrNotHTML) {
			t.Fatalf("expected ErrNotHTML, got %v", err)
		}
		if strings.TrimSpace(stdout) != "content-type not HTML: image/png" {
			t.Errorf("unexpected output %q", stdout)
		}
	})

	t.Run("invalid url", func(t *testing.T) {
		t.Parallel()

		_, _, err := runRoot(t, "scan", "example.com", "--db-dir", t.TempDir())
		if !errors.Is(err, fetch.ErrInvalidURL) {
			t.Errorf("expected ErrInvalidURL, got %v", err)
		}
	})

	t.Run("conflicting formats", func(t *testing.T) {
		t.Parallel()

		_, _, err := runRoot(t, "scan", "https://acme.test", "--json", "--markdown", "--db-dir", t.TempDir())
		if !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("requires exactly one url", func(t *testing.T) {
		t.Parallel()

		if _, _, err := runRoot(t, "scan"); err == nil {
			t.Error("expected error without url")
		}
	})
}

// TestLoadConfigPrecedence checks that flags override the configuration file.
func TestLoadConfigPrecedence(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pagescan.yaml")
	content := "fetch:\n  userAgent: \"FromFile/1.0\"\n  timeout: 40s\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	root := NewRootCmd()
	root.SetArgs([]string{"scan", "--config", path, "--timeout", "5s", "https://acme.test"})

	scanCmd, _, err := root.Find([]string{"scan"})
	if err != nil {
		t.Fatal(err)
	}
	scanCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.UserAgent != "FromFile/1.0" {
			t.Errorf("UserAgent = %q, want value from file", cfg.UserAgent)
		}
		if cfg.Timeout != 5*time.Second {
			t.Errorf("Timeout = %v, want flag value", cfg.Timeout)
		}
		return nil
	}

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
