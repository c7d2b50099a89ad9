package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/hoyoauth/internal/config"
	"github.com/nao1215/hoyoauth/internal/model"
)

func reportWithOutcome(name string, o model.Outcome) *model.LoginReport {
	r := model.NewLoginReport(model.Account{Name: name, Region: model.RegionOverseas, Kind: model.LoginKindWeb})
	r.Outcome = o
	return r
}

func TestCheckReports(t *testing.T) {
	t.Parallel()

	ok := []*model.LoginReport{reportWithOutcome("a", model.OutcomeSuccess)}
	if err := checkReports(ok); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	mixed := append(ok, reportWithOutcome("b", model.OutcomeFailure), reportWithOutcome("c", model.OutcomeChallenge))
	err := checkReports(mixed)
	var failed *errLoginsFailed
	if !errors.As(err, &failed) {
		t.Fatalf("expected *errLoginsFailed, got %v", err)
	}
	if failed.failed != 2 || failed.total != 3 {
		t.Errorf("unexpected counts: %d of %d", failed.failed, failed.total)
	}
}

func TestWriteReports(t *testing.T) {
	t.Parallel()

	reports := []*model.LoginReport{reportWithOutcome("main", model.OutcomeSuccess)}

	t.Run("stdout", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		if err := writeReports(config.NewConfig(), &out, reports); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "main") {
			t.Errorf("expected the account in the output, got %q", out.String())
		}
	})

	t.Run("json file", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.JSONReport = true
		cfg.ReportFile = filepath.Join(t.TempDir(), "out", "report.json")

		var out bytes.Buffer
		if err := writeReports(cfg, &out, reports); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Len() != 0 {
			t.Error("nothing should be written to stdout")
		}

		info, err := os.Stat(cfg.ReportFile)
		if err != nil {
			t.Fatalf("report file missing: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("permissions = %o, expected 600", perm)
		}
		content, err := os.ReadFile(cfg.ReportFile)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(strings.TrimSpace(string(content)), "{") {
			t.Errorf("expected a JSON report, got %q", content)
		}
	})
}
