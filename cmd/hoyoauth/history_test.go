package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/hoyoauth/internal/database"
	"github.com/nao1215/hoyoauth/internal/model"
)

func runHistory(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewHistoryCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func seedHistory(t *testing.T, dir string) {
	t.Helper()
	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	now := time.Now()
	for i, o := range []model.Outcome{model.OutcomeFailure, model.OutcomeSuccess} {
		r := model.NewLoginReport(model.Account{Name: "main", Region: model.RegionOverseas, Kind: model.LoginKindWeb})
		r.Outcome = o
		r.StartedAt = now.Add(time.Duration(i) * time.Minute)
		if err := db.InsertAttempt(context.Background(), r); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}
	}
	old := model.NewLoginReport(model.Account{Name: "old", Region: model.RegionChinese, Kind: model.LoginKindQRCode})
	old.Outcome = model.OutcomeSuccess
	old.StartedAt = now.Add(-72 * time.Hour)
	if err := db.InsertAttempt(context.Background(), old); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}
}

func TestRunHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("no database yet", func(t *testing.T) {
		t.Parallel()

		out, err := runHistory(t, "--db-dir", filepath.Join(t.TempDir(), "missing"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "No recorded attempts.") {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("summaries", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		seedHistory(t, dir)
		out, err := runHistory(t, "--db-dir", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"main", "old"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output %q", want, out)
			}
		}
	})

	t.Run("attempts of one account", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		seedHistory(t, dir)
		out, err := runHistory(t, "main", "--db-dir", dir, "--outcome", "failure")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "failure") || strings.Contains(out, "old") {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("unknown outcome", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		seedHistory(t, dir)
		if _, err := runHistory(t, "--db-dir", dir, "--outcome", "maybe"); err == nil {
			t.Error("expected an error for an unknown outcome")
		}
	})

	t.Run("prune", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		seedHistory(t, dir)
		out, err := runHistory(t, "--db-dir", dir, "--prune", "24h")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Deleted 1 attempt(s)") {
			t.Errorf("unexpected output %q", out)
		}
	})
}
