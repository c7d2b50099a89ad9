package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nao1215/hoyoauth/internal/model"
)

// setupTestDB opens a database in a temporary directory.
func setupTestDB(t *testing.T) *AuditDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func reportFor(a model.Account, outcome model.Outcome, startedAt time.Time) *model.LoginReport {
	r := model.NewLoginReport(a)
	r.Outcome = outcome
	r.StartedAt = startedAt
	r.Duration = 1500 * time.Millisecond
	r.Sends = 2
	return r
}

var (
	mainAccount = model.Account{
		Name:     "main",
		Region:   model.RegionOverseas,
		Kind:     model.LoginKindWeb,
		Account:  "someone@example.com",
		Password: "hunter2",
	}
	altAccount = model.Account{
		Name:   "alt",
		Region: model.RegionChinese,
		Kind:   model.LoginKindMobile,
		Mobile: "13800138000",
	}
)

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, FileName)); err != nil {
			t.Errorf("database file was not created: %v", err)
		}
		if db.Path() != filepath.Join(dbDir, FileName) {
			t.Errorf("unexpected path %q", db.Path())
		}
	})

	t.Run("missing database without create", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "missing")
		_, err := Open(dbDir, Options{})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if _, statErr := os.Stat(dbDir); !os.IsNotExist(statErr) {
			t.Error("directory should not be created")
		}
	})

	t.Run("reopens existing database without create", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		if err := db.InsertAttempt(context.Background(), reportFor(mainAccount, model.OutcomeSuccess, time.Now())); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}
		_ = db.Close()

		db, err = Open(dbDir, Options{EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer db.Close()

		attempts, err := db.ListAttempts(context.Background(), Filter{})
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(attempts) != 1 {
			t.Errorf("expected 1 attempt after reopen, got %d", len(attempts))
		}
	})
}

func TestInsertAndListAttempts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	failed := reportFor(mainAccount, model.OutcomeFailure, base)
	failed.Retcode = -3208
	failed.ErrorKind = "account"
	failed.Error = "wrong password for someone@example.com"

	challenged := reportFor(mainAccount, model.OutcomeChallenge, base.Add(time.Minute))
	challenged.ChallengeKind = model.ChallengeCaptcha.String()

	for _, r := range []*model.LoginReport{
		failed,
		challenged,
		reportFor(mainAccount, model.OutcomeSuccess, base.Add(2*time.Minute)),
		reportFor(altAccount, model.OutcomeSuccess, base.Add(3*time.Minute)),
	} {
		if err := db.InsertAttempt(ctx, r); err != nil {
			t.Fatalf("failed to insert attempt: %v", err)
		}
	}

	t.Run("newest first", func(t *testing.T) {
		t.Parallel()

		attempts, err := db.ListAttempts(ctx, Filter{})
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(attempts) != 4 {
			t.Fatalf("expected 4 attempts, got %d", len(attempts))
		}
		if attempts[0].Name != "alt" || attempts[3].Outcome != model.OutcomeFailure {
			t.Errorf("unexpected order: %+v", attempts)
		}
	})

	t.Run("stores outcome fields", func(t *testing.T) {
		t.Parallel()

		attempts, err := db.ListAttempts(ctx, Filter{Outcome: model.OutcomeFailure})
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(attempts) != 1 {
			t.Fatalf("expected 1 failure, got %d", len(attempts))
		}
		a := attempts[0]
		if a.Retcode != -3208 || a.ErrorKind != "account" {
			t.Errorf("unexpected failure row: %+v", a)
		}
		if a.Region != "overseas" || a.Kind != "web" {
			t.Errorf("unexpected region/kind: %s/%s", a.Region, a.Kind)
		}
		if a.Account != "so***@example.com" {
			t.Errorf("account should be masked, got %q", a.Account)
		}
		if a.Fingerprint != mainAccount.Fingerprint() {
			t.Error("fingerprint mismatch")
		}
		if a.Sends != 2 || a.Duration != 1500*time.Millisecond {
			t.Errorf("unexpected sends/duration: %d/%s", a.Sends, a.Duration)
		}
		if !a.StartedAt.Equal(base) {
			t.Errorf("started_at = %s, expected %s", a.StartedAt, base)
		}
	})

	t.Run("filters by fingerprint and limit", func(t *testing.T) {
		t.Parallel()

		attempts, err := db.ListAttempts(ctx, Filter{Fingerprint: mainAccount.Fingerprint(), Limit: 2})
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(attempts) != 2 {
			t.Fatalf("expected 2 attempts, got %d", len(attempts))
		}
		if attempts[0].Outcome != model.OutcomeSuccess || attempts[1].ChallengeKind != "captcha" {
			t.Errorf("unexpected attempts: %+v", attempts)
		}
	})

	t.Run("filters by name and since", func(t *testing.T) {
		t.Parallel()

		attempts, err := db.ListAttempts(ctx, Filter{Name: "main", Since: base.Add(30 * time.Second)})
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(attempts) != 2 {
			t.Errorf("expected 2 attempts, got %d", len(attempts))
		}
	})

	t.Run("summaries", func(t *testing.T) {
		t.Parallel()

		summaries, err := db.Summaries(ctx)
		if err != nil {
			t.Fatalf("failed to summarize: %v", err)
		}
		if len(summaries) != 2 {
			t.Fatalf("expected 2 summaries, got %d", len(summaries))
		}
		if summaries[0].Name != "alt" || summaries[0].Attempts != 1 {
			t.Errorf("unexpected first summary: %+v", summaries[0])
		}
		main := summaries[1]
		if main.Attempts != 3 || main.Successes != 1 || main.LastOutcome != model.OutcomeSuccess {
			t.Errorf("unexpected main summary: %+v", main)
		}
	})
}

func TestInsertAttemptNeverStoresSecrets(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	r := reportFor(mainAccount, model.OutcomeSuccess, time.Now())
	r.Session = model.WebLoginResult{LTokenV2: "v2_secret_ltoken", CookieTokenV2: "v2_secret_cookie"}
	r.Error = "server said someone@example.com"
	if err := db.InsertAttempt(context.Background(), r); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}
	_ = db.Close()

	raw, err := os.ReadFile(db.Path())
	if err != nil {
		t.Fatalf("failed to read database file: %v", err)
	}
	wal, _ := os.ReadFile(db.Path() + "-wal") //nolint:errcheck // the WAL may already be checkpointed
	raw = append(raw, wal...)

	for _, secret := range []string{"hunter2", "v2_secret_ltoken", "v2_secret_cookie", "someone@example.com"} {
		if containsBytes(raw, secret) {
			t.Errorf("database file contains %q", secret)
		}
	}
}

func containsBytes(haystack []byte, needle string) bool {
	n := []byte(needle)
	for i := 0; i+len(n) <= len(haystack); i++ {
		if string(haystack[i:i+len(n)]) == needle {
			return true
		}
	}
	return false
}

func TestInsertAttemptConcurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- db.InsertAttempt(ctx, reportFor(mainAccount, model.OutcomeSuccess, time.Now()))
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent insert failed: %v", err)
		}
	}

	attempts, err := db.ListAttempts(ctx, Filter{})
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(attempts) != 10 {
		t.Errorf("expected 10 attempts, got %d", len(attempts))
	}
}

func TestPrune(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)

	now := time.Now()
	for _, started := range []time.Time{now.Add(-48 * time.Hour), now.Add(-25 * time.Hour), now} {
		if err := db.InsertAttempt(ctx, reportFor(mainAccount, model.OutcomeSuccess, started)); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}
	}

	n, err := db.Prune(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("failed to prune: %v", err)
	}
	if n != 2 {
		t.Errorf("pruned %d rows, expected 2", n)
	}
	attempts, err := db.ListAttempts(ctx, Filter{})
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(attempts) != 1 {
		t.Errorf("expected 1 remaining attempt, got %d", len(attempts))
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want time.Time
	}{
		{in: "2026-01-02T03:04:05.000000000Z", want: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		{in: "2026-01-02T03:04:05Z", want: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		{in: "2026-01-02 03:04:05", want: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		{in: "garbage", want: time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := parseTimestamp(tt.in); !got.Equal(tt.want) {
				t.Errorf("parseTimestamp(%q) = %s, expected %s", tt.in, got, tt.want)
			}
		})
	}
}
