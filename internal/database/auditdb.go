package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/hoyoauth/internal/model"
)

// storedTimeLayout has a fixed width so that stored times sort as text.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FileName is the name of the database file inside the data directory.
const FileName = "hoyoauth.db"

// ErrNotFound is returned when the database file does not exist and
// Options.CreateIfNotExists is false.
var ErrNotFound = errors.New("database not found")

// AuditDB stores login attempt outcomes.
type AuditDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures Open.
type Options struct {
	// CreateIfNotExists creates the directory and the database file.
	CreateIfNotExists bool

	// EnableWAL switches the journal to write-ahead logging.
	EnableWAL bool
}

// DefaultOptions returns the options the CLI uses.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens the audit database in dbDir.
func Open(dbDir string, opts Options) (*AuditDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dbDir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	} else {
		if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	}

	mode := "rw"
	if opts.CreateIfNotExists {
		mode = "rwc"
	}
	db, err := sql.Open("sqlite", dbPath+"?mode="+mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer; batch logins insert from several goroutines.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	adb := &AuditDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}
	if err := adb.createTables(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return adb, nil
}

// Path returns the database file path.
func (adb *AuditDB) Path() string {
	return adb.dbPath
}

// Close closes the database.
func (adb *AuditDB) Close() error {
	return adb.db.Close()
}

func (adb *AuditDB) createTables(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS login_attempts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		fingerprint TEXT NOT NULL,
		name TEXT,
		account TEXT,
		region TEXT NOT NULL,
		kind TEXT NOT NULL,
		outcome TEXT NOT NULL,
		retcode INTEGER DEFAULT 0,
		error_kind TEXT,
		challenge_kind TEXT,
		sends INTEGER DEFAULT 0,
		duration_ms INTEGER DEFAULT 0,
		started_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_attempts_fingerprint ON login_attempts(fingerprint);
	CREATE INDEX IF NOT EXISTS idx_attempts_started ON login_attempts(started_at);
	`
	_, err := adb.db.ExecContext(ctx, schema)
	return err
}

// Attempt is one stored login attempt.
type Attempt struct {
	ID            int64
	Fingerprint   string
	Name          string
	Account       string
	Region        string
	Kind          string
	Outcome       model.Outcome
	Retcode       int
	ErrorKind     string
	ChallengeKind string
	Sends         int
	Duration      time.Duration
	StartedAt     time.Time
}

// InsertAttempt stores the outcome of report. Error messages are not
// stored since they may quote server text about the account.
func (adb *AuditDB) InsertAttempt(ctx context.Context, report *model.LoginReport) error {
	query := `
	INSERT INTO login_attempts
		(fingerprint, name, account, region, kind, outcome, retcode, error_kind, challenge_kind, sends, duration_ms, started_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := adb.db.ExecContext(ctx, query,
		report.Fingerprint,
		report.Name,
		report.Account,
		report.Region.String(),
		report.Kind.String(),
		string(report.Outcome),
		report.Retcode,
		report.ErrorKind,
		report.ChallengeKind,
		report.Sends,
		report.Duration.Milliseconds(),
		report.StartedAt.UTC().Format(storedTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert login attempt: %w", err)
	}
	return nil
}

// Filter narrows ListAttempts. Zero values match everything.
type Filter struct {
	Fingerprint string
	Name        string
	Outcome     model.Outcome
	Since       time.Time
	// Limit caps the number of rows; 0 means no limit.
	Limit int
}

// ListAttempts returns matching attempts, newest first.
func (adb *AuditDB) ListAttempts(ctx context.Context, f Filter) ([]Attempt, error) {
	query := `
	SELECT id, fingerprint, name, account, region, kind, outcome, retcode,
		error_kind, challenge_kind, sends, duration_ms, started_at
	FROM login_attempts
	WHERE 1=1
	`
	args := make([]any, 0, 5)

	if f.Fingerprint != "" {
		query += " AND fingerprint = ?"
		args = append(args, f.Fingerprint)
	}
	if f.Name != "" {
		query += " AND name = ?"
		args = append(args, f.Name)
	}
	if f.Outcome != "" {
		query += " AND outcome = ?"
		args = append(args, string(f.Outcome))
	}
	if !f.Since.IsZero() {
		query += " AND started_at >= ?"
		args = append(args, f.Since.UTC().Format(storedTimeLayout))
	}
	query += " ORDER BY started_at DESC, id DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := adb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query login attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var (
			a          Attempt
			name       sql.NullString
			account    sql.NullString
			errorKind  sql.NullString
			challenge  sql.NullString
			outcome    string
			durationMs int64
			startedAt  string
		)
		if err := rows.Scan(
			&a.ID, &a.Fingerprint, &name, &account, &a.Region, &a.Kind, &outcome, &a.Retcode,
			&errorKind, &challenge, &a.Sends, &durationMs, &startedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan login attempt: %w", err)
		}
		a.Name = name.String
		a.Account = account.String
		a.ErrorKind = errorKind.String
		a.ChallengeKind = challenge.String
		a.Outcome = model.Outcome(outcome)
		a.Duration = time.Duration(durationMs) * time.Millisecond
		a.StartedAt = parseTimestamp(startedAt)
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// AccountSummary aggregates the attempts of one account.
type AccountSummary struct {
	Fingerprint string
	Name        string
	Account     string
	Attempts    int
	Successes   int
	LastAttempt time.Time
	LastOutcome model.Outcome
}

// Summaries returns one summary per account, most recently active first.
func (adb *AuditDB) Summaries(ctx context.Context) ([]AccountSummary, error) {
	query := `
	SELECT a.fingerprint, a.name, a.account, s.total, s.successes, a.started_at, a.outcome
	FROM login_attempts a
	JOIN (
		SELECT fingerprint,
			COUNT(*) AS total,
			SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END) AS successes,
			MAX(id) AS last_id
		FROM login_attempts
		GROUP BY fingerprint
	) s ON a.id = s.last_id
	ORDER BY a.started_at DESC
	`
	rows, err := adb.db.QueryContext(ctx, query, string(model.OutcomeSuccess))
	if err != nil {
		return nil, fmt.Errorf("failed to summarize login attempts: %w", err)
	}
	defer rows.Close()

	var summaries []AccountSummary
	for rows.Next() {
		var (
			s         AccountSummary
			name      sql.NullString
			account   sql.NullString
			startedAt string
			outcome   string
		)
		if err := rows.Scan(&s.Fingerprint, &name, &account, &s.Attempts, &s.Successes, &startedAt, &outcome); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		s.Name = name.String
		s.Account = account.String
		s.LastAttempt = parseTimestamp(startedAt)
		s.LastOutcome = model.Outcome(outcome)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Prune deletes attempts that started before cutoff and returns how many
// rows were removed.
func (adb *AuditDB) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := adb.db.ExecContext(ctx,
		"DELETE FROM login_attempts WHERE started_at < ?",
		cutoff.UTC().Format(storedTimeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune login attempts: %w", err)
	}
	return res.RowsAffected()
}

// timestampFormats lists the layouts started_at may be stored in, most
// specific first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999",
	"2006-01-02 15:04:05",
}

// parseTimestamp returns the zero time when no layout matches.
func parseTimestamp(s string) time.Time {
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
