package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/hoyoauth/internal/auth"
	"github.com/nao1215/hoyoauth/internal/config"
	"github.com/nao1215/hoyoauth/internal/database"
	"github.com/nao1215/hoyoauth/internal/log"
	"github.com/nao1215/hoyoauth/internal/model"
	"github.com/nao1215/hoyoauth/internal/pipeline"
	"github.com/nao1215/hoyoauth/internal/report"
	"github.com/nao1215/hoyoauth/internal/transport"
)

// runtimeEnv holds what a login run opened. close releases it in reverse
// order.
type runtimeEnv struct {
	logger   *slog.Logger
	client   *auth.Client
	recorder pipeline.Recorder
	closers  []func()
}

func (e *runtimeEnv) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

// setupLogger logs to stderr and, with a log file, to a rotated copy.
func setupLogger(cfg *config.Config, stderr io.Writer) (*slog.Logger, func(), error) {
	newLogger := log.NewSecureLogger
	if cfg.LogJSON {
		newLogger = log.NewSecureJSONLogger
	}
	if cfg.LogFile == "" {
		return newLogger(stderr, cfg.Verbose), func() {}, nil
	}
	file, err := log.NewRotatingFile(cfg.LogFile)
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(log.Tee(stderr, file), cfg.Verbose)
	return logger, func() { _ = file.Close() }, nil
}

// setupRuntime opens everything a login needs: logger, transport, client
// and audit database.
func setupRuntime(ctx context.Context, cfg *config.Config, solver auth.Solver, stderr io.Writer) (*runtimeEnv, error) {
	env := &runtimeEnv{}
	logger, closeLog, err := setupLogger(cfg, stderr)
	if err != nil {
		return nil, err
	}
	env.logger = logger
	env.closers = append(env.closers, closeLog)
	slog.SetDefault(logger)

	ok := false
	defer func() {
		if !ok {
			env.close()
		}
	}()

	store, err := transport.NewCookieStore()
	if err != nil {
		return nil, err
	}
	tr, err := newTransport(ctx, cfg, store, env, stderr)
	if err != nil {
		return nil, err
	}

	env.client, err = auth.New(tr, store,
		auth.WithSolver(solver),
		auth.WithLogger(logger),
		auth.WithLang(cfg.Lang),
		auth.WithDeviceID(cfg.DeviceID),
		auth.WithQRPollInterval(cfg.QRPollInterval),
	)
	if err != nil {
		return nil, err
	}

	if cfg.SaveToDB {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to open audit database: %w", err)
		}
		env.recorder = db
		env.closers = append(env.closers, func() { _ = db.Close() })
		logger.Debug("audit database opened", "path", db.Path())
	}

	ok = true
	return env, nil
}

// newTransport builds the configured backend, starting Tor or checking the
// proxy first when asked to.
func newTransport(ctx context.Context, cfg *config.Config, store *transport.CookieStore, env *runtimeEnv, stderr io.Writer) (transport.Transport, error) {
	opts := []transport.Option{transport.WithTimeout(cfg.Timeout)}
	if cfg.UserAgent != "" {
		opts = append(opts, transport.WithUserAgent(cfg.UserAgent))
	}

	switch {
	case cfg.UseTor:
		fmt.Fprintln(stderr, "Starting embedded Tor daemon. This may take 1-3 minutes...")
		tor := transport.NewEmbeddedTor(transport.WithTorStartupTimeout(cfg.TorStartupTimeout))
		if err := tor.Start(ctx); err != nil {
			return nil, fmt.Errorf("failed to start embedded Tor: %w", err)
		}
		env.closers = append(env.closers, func() {
			if err := tor.Stop(); err != nil {
				env.logger.Error("failed to stop embedded Tor", "error", err)
			}
		})
		proxy, err := tor.ProxyOption()
		if err != nil {
			return nil, err
		}
		opts = append(opts, proxy)

	case cfg.ProxyAddress != "":
		if err := transport.CheckProxy(ctx, cfg.ProxyAddress).Err(); err != nil {
			return nil, fmt.Errorf("proxy check failed for %s: %w", cfg.ProxyAddress, err)
		}
		opts = append(opts, transport.WithProxy(cfg.ProxyAddress))
	}

	if cfg.Transport == config.TransportTLSClient {
		return transport.NewTLSClient(store, opts...)
	}
	return transport.NewHTTPClient(store, opts...)
}

// newWriter selects the report format.
func newWriter(cfg *config.Config, out io.Writer) report.Writer {
	opts := []report.Option{
		report.WithShowTokens(cfg.ShowTokens),
		report.WithVersion(getVersion()),
		report.WithVerbose(cfg.Verbose),
	}
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(out, append(opts, report.WithPrettyPrint())...)
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(out, opts...)
	default:
		return report.NewSimpleWriter(out, opts...)
	}
}

// writeReports renders reports to stdout or the report file.
func writeReports(cfg *config.Config, stdout io.Writer, reports []*model.LoginReport) error {
	out := stdout
	if cfg.ReportFile != "" {
		if dir := filepath.Dir(cfg.ReportFile); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		// Reports may carry session tokens.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()
		out = f
	}
	_, err := newWriter(cfg, out).Write(reports)
	return err
}

// errLoginsFailed makes the exit status non-zero when any login failed.
type errLoginsFailed struct {
	failed, total int
}

func (e *errLoginsFailed) Error() string {
	return fmt.Sprintf("%d of %d login(s) did not produce a session", e.failed, e.total)
}

// checkReports returns *errLoginsFailed unless every login succeeded.
func checkReports(reports []*model.LoginReport) error {
	s := report.NewSummary(reports)
	if s.AllSucceeded() {
		return nil
	}
	return &errLoginsFailed{failed: s.Total - s.Succeeded, total: s.Total}
}
