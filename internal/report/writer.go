package report

import (
	"io"

	"github.com/nao1215/hoyoauth/internal/model"
)

// Writer renders the reports of one run.
type Writer interface {
	// Write renders reports and returns the number of bytes written.
	Write(reports []*model.LoginReport) (int, error)
}

// MultiWriter writes to several Writers in turn, for example the terminal
// and a report file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write stops at the first error.
func (m *MultiWriter) Write(reports []*model.LoginReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(reports)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Option configures any of the writers in this package.
type Option func(*baseWriter)

// WithShowTokens renders session tokens in clear text.
func WithShowTokens(show bool) Option {
	return func(b *baseWriter) {
		b.showTokens = show
	}
}

// WithVersion sets the tool version printed in the report.
func WithVersion(version string) Option {
	return func(b *baseWriter) {
		b.version = version
	}
}

// WithVerbose adds performed steps and error kinds to text output.
func WithVerbose(verbose bool) Option {
	return func(b *baseWriter) {
		b.verbose = verbose
	}
}

// WithPrettyPrint indents JSON output.
func WithPrettyPrint() Option {
	return func(b *baseWriter) {
		b.pretty = true
	}
}

type baseWriter struct {
	output     io.Writer
	showTokens bool
	verbose    bool
	pretty     bool
	version    string
}

func newBaseWriter(output io.Writer, opts []Option) baseWriter {
	b := baseWriter{output: output, version: "dev"}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// sessionValues returns the session cookies of r, masked unless tokens are
// shown. It returns nil when r has no session.
func (b baseWriter) sessionValues(r *model.LoginReport) map[string]string {
	if r.Session == nil {
		return nil
	}
	cookies := r.Session.Cookies()
	out := make(map[string]string, len(cookies))
	for k, v := range cookies {
		if b.showTokens {
			out[k] = v
			continue
		}
		out[k] = MaskToken(v)
	}
	return out
}

// MaskToken keeps the first four characters of a token.
func MaskToken(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "****"
}
